package application

import (
	"context"
	"log/slog"

	"fileforge/internal/config"
	"fileforge/internal/container"
	"fileforge/internal/database"
	"fileforge/internal/models"
	"fileforge/internal/transport"

	"gorm.io/gorm"
)

type App struct {
	ctx        context.Context
	container  *container.Container
	wailsApp   *transport.WailsApp
	config     *config.Config
	db         *gorm.DB
	startupErr error
}

func NewApp() *App {
	return &App{}
}

func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	// Initialize configuration
	cfg := config.New()
	a.config = cfg

	// Initialize database; the schema is migrated there
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		a.startupErr = NewStartupError("database", err)
		cfg.Logger.Error("Failed to initialize database", "error", err)
		return
	}
	a.db = db

	// Initialize dependency container
	a.container = container.New(ctx, cfg, db, transport.NewEventSink())

	// Initialize transport layer
	a.wailsApp = transport.NewWailsApp(
		ctx,
		a.container.GetFileOpsService(),
		a.container.GetPreferencesRepository(),
		a.container.GetStatisticsService(),
		cfg.Logger.With("component", "transport"),
	)

	cfg.Logger.Info("Wails app initialized successfully")
	cfg.Logger.Info("Application configuration",
		"working_directory", cfg.WorkingDir,
		"database_path", cfg.DatabasePath,
		"config_path", cfg.ConfigPath,
		"max_image_dimension", cfg.Pipeline.MaxImageDimension)
}

func (a *App) OnShutdown(ctx context.Context) {
	if a.db == nil {
		return
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		a.logger().Warn("Failed to close database", "error", err)
	}
}

func (a *App) logger() *slog.Logger {
	if a.config != nil && a.config.Logger != nil {
		return a.config.Logger
	}
	return slog.Default()
}

// ready reports why the bound methods cannot run yet
func (a *App) ready() error {
	if a.startupErr != nil {
		return a.startupErr
	}
	if a.wailsApp == nil {
		return ErrNotReady
	}
	return nil
}

func (a *App) ProcessFiles(request ProcessRequest) ProcessResponse {
	if err := a.ready(); err != nil {
		return ProcessResponse{Operation: request.Operation, Files: []FileResult{}, Error: err.Error()}
	}
	return a.wailsApp.ProcessFiles(request)
}

func (a *App) SaveResults(request SaveRequest) SaveResponse {
	if err := a.ready(); err != nil {
		return SaveResponse{Paths: []string{}, Error: err.Error()}
	}
	return a.wailsApp.SaveResults(request)
}

func (a *App) SupportedConversions() map[string][]string {
	if a.ready() != nil {
		return map[string][]string{}
	}
	return a.wailsApp.SupportedConversions()
}

func (a *App) GetPreferences() (*models.UserPreferencesData, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.wailsApp.GetPreferences()
}

func (a *App) UpdatePreferences(data map[string]any) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.wailsApp.UpdatePreferences(data)
}

func (a *App) OpenFileDialog(operation string) ([]string, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.wailsApp.OpenFileDialog(operation)
}

func (a *App) OpenDirectoryDialog() (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	return a.wailsApp.OpenDirectoryDialog()
}

func (a *App) ShowSaveDialog(filename string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	return a.wailsApp.ShowSaveDialog(filename)
}

func (a *App) OpenFile(filePath string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.wailsApp.OpenFile(filePath)
}

func (a *App) GetAppStatus() map[string]any {
	if err := a.ready(); err != nil {
		return map[string]any{"status": "error", "error": err.Error()}
	}
	return a.wailsApp.GetAppStatus()
}

func (a *App) GetStats() *AppStats {
	if a.ready() != nil {
		return &AppStats{}
	}
	return a.wailsApp.GetStats()
}
