package container

import (
	"context"
	"log/slog"

	"fileforge/internal/codec"
	"fileforge/internal/config"
	fileopsDomain "fileforge/internal/domain/fileops"
	preferencesDomain "fileforge/internal/domain/preferences"
	statisticsDomain "fileforge/internal/domain/statistics"
	"fileforge/internal/fileops"
	"fileforge/internal/services"

	"gorm.io/gorm"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger
	codec  fileopsDomain.Codec
	events fileopsDomain.EventSink

	// Services
	preferencesRepo   preferencesDomain.Repository
	fileOpsService    fileopsDomain.Service
	statisticsService statisticsDomain.Service
}

// New creates a new dependency injection container backed by the
// production codecs
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, events fileopsDomain.EventSink) *Container {
	settings := codec.Settings{
		TextFontSize: cfg.Pipeline.TextFontSize,
		TextMargin:   cfg.Pipeline.TextMargin,
		RasterDPI:    cfg.Pipeline.RasterDPI,
	}
	return newWithCodec(ctx, cfg, db, events, codec.New(settings, cfg.Logger))
}

func newWithCodec(ctx context.Context, cfg *config.Config, db *gorm.DB, events fileopsDomain.EventSink, c fileopsDomain.Codec) *Container {
	ct := &Container{
		config: cfg,
		db:     db,
		logger: cfg.Logger,
		codec:  c,
		events: events,
	}

	ct.initServices(ctx)
	return ct
}

// initServices initializes all services with their dependencies
func (c *Container) initServices(ctx context.Context) {
	c.preferencesRepo = &PreferencesRepositoryAdapter{service: services.NewPreferencesService(c.db)}

	c.statisticsService = &StatisticsServiceImpl{
		service: services.NewStatsService(c.db),
		events:  c.events,
		config:  c.config,
		ctx:     ctx,
	}

	dispatcher := fileops.NewDispatcher(c.codec, fileops.Settings{
		MaxImageDimension: c.config.Pipeline.MaxImageDimension,
	}, c.logger.With("component", "fileops"))

	c.fileOpsService = &FileOpsServiceImpl{
		dispatcher: dispatcher,
		prefsRepo:  c.preferencesRepo,
		stats:      c.statisticsService,
		events:     c.events,
		config:     c.config,
		logger:     c.logger,
	}
}

// GetFileOpsService returns the file operations service
func (c *Container) GetFileOpsService() fileopsDomain.Service {
	return c.fileOpsService
}

// GetStatisticsService returns the statistics service
func (c *Container) GetStatisticsService() statisticsDomain.Service {
	return c.statisticsService
}

// GetPreferencesRepository returns the preferences repository
func (c *Container) GetPreferencesRepository() preferencesDomain.Repository {
	return c.preferencesRepo
}
