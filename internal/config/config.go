package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	appName        = "FileForge"
	configFileName = "fileforge.toml"
	databaseName   = "database.sqlite3"
)

// Config holds application configuration
type Config struct {
	WorkingDir   string
	DatabasePath string
	AppDataDir   string
	ConfigPath   string
	LogLevel     slog.Level
	Logger       *slog.Logger
	Pipeline     PipelineConfig
}

// PipelineConfig tunes the file pipeline
type PipelineConfig struct {
	MaxImageDimension int     `toml:"max_image_dimension"`
	TextFontSize      float64 `toml:"text_font_size"`
	TextMargin        float64 `toml:"text_margin"`
	RasterDPI         float64 `toml:"raster_dpi"`
	DefaultSplitParts int     `toml:"default_split_parts"`
}

// DefaultPipeline returns the pipeline settings used without a config file
func DefaultPipeline() PipelineConfig {
	return PipelineConfig{
		MaxImageDimension: 2000,
		TextFontSize:      12,
		TextMargin:        50,
		RasterDPI:         72,
		DefaultSplitParts: 2,
	}
}

// fileConfig mirrors fileforge.toml
type fileConfig struct {
	LogLevel string         `toml:"log_level"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// New creates a new configuration instance in the per-user app data dir
func New() *Config {
	return NewAt(getAppDataDir(), filepath.Join(os.TempDir(), "fileforge"))
}

// NewAt creates a configuration rooted at appDataDir. A config file found
// there is applied; a broken one is logged and ignored.
func NewAt(appDataDir, workingDir string) *Config {
	cfg := &Config{
		AppDataDir: appDataDir,
		WorkingDir: workingDir,
		LogLevel:   slog.LevelInfo,
		Pipeline:   DefaultPipeline(),
	}

	cfg.setupDirectories()

	loadErr := cfg.Load(cfg.ConfigPath)
	cfg.setupLogger()
	if loadErr != nil {
		cfg.Logger.Warn("Ignoring config file", "path", cfg.ConfigPath, "error", loadErr)
	}

	return cfg
}

func (c *Config) setupDirectories() {
	os.MkdirAll(c.WorkingDir, 0755)
	os.MkdirAll(c.AppDataDir, 0755)

	c.DatabasePath = filepath.Join(c.AppDataDir, databaseName)
	c.ConfigPath = filepath.Join(c.AppDataDir, configFileName)
}

func (c *Config) setupLogger() {
	c.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

// Load applies the TOML file at path on top of the current values. A missing
// file is not an error. On error the configuration is left untouched.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	parsed := fileConfig{Pipeline: c.Pipeline}
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	level := c.LogLevel
	if parsed.LogLevel != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(parsed.LogLevel))); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", parsed.LogLevel, err)
		}
	}

	if err := parsed.Pipeline.validate(); err != nil {
		return err
	}

	c.LogLevel = level
	c.Pipeline = parsed.Pipeline
	return nil
}

func (p PipelineConfig) validate() error {
	switch {
	case p.MaxImageDimension < 1:
		return fmt.Errorf("max_image_dimension must be positive, got %d", p.MaxImageDimension)
	case p.TextFontSize <= 0:
		return fmt.Errorf("text_font_size must be positive, got %g", p.TextFontSize)
	case p.TextMargin < 0:
		return fmt.Errorf("text_margin must not be negative, got %g", p.TextMargin)
	case p.RasterDPI <= 0:
		return fmt.Errorf("raster_dpi must be positive, got %g", p.RasterDPI)
	case p.DefaultSplitParts < 1:
		return fmt.Errorf("default_split_parts must be at least 1, got %d", p.DefaultSplitParts)
	}
	return nil
}

func getAppDataDir() string {
	// Application Support on macOS, %AppData% on Windows, XDG on Linux
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, "."+strings.ToLower(appName))
}
