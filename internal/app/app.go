package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/idfgo/internal/config"
	"github.com/vk/idfgo/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	settings *config.Model
}

// NewApp is the constructor for the main application. It loads the
// configuration files through loader and configures an isolated logger.
// Command-line values in cfg take precedence over file settings.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Bootstrap logger for the loading phase only.
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	settings := &config.Model{}
	if len(cfg.ConfigPaths) > 0 {
		loaded, err := loader.Load(ctx, cfg.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		settings = loaded
	}
	settings.Merge(&config.Model{
		SchemaDir:      cfg.SchemaDir,
		DefaultVersion: cfg.Version,
		LogLevel:       cfg.LogLevel,
		LogFormat:      cfg.LogFormat,
	})
	if cfg.PublishURL != "" {
		if settings.Publish == nil {
			settings.Publish = &config.Publish{}
		}
		settings.Publish.URL = cfg.PublishURL
	}
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger = newLogger(settings.LogLevel, settings.LogFormat, outW)
	logger.Debug("Configuration loaded.", "files", len(cfg.ConfigPaths), "seeds", len(settings.Seeds))

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		settings: settings,
	}, nil
}

// Settings returns the merged configuration. This is primarily for testing.
func (a *App) Settings() *config.Model {
	return a.settings
}
