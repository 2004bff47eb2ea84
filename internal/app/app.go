package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vk/tilegen/internal/config"
	"github.com/vk/tilegen/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	arch   *config.Model
	now    func() time.Time
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and loads the architecture description.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	arch, err := loader.Load(ctx, appConfig.ArchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load architecture: %w", err)
	}
	logger.Debug("Architecture loaded and translated into unified model.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		arch:   arch,
		now:    time.Now,
	}, nil
}

// Architecture returns the loaded model. This is primarily for testing.
func (a *App) Architecture() *config.Model {
	return a.arch
}
