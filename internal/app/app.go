package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/shipwave/internal/config"
	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/publisher"
	"github.com/vk/shipwave/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	cfg     *Config
	model   *config.Model
	checker registry.Checker
	runner  publisher.Runner
}

// Option replaces one of the App's external collaborators, primarily so
// tests can run the full lifecycle without a registry or npm binary.
type Option func(*App)

// WithChecker overrides the registry published-status checker.
func WithChecker(c registry.Checker) Option {
	return func(a *App) { a.checker = c }
}

// WithRunner overrides the publish action runner.
func WithRunner(r publisher.Runner) Option {
	return func(a *App) { a.runner = r }
}

// NewApp constructs the application: it builds an isolated logger, loads the
// release config model, and wires the default collaborators unless options
// replace them.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := config.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Workers > 0 {
		model.Workers = cfg.Workers
	}

	a := &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		model:  model,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.checker == nil {
		a.checker = registry.NewClient(model.RegistryURL)
	}
	if a.runner == nil {
		a.runner = &publisher.ExecRunner{Command: model.PublishCommand}
	}

	return a, nil
}
