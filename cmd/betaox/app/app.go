// Package app provides the application context and dependency management
// for the betaox CLI. It centralizes configuration, logging, and the
// settings every subcommand reads.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/betaox/internal/appcontext"
	"github.com/agentstation/betaox/internal/cmd/output"
	"github.com/agentstation/betaox/pkg/errors"
)

// App represents the betaox application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from files and the
// environment, which can be replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format. When unset it is
// table on a terminal and JSON otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Settings returns the run settings resolved from the configuration.
func (a *App) Settings() appcontext.Settings {
	return appcontext.Settings{
		Tolerance:     a.config.Tolerance,
		XRayFile:      a.config.XRayFile,
		BetaXFile:     a.config.BetaXFile,
		OpticalFile:   a.config.OpticalFile,
		FrequencyFile: a.config.FrequencyFile,
		OutputDir:     a.config.OutputDir,
		Plot:          a.config.Plot,
		DeltaBeta:     a.config.DeltaBeta,
		Interactive:   a.config.Interactive,
	}
}

// Shutdown performs graceful shutdown of the application.
// Runs hold no background resources, so only the log is flushed.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
