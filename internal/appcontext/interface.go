// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"
)

// Settings are the resolved configuration values commands read.
// Command-line flags override them per invocation.
type Settings struct {
	Tolerance     float64
	XRayFile      string
	BetaXFile     string
	OpticalFile   string
	FrequencyFile string
	OutputDir     string
	Plot          bool
	DeltaBeta     bool
	Interactive   bool
}

// Interface defines the application context interface that commands need.
// The App struct from cmd/betaox/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Settings returns the configured run settings.
	Settings() Settings

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
