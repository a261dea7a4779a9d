// Package logging provides structured logging for the betaox pipeline using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so a
// calculation run can be read interactively or piped into other tooling.
//
// Loggers travel in the context. Pipeline stages tag them with the run,
// stage, burst and input file they are working on:
//
//	ctx = logging.WithStage(ctx, "optical")
//	logging.FromContext(logging.WithBurst(ctx, "050709")).Debug().Msg("No X-ray pairing")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// defaultLogger is used when a context carries no logger.
var defaultLogger = NewLoggerFromConfig(EnvConfig())

// Default returns the logger built from the environment.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// EnvConfig reads a logger configuration from LOG_LEVEL, LOG_FORMAT,
// LOG_OUTPUT and NO_COLOR. DEBUG selects the debug level when LOG_LEVEL
// is unset.
func EnvConfig() *Config {
	cfg := &Config{
		Level:      os.Getenv("LOG_LEVEL"),
		Format:     os.Getenv("LOG_FORMAT"),
		Output:     os.Getenv("LOG_OUTPUT"),
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	if cfg.Level == "" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	return cfg
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
