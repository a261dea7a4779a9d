package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/betaox/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level written (trace, debug, info, warn, error, off).
	Level string
	// Format is json, console (or pretty) or auto. Auto picks console on a terminal.
	Format string
	// Output is stderr, stdout, discard or a file path appended to.
	Output string
	// TimeFormat is kitchen, rfc3339, unix or a Go layout.
	TimeFormat string
	// NoColor disables color in console output.
	NoColor bool
	// AddCaller includes file:line in every entry.
	AddCaller bool
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level to match.
// A nil cfg reads the environment.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = EnvConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(cfg.writer()).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// writer resolves the output destination and wraps it for console output.
func (cfg *Config) writer() io.Writer {
	out, file := openOutput(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "json":
		return out
	case "console", "pretty":
	default:
		if file == nil || !isTerminal(file) {
			return out
		}
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// openOutput returns the writer for dest and, when it is a file, the file
// itself. An unopenable path falls back to stderr.
func openOutput(dest string) (io.Writer, *os.File) {
	switch strings.ToLower(dest) {
	case "", "stderr":
		return os.Stderr, os.Stderr
	case "stdout":
		return os.Stdout, os.Stdout
	case "discard", "none":
		return io.Discard, nil
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, os.Stderr
	}
	return f, f
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	}
	// Accept anything that looks like a Go reference layout.
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
