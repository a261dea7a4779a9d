package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger returns a context carrying logger. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the context logger, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithRunID tags the context logger with a calculation run identifier.
// An empty id generates a new random one.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, runIDKey, runID)
	return withString(ctx, "run_id", runID)
}

// RunID extracts the run identifier from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithStage tags the context logger with a pipeline stage.
func WithStage(ctx context.Context, stage string) context.Context {
	return withString(ctx, "stage", stage)
}

// WithBurst tags the context logger with a burst identifier.
func WithBurst(ctx context.Context, burstID string) context.Context {
	return withString(ctx, "burst_id", burstID)
}

// WithFile tags the context logger with the input file being read.
func WithFile(ctx context.Context, path string) context.Context {
	return withString(ctx, "file", path)
}

func withString(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
