package pipeline

import (
	"math"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/errors"
)

// Options controls one trial.
type Options struct {
	Tolerance float64 // percent-difference threshold for temporal matching
	RunID     string  // identifier attached to logs and the report; generated when empty
}

// Option is a function that configures trial Options.
type Option func(*Options)

// Defaults returns the default trial options.
func Defaults() *Options {
	return &Options{
		Tolerance: constants.DefaultTolerance,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks the options.
func (o *Options) Validate() error {
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 1) {
		return &errors.ValidationError{
			Field:   "Tolerance",
			Value:   o.Tolerance,
			Message: "tolerance must be a positive finite percentage",
		}
	}
	return nil
}

// WithTolerance sets the percent-difference threshold.
func WithTolerance(tolerance float64) Option {
	return func(o *Options) {
		o.Tolerance = tolerance
	}
}

// WithRunID sets the run identifier.
func WithRunID(id string) Option {
	return func(o *Options) {
		o.RunID = id
	}
}
