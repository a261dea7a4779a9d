package spectral

import (
	"context"

	"github.com/agentstation/betaox/pkg/logging"
	"github.com/agentstation/betaox/pkg/records"
)

// Stats summarizes one calculator pass.
type Stats struct {
	// Calculated is the number of fully populated records processed.
	Calculated int `json:"calculated" yaml:"calculated"`
	// Skipped is the number of records without an optical frequency.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Degenerate counts clamped quantities, up to three per record.
	Degenerate int `json:"degenerate" yaml:"degenerate"`
	// DegenerateRecords counts records with at least one clamped quantity.
	DegenerateRecords int `json:"degenerate_records" yaml:"degenerate_records"`
}

// Calculator computes the derived index for every record of a store.
type Calculator struct {
	onDegenerate func(r *records.Record, d Degenerate)
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithDegenerateHook registers fn to be called for every record with a
// clamped quantity.
func WithDegenerateHook(fn func(r *records.Record, d Degenerate)) Option {
	return func(c *Calculator) {
		c.onDegenerate = fn
	}
}

// NewCalculator creates a calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run computes and stores the derived index of every fully populated
// record in enriched. Records without an optical frequency are left at
// their zero default.
func (c *Calculator) Run(ctx context.Context, enriched *records.Store) Stats {
	var stats Stats

	enriched.Each(func(_ int, r *records.Record) {
		derived, deg, ok := ForRecord(r)
		if !ok {
			stats.Skipped++
			return
		}
		r.SetDerived(derived)
		stats.Calculated++

		if deg.Any() {
			stats.Degenerate += deg.Count()
			stats.DegenerateRecords++
			logging.FromContext(logging.WithBurst(ctx, r.ID)).Warn().
				Bool("value", deg.Value).
				Bool("upper", deg.Upper).
				Bool("lower", deg.Lower).
				Msg("Non-finite spectral index clamped to zero")
			if c.onDegenerate != nil {
				c.onDegenerate(r, deg)
			}
		}
	})

	return stats
}
