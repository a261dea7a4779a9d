package pipeline

import (
	"fmt"

	"github.com/agentstation/betaox/pkg/optional"
	"github.com/agentstation/betaox/pkg/reconcile"
	"github.com/agentstation/betaox/pkg/spectral"
)

// Report collects the counters of every stage of a trial.
type Report struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	XRay          XRayReport            `json:"xray" yaml:"xray"`
	SpectralIndex SpectralIndexReport   `json:"spectral_index" yaml:"spectral_index"`
	Prune         reconcile.PruneResult `json:"prune" yaml:"prune"`
	Optical       OpticalReport         `json:"optical" yaml:"optical"`
	Reconcile     reconcile.Statistics  `json:"reconcile" yaml:"reconcile"`
	TotalPossible int                   `json:"total_possible" yaml:"total_possible"`
	Frequency     FrequencyReport       `json:"frequency" yaml:"frequency"`
	Calculation   spectral.Stats        `json:"calculation" yaml:"calculation"`
	Summary       spectral.Summary      `json:"summary" yaml:"summary"`
	Rates         Rates                 `json:"rates" yaml:"rates"`
}

// XRayReport describes the X-ray load.
type XRayReport struct {
	Records int `json:"records" yaml:"records"`
	Bursts  int `json:"bursts" yaml:"bursts"`
}

// SpectralIndexReport describes the spectral-index load.
type SpectralIndexReport struct {
	Rows      int      `json:"rows" yaml:"rows"`
	Pairs     int      `json:"pairs" yaml:"pairs"`
	Unmatched []string `json:"unmatched" yaml:"unmatched"`
}

// OpticalReport describes the optical load.
type OpticalReport struct {
	Rows        int `json:"rows" yaml:"rows"`
	Bursts      int `json:"bursts" yaml:"bursts"`
	Pairs       int `json:"pairs" yaml:"pairs"`
	Unmatched   int `json:"unmatched" yaml:"unmatched"`
	InvalidTime int `json:"invalid_time" yaml:"invalid_time"`
}

// FrequencyReport describes the frequency lookup load.
type FrequencyReport struct {
	Rows       int `json:"rows" yaml:"rows"`
	Assigned   int `json:"assigned" yaml:"assigned"`
	Unassigned int `json:"unassigned" yaml:"unassigned"`
}

// Rates are percentages. A rate is unset when its denominator was zero.
type Rates struct {
	// SpectralIndex is X-ray records updated per X-ray record.
	SpectralIndex optional.Float `json:"spectral_index" yaml:"spectral_index"`
	// Pairing is optical pairings per possible pairing.
	Pairing optional.Float `json:"pairing" yaml:"pairing"`
	// Calculation is calculated records per possible pairing.
	Calculation optional.Float `json:"calculation" yaml:"calculation"`
}

func rate(numerator, denominator int) optional.Float {
	if r, ok := spectral.Rate(numerator, denominator); ok {
		return optional.Some(r)
	}
	return optional.None()
}

// updateRates recomputes every rate from the current counters.
func (r *Report) updateRates() {
	r.Rates = Rates{
		SpectralIndex: rate(r.SpectralIndex.Pairs, r.XRay.Records),
		Pairing:       rate(r.Optical.Pairs, r.TotalPossible),
		Calculation:   rate(r.Calculation.Calculated, r.TotalPossible),
	}
}

// Describe returns a human-readable summary of the report.
func (r *Report) Describe() string {
	if r.Calculation.Calculated == 0 {
		return fmt.Sprintf("No fully populated records (%d possible pairings at %s%% tolerance)",
			r.TotalPossible, formatTolerance(r.Tolerance))
	}
	return fmt.Sprintf("%d spectral indexes calculated from %d pairings (%d possible, %s) at %s%% tolerance",
		r.Calculation.Calculated, r.Optical.Pairs, r.TotalPossible, formatRate(r.Rates.Pairing), formatTolerance(r.Tolerance))
}

func formatRate(f optional.Float) string {
	v, ok := f.Get()
	if !ok {
		return "no data"
	}
	return fmt.Sprintf("%.2f%%", v)
}

func formatTolerance(t float64) string {
	return fmt.Sprintf("%g", t)
}
