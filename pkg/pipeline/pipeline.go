// Package pipeline runs the reconciliation stages in order and collects
// their counters into a Report.
//
// A Trial is used once. Stages must be loaded in order: X-ray, spectral
// index, optical, frequency, then Calculate. Out-of-order calls return a
// *errors.StageError and leave the trial unchanged.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/logging"
	"github.com/agentstation/betaox/pkg/multiplicity"
	"github.com/agentstation/betaox/pkg/pairing"
	"github.com/agentstation/betaox/pkg/reconcile"
	"github.com/agentstation/betaox/pkg/records"
	"github.com/agentstation/betaox/pkg/spectral"
)

// Stage names used in logs and errors.
const (
	StageXRay          = "xray"
	StageSpectralIndex = "beta_x"
	StageOptical       = "optical"
	StageFrequency     = "frequency"
	StageCalculate     = "calculate"
)

// Trial holds the state of one reconciliation run at one tolerance.
type Trial struct {
	options *Options
	matcher *pairing.Matcher

	xray     *records.Store
	enriched *records.Store

	xrayIndex    multiplicity.Index
	opticalIndex multiplicity.Index

	reconciled *reconcile.Result
	unmatched  []pairing.Observation
	unassigned []records.Record

	done   int
	report Report
}

// New creates a trial.
func New(opts ...Option) (*Trial, error) {
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.RunID == "" {
		options.RunID = uuid.NewString()
	}

	matcher, err := pairing.NewMatcher(options.Tolerance)
	if err != nil {
		return nil, err
	}

	return &Trial{
		options:  options,
		matcher:  matcher,
		xray:     records.NewStore(),
		enriched: records.NewStore(),
		report: Report{
			RunID:     options.RunID,
			Tolerance: options.Tolerance,
		},
	}, nil
}

var stageOrder = []string{StageXRay, StageSpectralIndex, StageOptical, StageFrequency, StageCalculate}

// begin checks that stage is the next one due.
func (t *Trial) begin(ctx context.Context, stage string) (context.Context, error) {
	if t.done >= len(stageOrder) || stageOrder[t.done] != stage {
		expected := "none"
		if t.done < len(stageOrder) {
			expected = stageOrder[t.done]
		}
		return ctx, errors.NewStageError(stage, "", errors.NewValidationError("stage", stage, "out of order, expected "+expected))
	}
	ctx = logging.WithRunID(ctx, t.options.RunID)
	return logging.WithStage(ctx, stage), nil
}

func (t *Trial) finish() {
	t.done++
	t.report.updateRates()
}

// LoadXRay adds the X-ray records in file order and indexes their multiplicity.
func (t *Trial) LoadXRay(ctx context.Context, recs []records.Record) error {
	ctx, err := t.begin(ctx, StageXRay)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	for _, r := range recs {
		t.xray.Add(r)
	}
	t.xrayIndex = multiplicity.Build(t.xray.IDs())

	t.report.XRay = XRayReport{Records: t.xray.Len(), Bursts: len(t.xrayIndex.Counts())}
	logger.Info().
		Int("records", t.report.XRay.Records).
		Int("bursts", t.report.XRay.Bursts).
		Msg("Loaded X-ray records")

	t.finish()
	return nil
}

// LoadSpectralIndex attaches spectral indexes to the X-ray records and drops
// X-ray identifiers that received none from the X-ray index.
func (t *Trial) LoadSpectralIndex(ctx context.Context, rows []pairing.SpectralIndexRow) error {
	ctx, err := t.begin(ctx, StageSpectralIndex)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	stats := pairing.AttachSpectralIndex(t.xray, rows)
	unmatched := make([]string, 0, len(stats.Unmatched))
	for _, row := range stats.Unmatched {
		unmatched = append(unmatched, row.ID)
		logging.FromContext(logging.WithBurst(ctx, row.ID)).Debug().Msg("Spectral index has no X-ray record")
	}
	t.report.SpectralIndex = SpectralIndexReport{
		Rows:      stats.Rows,
		Pairs:     stats.Pairs,
		Unmatched: unmatched,
	}

	var prune reconcile.PruneResult
	t.xrayIndex, prune = reconcile.PruneUnindexed(t.xrayIndex, t.xray)
	t.report.Prune = prune
	for _, id := range prune.Removed {
		logging.FromContext(logging.WithBurst(ctx, id)).Debug().Msg("X-ray burst has no spectral index")
	}

	logger.Info().
		Int("rows", stats.Rows).
		Int("pairs", stats.Pairs).
		Int("unmatched", len(unmatched)).
		Int("pruned", len(prune.Removed)).
		Msg("Attached spectral indexes")

	t.finish()
	return nil
}

// LoadOptical pairs every observation with X-ray records and reconciles the
// X-ray and optical indexes to find the number of possible pairings.
func (t *Trial) LoadOptical(ctx context.Context, observations []pairing.Observation) error {
	ctx, err := t.begin(ctx, StageOptical)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	stats := t.matcher.MatchAll(t.xray, observations, t.enriched)
	t.unmatched = stats.Unmatched
	for _, obs := range stats.Unmatched {
		logging.FromContext(logging.WithBurst(ctx, obs.ID)).Debug().
			Float64("dt_s", obs.Optical.Dt).
			Msg("Optical observation has no X-ray pairing")
	}

	b := multiplicity.NewBuilder()
	for _, obs := range observations {
		b.Add(obs.ID)
	}
	t.opticalIndex = b.Flush()

	t.reconciled = reconcile.Reconcile(t.xrayIndex, t.opticalIndex)
	for _, id := range t.reconciled.Stats.RemovedFromXRay {
		logging.FromContext(logging.WithBurst(ctx, id)).Debug().Msg("X-ray burst has no optical observation")
	}
	for _, id := range t.reconciled.Stats.RemovedFromOptical {
		logging.FromContext(logging.WithBurst(ctx, id)).Debug().Msg("Optical burst has no X-ray record")
	}

	t.report.Optical = OpticalReport{
		Rows:        stats.Rows,
		Bursts:      len(t.opticalIndex.Counts()),
		Pairs:       stats.Pairs,
		Unmatched:   len(stats.Unmatched),
		InvalidTime: stats.InvalidTime,
	}
	t.report.Reconcile = t.reconciled.Stats
	t.report.TotalPossible = t.reconciled.TotalPossible

	logger.Info().
		Float64("tolerance", t.matcher.Tolerance()).
		Int("rows", stats.Rows).
		Int("pairs", stats.Pairs).
		Int("possible", t.reconciled.TotalPossible).
		Int("unmatched", len(stats.Unmatched)).
		Msg("Paired optical observations")

	t.finish()
	return nil
}

// LoadFrequency assigns optical frequencies by setup.
func (t *Trial) LoadFrequency(ctx context.Context, rows []pairing.FrequencyRow) error {
	ctx, err := t.begin(ctx, StageFrequency)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	stats := pairing.AssignFrequencies(t.enriched, rows)
	t.unassigned = stats.Unassigned
	for i := range stats.Unassigned {
		r := &stats.Unassigned[i]
		logging.FromContext(logging.WithBurst(ctx, r.ID)).Warn().
			Str("telescope", r.Optical.Telescope).
			Str("instrument", r.Optical.Instrument).
			Str("filter", r.Optical.Filter).
			Msg("No frequency for optical setup")
	}

	t.report.Frequency = FrequencyReport{
		Rows:       stats.Rows,
		Assigned:   stats.Assigned,
		Unassigned: len(stats.Unassigned),
	}
	logger.Info().
		Int("rows", stats.Rows).
		Int("assigned", stats.Assigned).
		Int("unassigned", len(stats.Unassigned)).
		Msg("Assigned optical frequencies")

	t.finish()
	return nil
}

// Calculate computes the spectral index of every fully populated record.
func (t *Trial) Calculate(ctx context.Context) error {
	ctx, err := t.begin(ctx, StageCalculate)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	t.report.Calculation = spectral.NewCalculator().Run(ctx, t.enriched)
	t.report.Summary = spectral.Summarize(t.enriched.FullyPopulated())

	logger.Info().
		Int("calculated", t.report.Calculation.Calculated).
		Int("degenerate", t.report.Calculation.Degenerate).
		Msg("Calculated spectral indexes")

	t.finish()
	return nil
}

// Report returns a copy of the counters collected so far.
func (t *Trial) Report() Report {
	return t.report
}

// Tolerance returns the percent-difference threshold in use.
func (t *Trial) Tolerance() float64 {
	return t.options.Tolerance
}

// XRay returns the X-ray record store.
func (t *Trial) XRay() *records.Store {
	return t.xray
}

// Enriched returns the store of records produced by optical pairing.
func (t *Trial) Enriched() *records.Store {
	return t.enriched
}

// Results returns the fully populated enriched records in pairing order.
func (t *Trial) Results() []records.Record {
	return t.enriched.FullyPopulated()
}

// Reconciled returns the reconciliation result, or nil before the optical load.
func (t *Trial) Reconciled() *reconcile.Result {
	return t.reconciled
}

// Unmatched returns the optical observations that produced no pairing.
func (t *Trial) Unmatched() []pairing.Observation {
	return t.unmatched
}

// Unassigned returns the enriched records left without a frequency.
func (t *Trial) Unassigned() []records.Record {
	return t.unassigned
}

// Inputs holds the parsed rows of the four datasets.
type Inputs struct {
	XRay          []records.Record
	SpectralIndex []pairing.SpectralIndexRow
	Optical       []pairing.Observation
	Frequency     []pairing.FrequencyRow
}

// Run executes every stage of a new trial over in.
func Run(ctx context.Context, in Inputs, opts ...Option) (*Trial, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := t.LoadXRay(ctx, in.XRay); err != nil {
		return nil, err
	}
	if err := t.LoadSpectralIndex(ctx, in.SpectralIndex); err != nil {
		return nil, err
	}
	if err := t.LoadOptical(ctx, in.Optical); err != nil {
		return nil, err
	}
	if err := t.LoadFrequency(ctx, in.Frequency); err != nil {
		return nil, err
	}
	if err := t.Calculate(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
