package pairing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/pairing"
	"github.com/agentstation/betaox/pkg/records"
)

var setupA = records.Setup{Telescope: "TelA", Instrument: "InstA", Filter: "FilterA"}

func xrayStore(t *testing.T, rows ...records.Record) *records.Store {
	t.Helper()
	return records.NewStoreFrom(rows...)
}

func withIndex(r records.Record, beta float64) records.Record {
	r.SetSpectralIndex(beta, 0.1, 0.1)
	return r
}

func observation(id string, dtSeconds float64) pairing.Observation {
	return pairing.Observation{
		ID: id,
		Optical: records.Optical{
			Dt:       dtSeconds,
			Setup:    setupA,
			Exposure: 60,
			Flux:     5,
			Sigma:    0.5,
		},
	}
}

func TestPercentDifference(t *testing.T) {
	pct, ok := pairing.PercentDifference(400, 390)
	require.True(t, ok)
	assert.InDelta(t, 2.564, pct, 1e-3)

	pct, ok = pairing.PercentDifference(100, 390)
	require.True(t, ok)
	assert.InDelta(t, 74.36, pct, 1e-2)

	_, ok = pairing.PercentDifference(100, 0)
	assert.False(t, ok, "zero optical time is undefined")

	_, ok = pairing.PercentDifference(100, -5)
	assert.False(t, ok, "negative optical time is undefined")
}

func TestNewMatcherValidatesTolerance(t *testing.T) {
	for _, tol := range []float64{0, -1} {
		_, err := pairing.NewMatcher(tol)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	}

	m, err := pairing.NewMatcher(5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.Tolerance())
}

func TestMatcherTraversalOrder(t *testing.T) {
	store := xrayStore(t,
		withIndex(records.New("G1", 100, 50, 10, 1), 0.5),
		withIndex(records.New("G1", 400, 50, 10, 1), 0.6),
	)
	m, err := pairing.NewMatcher(5)
	require.NoError(t, err)

	// The 100s record is scanned first, fails, and the scan continues to 400s.
	assert.Equal(t, 1, m.FindFrom(store, "G1", 390, 0))
	// Starting after the 400s record there is nothing left to match.
	assert.Equal(t, -1, m.FindFrom(store, "G1", 390, 2))

	enriched := m.Match(store, observation("G1", 390))
	require.Len(t, enriched, 1)
	assert.Equal(t, 400.0, enriched[0].XRay.Dt)
	assert.Equal(t, 0.6, enriched[0].BetaX.Value.Or(0))
	assert.Equal(t, 390.0, enriched[0].Optical.Dt)
	assert.Equal(t, setupA, enriched[0].Optical.Setup)
}

func TestMatcherOneObservationManyEpochs(t *testing.T) {
	store := xrayStore(t,
		withIndex(records.New("G1", 1000, 50, 10, 1), 0.5),
		withIndex(records.New("G2", 1000, 50, 10, 1), 0.5),
		withIndex(records.New("G1", 1010, 50, 10, 1), 0.5),
		withIndex(records.New("G1", 990, 50, 10, 1), 0.5),
	)
	m, err := pairing.NewMatcher(5)
	require.NoError(t, err)

	enriched := m.Match(store, observation("G1", 1000))
	require.Len(t, enriched, 3)
	assert.Equal(t, []float64{1000, 1010, 990},
		[]float64{enriched[0].XRay.Dt, enriched[1].XRay.Dt, enriched[2].XRay.Dt})
	for _, r := range enriched {
		assert.Equal(t, "G1", r.ID)
	}
}

func TestMatcherRequiresSpectralIndex(t *testing.T) {
	store := xrayStore(t, records.New("G1", 100, 50, 10, 1))
	m, err := pairing.NewMatcher(50)
	require.NoError(t, err)

	assert.Empty(t, m.Match(store, observation("G1", 100)))
}

func TestMatcherToleranceIsStrict(t *testing.T) {
	store := xrayStore(t, withIndex(records.New("G1", 105, 50, 10, 1), 0.5))
	m, err := pairing.NewMatcher(5)
	require.NoError(t, err)

	assert.Empty(t, m.Match(store, observation("G1", 100)), "exactly 5% must not match a 5% tolerance")
}

func TestMatchAll(t *testing.T) {
	store := xrayStore(t,
		withIndex(records.New("G1", 100, 50, 10, 1), 0.5),
		withIndex(records.New("G2", 200, 50, 10, 1), 0.5),
	)
	m, err := pairing.NewMatcher(5)
	require.NoError(t, err)

	enriched := records.NewStore()
	stats := m.MatchAll(store, []pairing.Observation{
		observation("G1", 101),
		observation("G1", 0),
		observation("G3", 100),
		observation("G2", 199),
	}, enriched)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 2, stats.Pairs)
	assert.Len(t, stats.Unmatched, 2)
	assert.Equal(t, 1, stats.InvalidTime)
	assert.Equal(t, []string{"G1", "G2"}, enriched.IDs())
	assert.Equal(t, 2, store.Len(), "matching must not change the X-ray store")
}

func TestAttachSpectralIndex(t *testing.T) {
	store := xrayStore(t,
		records.New("A", 1, 1, 1, 1),
		records.New("A", 2, 1, 1, 1),
		records.New("B", 3, 1, 1, 1),
	)

	stats := pairing.AttachSpectralIndex(store, []pairing.SpectralIndexRow{
		{ID: "A", Value: 0.8, Upper: 0.1, Lower: 0.2},
		{ID: "Z", Value: 1.0},
	})

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.Pairs)
	require.Len(t, stats.Unmatched, 1)
	assert.Equal(t, "Z", stats.Unmatched[0].ID)

	assert.True(t, store.At(0).HasSpectralIndex())
	assert.True(t, store.At(1).HasSpectralIndex())
	assert.False(t, store.At(2).HasSpectralIndex())
	assert.Equal(t, 0.2, store.At(1).BetaX.Lower.Or(0))
}

func TestAssignFrequencyIgnoresIdentifier(t *testing.T) {
	base := withIndex(records.New("A", 100, 1, 1, 1), 0.5)
	other := withIndex(records.New("B", 100, 1, 1, 1), 0.5)
	differentSetup := observation("C", 100)
	differentSetup.Optical.Filter = "FilterB"

	populated := base.Enrich(observation("A", 100).Optical)
	populated.SetFrequency(1e14, 700)

	enriched := records.NewStoreFrom(
		base.Enrich(observation("A", 100).Optical),
		other.Enrich(observation("B", 100).Optical),
		base.Enrich(differentSetup.Optical),
		populated,
	)

	n := pairing.AssignFrequency(enriched, pairing.FrequencyRow{Setup: setupA, Wavelength: 700, Frequency: 4.28e14})
	assert.Equal(t, 2, n)

	assert.Equal(t, 4.28e14, enriched.At(0).FrequencyOptical.Or(0))
	assert.Equal(t, 4.28e14, enriched.At(1).FrequencyOptical.Or(0))
	assert.False(t, enriched.At(2).IsFullyPopulated())
	assert.Equal(t, 1e14, enriched.At(3).FrequencyOptical.Or(0), "populated records are not overwritten")
}

func TestAssignFrequencies(t *testing.T) {
	rec := withIndex(records.New("A", 100, 1, 1, 1), 0.5)
	other := observation("A", 100)
	other.Optical.Telescope = "TelB"
	enriched := records.NewStoreFrom(
		rec.Enrich(observation("A", 100).Optical),
		rec.Enrich(other.Optical),
	)

	stats := pairing.AssignFrequencies(enriched, []pairing.FrequencyRow{
		{Setup: setupA, Wavelength: 500, Frequency: 5.99e14},
		{Setup: setupA, Wavelength: 600, Frequency: 5.0e14},
	})

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Assigned)
	require.Len(t, stats.Unassigned, 1)
	assert.Equal(t, "TelB", stats.Unassigned[0].Optical.Telescope)
	assert.Equal(t, 5.99e14, enriched.At(0).FrequencyOptical.Or(0), "first matching row wins")
}
