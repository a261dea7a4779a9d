package pairing

import (
	"math"

	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/records"
)

// PercentDifference returns 100*|dtX-dtO|/dtO. It reports false when dtO is
// not a positive finite number, since the difference is then undefined.
func PercentDifference(dtX, dtO float64) (float64, bool) {
	if !(dtO > 0) || math.IsInf(dtO, 1) {
		return 0, false
	}
	return 100 * math.Abs(dtX-dtO) / dtO, true
}

// Matcher pairs optical observations with X-ray records.
type Matcher struct {
	tolerance float64
}

// NewMatcher creates a matcher accepting pairs whose percent difference in
// elapsed time is strictly below tolerance.
func NewMatcher(tolerance float64) (*Matcher, error) {
	if !(tolerance > 0) || math.IsInf(tolerance, 1) {
		return nil, errors.NewValidationError("tolerance", tolerance, "must be a positive finite percentage")
	}
	return &Matcher{tolerance: tolerance}, nil
}

// Tolerance returns the percent-difference threshold.
func (m *Matcher) Tolerance() float64 {
	return m.tolerance
}

// Accepts reports whether an X-ray record is a valid partner for an
// optical observation taken dtO seconds after trigger.
func (m *Matcher) Accepts(r *records.Record, id string, dtO float64) bool {
	if r.ID != id || !r.HasSpectralIndex() {
		return false
	}
	pct, ok := PercentDifference(r.XRay.Dt, dtO)
	return ok && pct < m.tolerance
}

// FindFrom returns the position of the first record at or after from that
// Accepts the observation, or -1.
func (m *Matcher) FindFrom(xray *records.Store, id string, dtO float64, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < xray.Len(); i++ {
		if m.Accepts(xray.At(i), id, dtO) {
			return i
		}
	}
	return -1
}

// Match pairs one observation with every acceptable X-ray record, walking
// the store once from the start. Each pairing yields an independent
// enriched record, so one observation may pair with several epochs.
func (m *Matcher) Match(xray *records.Store, obs Observation) []records.Record {
	var enriched []records.Record
	location := 0
	for location < xray.Len() {
		location = m.FindFrom(xray, obs.ID, obs.Optical.Dt, location)
		if location == -1 {
			break
		}
		enriched = append(enriched, xray.At(location).Enrich(obs.Optical))
		location++
	}
	return enriched
}

// MatchStats summarizes a matching pass over the optical dataset.
type MatchStats struct {
	// Rows is the number of observations processed.
	Rows int
	// Pairs is the number of enriched records produced.
	Pairs int
	// Unmatched holds observations that produced no pairing.
	Unmatched []Observation
	// InvalidTime counts unmatched observations whose elapsed time was not positive.
	InvalidTime int
}

// MatchAll runs Match for every observation in order and appends the
// enriched records to into.
func (m *Matcher) MatchAll(xray *records.Store, observations []Observation, into *records.Store) MatchStats {
	stats := MatchStats{Rows: len(observations)}
	for _, obs := range observations {
		pairs := m.Match(xray, obs)
		for _, r := range pairs {
			into.Add(r)
		}
		stats.Pairs += len(pairs)
		if len(pairs) == 0 {
			stats.Unmatched = append(stats.Unmatched, obs)
			if _, ok := PercentDifference(0, obs.Optical.Dt); !ok {
				stats.InvalidTime++
			}
		}
	}
	return stats
}
