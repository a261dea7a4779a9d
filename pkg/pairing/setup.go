package pairing

import "github.com/agentstation/betaox/pkg/records"

// AssignFrequency sets the optical frequency of every enriched record whose
// setup matches row and which has no frequency yet. The burst identifier is
// not consulted: frequency belongs to the optical configuration. It returns
// the number of records updated.
func AssignFrequency(enriched *records.Store, row FrequencyRow) int {
	n := 0
	enriched.Each(func(_ int, r *records.Record) {
		if r.Optical.Setup == row.Setup && !r.IsFullyPopulated() {
			r.SetFrequency(row.Frequency, row.Wavelength)
			n++
		}
	})
	return n
}

// FrequencyStats summarizes a frequency assignment pass.
type FrequencyStats struct {
	// Rows is the number of lookup rows processed.
	Rows int
	// Assigned is the number of enriched records that received a frequency.
	Assigned int
	// Unassigned holds the enriched records still without a frequency.
	Unassigned []records.Record
}

// AssignFrequencies applies every lookup row in order. The first row that
// matches a record's setup wins.
func AssignFrequencies(enriched *records.Store, rows []FrequencyRow) FrequencyStats {
	stats := FrequencyStats{Rows: len(rows)}
	for _, row := range rows {
		stats.Assigned += AssignFrequency(enriched, row)
	}
	stats.Unassigned = enriched.Unpopulated()
	return stats
}
