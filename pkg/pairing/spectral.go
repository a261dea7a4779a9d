package pairing

import "github.com/agentstation/betaox/pkg/records"

// AttachStats summarizes a spectral-index attachment pass.
type AttachStats struct {
	// Rows is the number of spectral-index rows processed.
	Rows int
	// Pairs is the number of X-ray records updated, summed over rows.
	Pairs int
	// Unmatched holds the rows whose identifier had no X-ray record.
	Unmatched []SpectralIndexRow
}

// AttachSpectralIndex applies each row to every X-ray record with the same
// identifier. A later row for the same identifier overwrites an earlier one.
func AttachSpectralIndex(xray *records.Store, rows []SpectralIndexRow) AttachStats {
	stats := AttachStats{Rows: len(rows)}
	for _, row := range rows {
		n := 0
		xray.Each(func(_ int, r *records.Record) {
			if r.ID == row.ID {
				r.SetSpectralIndex(row.Value, row.Upper, row.Lower)
				n++
			}
		})
		if n == 0 {
			stats.Unmatched = append(stats.Unmatched, row)
		}
		stats.Pairs += n
	}
	return stats
}
