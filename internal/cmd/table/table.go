// Package table converts domain values to rows for console output.
package table

import (
	"strconv"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/optional"
	"github.com/agentstation/betaox/pkg/pairing"
	"github.com/agentstation/betaox/pkg/pipeline"
	"github.com/agentstation/betaox/pkg/reconcile"
	"github.com/agentstation/betaox/pkg/records"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func count(n int) string {
	return strconv.Itoa(n)
}

// FormatRate renders a percentage, or "no data" when unset.
func FormatRate(f optional.Float) string {
	v, ok := f.Get()
	if !ok {
		return "no data"
	}
	return num(v) + "%"
}

// ReportToTableData converts a trial report to one row per stage.
func ReportToTableData(r pipeline.Report) Data {
	rows := [][]string{
		{"X-ray", count(r.XRay.Records), count(r.XRay.Records), "-", count(r.XRay.Bursts) + " bursts"},
		{"Spectral index", count(r.SpectralIndex.Rows), count(r.SpectralIndex.Pairs), FormatRate(r.Rates.SpectralIndex),
			count(len(r.SpectralIndex.Unmatched)) + " unmatched, " + count(len(r.Prune.Removed)) + " X-ray bursts pruned"},
		{"Optical", count(r.Optical.Rows), count(r.Optical.Pairs), FormatRate(r.Rates.Pairing),
			count(r.TotalPossible) + " possible, " + count(r.Optical.Unmatched) + " unmatched"},
		{"Reconcile", count(r.Reconcile.XRayBefore + r.Reconcile.OpticalBefore), count(r.Reconcile.XRayAfter + r.Reconcile.OpticalAfter), "-",
			count(len(r.Reconcile.RemovedFromXRay)) + " X-ray, " + count(len(r.Reconcile.RemovedFromOptical)) + " optical disjoint"},
		{"Frequency", count(r.Frequency.Rows), count(r.Frequency.Assigned), "-", count(r.Frequency.Unassigned) + " unassigned"},
		{"Calculate", count(r.Calculation.Calculated + r.Calculation.Skipped), count(r.Calculation.Calculated), FormatRate(r.Rates.Calculation),
			count(r.Calculation.Degenerate) + " degenerate"},
	}
	return Data{
		Headers:         []string{"Stage", "Rows", "Paired", "Rate", "Notes"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

// ResultsToTableData converts calculated records to rows. The wide form
// adds the optical setup and fluxes.
func ResultsToTableData(recs []records.Record, wide bool) Data {
	headers := []string{"GRB ID", "dt_x [hr]", "dt_o [hr]", "Beta_X", "Beta_OX", "Sigma_OX Up", "Sigma_OX Low"}
	if wide {
		headers = append(headers, "Telescope", "Instrument", "Filter", "F_x [uJy]", "F_o [uJy]", "Frequency_o [Hz]")
	}

	rows := make([][]string, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		row := []string{
			r.ID,
			num(r.XRay.Dt / constants.SecondsPerHour),
			num(r.Optical.Dt / constants.SecondsPerHour),
			num(r.BetaX.Value.Or(0)),
			num(r.BetaOX.Value),
			num(r.BetaOX.Upper),
			num(r.BetaOX.Lower),
		}
		if wide {
			row = append(row,
				r.Optical.Telescope,
				r.Optical.Instrument,
				r.Optical.Filter,
				num(r.XRay.Flux),
				num(r.Optical.Flux),
				strconv.FormatFloat(r.FrequencyOptical.Or(0), 'e', 2, 64),
			)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// UnassignedToTableData lists records whose optical setup had no frequency.
func UnassignedToTableData(recs []records.Record) Data {
	rows := make([][]string, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		rows = append(rows, []string{
			r.ID,
			num(r.Optical.Dt / constants.SecondsPerHour),
			r.Optical.Telescope,
			r.Optical.Instrument,
			r.Optical.Filter,
		})
	}
	return Data{
		Headers: []string{"GRB ID", "dt_o [hr]", "Telescope", "Instrument", "Filter"},
		Rows:    rows,
	}
}

// UnmatchedToTableData lists optical observations that produced no pairing.
func UnmatchedToTableData(observations []pairing.Observation) Data {
	rows := make([][]string, 0, len(observations))
	for _, obs := range observations {
		rows = append(rows, []string{
			obs.ID,
			num(obs.Optical.Dt / constants.SecondsPerHour),
			obs.Optical.Telescope,
			obs.Optical.Filter,
		})
	}
	return Data{
		Headers: []string{"GRB ID", "dt_o [hr]", "Telescope", "Filter"},
		Rows:    rows,
	}
}

// MultiplicityToTableData lists the shared identifiers with their counts.
func MultiplicityToTableData(rows []reconcile.Row) Data {
	out := make([][]string, 0, len(rows))
	total := 0
	for _, r := range rows {
		out = append(out, []string{r.ID, count(r.XRay), count(r.Optical), count(r.Possible)})
		total += r.Possible
	}
	out = append(out, []string{"Total", "", "", count(total)})
	return Data{
		Headers:         []string{"GRB ID", "X-ray", "Optical", "Possible"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// ClassifiedToTableData lists dark pairings with their distance.
func ClassifiedToTableData(classified []darkness.Classified) Data {
	rows := make([][]string, 0, len(classified))
	for _, c := range classified {
		rows = append(rows, []string{
			c.ID,
			num(c.DtXRay),
			num(c.DtOptical),
			num(c.Separation),
			num(c.BetaX),
			num(c.BetaOX),
			num(c.BetaOXUpper),
			num(c.BetaOXLower),
			strconv.FormatFloat(c.Distance, 'f', 3, 64),
		})
	}
	return Data{
		Headers: []string{"GRB ID", "dt_x [hr]", "dt_o [hr]", "dt [hr]", "Beta_X", "Beta_OX", "Sigma_OX Up", "Sigma_OX Low", "D"},
		Rows:    rows,
	}
}
