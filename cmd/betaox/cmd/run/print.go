package run

import (
	"fmt"
	"io"

	"github.com/agentstation/betaox/internal/cmd/output"
	"github.com/agentstation/betaox/internal/cmd/table"
)

// display writes the run output. Structured formats get the whole Output;
// table formats get one table per section followed by the summary.
func display(w io.Writer, format output.Format, out Output) error {
	if !output.IsTable(format) {
		return output.FormatAny(w, format, out, nil)
	}

	sections := []struct {
		title string
		show  bool
		data  table.Data
	}{
		{"Stages", true, table.ReportToTableData(out.Report)},
		{"Results", len(out.Results) > 0, table.ResultsToTableData(out.Results, format == output.FormatWide)},
		{"Unmatched optical rows", len(out.Unmatched) > 0, table.UnmatchedToTableData(out.Unmatched)},
		{"Pairings without frequency", len(out.Unassigned) > 0, table.UnassignedToTableData(out.Unassigned)},
		{"Multiplicity", len(out.Multiplicity) > 0, table.MultiplicityToTableData(out.Multiplicity)},
	}

	for _, s := range sections {
		if !s.show {
			continue
		}
		fmt.Fprintf(w, "%s:\n", s.title)
		if err := output.FormatAny(w, format, out, &s.data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, out.Report.Describe())
	for _, written := range out.Written {
		fmt.Fprintf(w, "Wrote %d rows to %s\n", written.Rows, written.Path)
	}
	if out.Plot != "" {
		fmt.Fprintf(w, "Wrote plot to %s\n", out.Plot)
	}
	return nil
}
