package classify

import (
	"fmt"
	"io"

	"github.com/agentstation/betaox/internal/cmd/output"
	"github.com/agentstation/betaox/internal/cmd/table"
)

func display(w io.Writer, format output.Format, out Output) error {
	if !output.IsTable(format) {
		return output.FormatAny(w, format, out, nil)
	}

	for _, res := range out.Results {
		kind := "dark"
		if res.Darkest {
			kind = "darkest"
		}
		fmt.Fprintf(w, "%s: %d %s of %d pairings\n", res.Method.Label(), len(res.Dark), kind, out.Pairings)
		if len(res.Dark) > 0 {
			data := table.ClassifiedToTableData(res.Dark)
			if err := output.FormatAny(w, format, out, &data); err != nil {
				return err
			}
		}
		if res.Path != "" {
			fmt.Fprintf(w, "Wrote %s\n", res.Path)
		}
		if res.Plot != "" {
			fmt.Fprintf(w, "Wrote plot to %s\n", res.Plot)
		}
		fmt.Fprintln(w)
	}
	return nil
}
