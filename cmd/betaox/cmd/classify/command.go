// Package classify provides the classify command, which finds optically
// dark bursts in a terse pairing table.
package classify

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/betaox/internal/appcontext"
)

// Flags holds the flags for the classify command.
type Flags struct {
	Method      string
	Darkest     bool
	DeltaBeta   bool
	Tolerance   float64
	Burst       string
	Plot        bool
	OutputDir   string
	NoWrite     bool
	Interactive bool
}

// NewCommand creates the classify command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "classify <pairings.csv>",
		GroupID: "core",
		Short:   "Find optically dark bursts in a terse pairing table",
		Long: `Classify reads a terse pairing table written by run and selects the
pairings that are optically dark:

• jakobsson    - beta_OX is below 0.5, upper uncertainty included
• vanderhorst  - beta_OX is more than 0.5 below beta_X, uncertainties included

With --delta-beta the upper bound of beta_OX is widened by log10(1 + t/100)
for the tolerance t the table was paired with. With --darkest only the
darkest pairing of each burst is kept.

Dark lists are written into the output directory, one file per method,
and optionally plotted.`,
		Example: `  betaox classify Written_Files/GRB_Pairings-dt_5%.csv
  betaox classify table.csv --method vdh --darkest
  betaox classify table.csv --delta-beta -t 10 --plot
  betaox classify table.csv --burst GRB050525A -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, flags, args[0], Streams{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
				Err: cmd.ErrOrStderr(),
			})
		},
	}

	flags = addFlags(cmd, app.Settings())

	return cmd
}

// addFlags registers the classify flags, defaulting to the configured settings.
func addFlags(cmd *cobra.Command, s appcontext.Settings) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Method, "method", "m", "both", "darkness criterion: jakobsson, vanderhorst, both")
	cmd.Flags().BoolVar(&flags.Darkest, "darkest", false, "keep only the darkest pairing of each burst")
	cmd.Flags().BoolVar(&flags.DeltaBeta, "delta-beta", s.DeltaBeta, "widen beta_OX bounds by the tolerance")
	cmd.Flags().Float64VarP(&flags.Tolerance, "tolerance", "t", s.Tolerance, "tolerance the table was paired with, in percent")
	cmd.Flags().StringVar(&flags.Burst, "burst", "", "classify only pairings of this burst")
	cmd.Flags().BoolVar(&flags.Plot, "plot", s.Plot, "plot each dark list")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", s.OutputDir, "directory the dark lists are written to")
	cmd.Flags().BoolVar(&flags.NoWrite, "no-write", false, "do not write the dark lists")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", s.Interactive, "ask again when the table cannot be opened")

	return flags
}
