// Package run provides the run command, which pairs the four datasets
// of one trial and writes the paired tables.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/betaox/internal/appcontext"
)

// Flags holds the flags for the run command.
type Flags struct {
	Tolerance   float64
	XRay        string
	BetaX       string
	Optical     string
	Frequency   string
	OutputDir   string
	Plot        bool
	DeltaBeta   bool
	Interactive bool
	NoWrite     bool

	ShowUnmatched    bool
	ShowUnassigned   bool
	ShowMultiplicity bool

	// toleranceSet records an explicit --tolerance, which skips the prompt
	toleranceSet bool
}

// NewCommand creates the run command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Pair X-ray and optical observations and compute beta_OX",
		Long: `Run executes one trial over the four input datasets:

1. X-ray records       - burst, elapsed time, exposure, flux, uncertainty
2. X-ray index rows    - beta_X with upper and lower bounds per record
3. Optical rows        - burst, elapsed time in hours, telescope, instrument,
                         filter, exposure, flux, uncertainty
4. Frequency rows      - telescope, instrument, filter, wavelength, frequency

The command will:
• Attach X-ray indexes to their records and prune bursts without any
• Pair optical observations whose elapsed time lies within the tolerance
• Reconcile the multiplicity of both sides per burst
• Assign each pairing its optical frequency
• Compute beta_OX and its bounds for every fully populated record
• Write the comprehensive and terse tables into the output directory

With --interactive, unreadable paths and the tolerance are asked for on
the terminal.`,
		Example: `  betaox run --xray xray.txt --beta-x beta_x.txt --optical optical.txt --frequency freq.txt
  betaox run -t 10 --plot                   # Use files from config, 10% tolerance, draw plot
  betaox run --interactive                  # Ask for missing paths and the tolerance
  betaox run --no-write -o json             # Print results as JSON only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.toleranceSet = cmd.Flags().Changed("tolerance")
			return Execute(cmd.Context(), app, flags, Streams{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
				Err: cmd.ErrOrStderr(),
			})
		},
	}

	flags = addFlags(cmd, app.Settings())

	return cmd
}

// addFlags registers the run flags, defaulting to the configured settings.
func addFlags(cmd *cobra.Command, s appcontext.Settings) *Flags {
	flags := &Flags{}

	cmd.Flags().Float64VarP(&flags.Tolerance, "tolerance", "t", s.Tolerance, "percent difference allowed between X-ray and optical elapsed times")
	cmd.Flags().StringVar(&flags.XRay, "xray", s.XRayFile, "X-ray records file")
	cmd.Flags().StringVar(&flags.BetaX, "beta-x", s.BetaXFile, "X-ray spectral index file")
	cmd.Flags().StringVar(&flags.Optical, "optical", s.OpticalFile, "optical observations file")
	cmd.Flags().StringVar(&flags.Frequency, "frequency", s.FrequencyFile, "optical setup frequency file")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", s.OutputDir, "directory the tables and plot are written to")
	cmd.Flags().BoolVar(&flags.Plot, "plot", s.Plot, "draw the beta_OX vs beta_X plot")
	cmd.Flags().BoolVar(&flags.DeltaBeta, "delta-beta", s.DeltaBeta, "widen the plotted beta_OX bounds by the tolerance")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", s.Interactive, "ask for unreadable paths and the tolerance")
	cmd.Flags().BoolVar(&flags.NoWrite, "no-write", false, "do not write the paired tables")

	cmd.Flags().BoolVar(&flags.ShowUnmatched, "show-unmatched", false, "list optical rows without an X-ray partner")
	cmd.Flags().BoolVar(&flags.ShowUnassigned, "show-unassigned", false, "list pairings without an optical frequency")
	cmd.Flags().BoolVar(&flags.ShowMultiplicity, "show-multiplicity", false, "list per-burst multiplicity after reconciliation")

	return flags
}
