package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/betaox/internal/appcontext"
	"github.com/agentstation/betaox/internal/chart"
	"github.com/agentstation/betaox/internal/cmd/output"
	"github.com/agentstation/betaox/internal/dataset"
	"github.com/agentstation/betaox/internal/export"
	"github.com/agentstation/betaox/internal/prompt"
	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/logging"
	"github.com/agentstation/betaox/pkg/pairing"
	"github.com/agentstation/betaox/pkg/pipeline"
	"github.com/agentstation/betaox/pkg/reconcile"
	"github.com/agentstation/betaox/pkg/records"
)

// Streams are the terminal streams a run reads answers from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Output is the structured result of a run.
type Output struct {
	Report       pipeline.Report       `json:"report" yaml:"report"`
	Results      []records.Record      `json:"results" yaml:"results"`
	Written      []export.Written      `json:"written,omitempty" yaml:"written,omitempty"`
	Plot         string                `json:"plot,omitempty" yaml:"plot,omitempty"`
	Unmatched    []pairing.Observation `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Unassigned   []records.Record      `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
	Multiplicity []reconcile.Row       `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
}

// Execute runs one trial with the given flags.
func Execute(ctx context.Context, app appcontext.Interface, flags *Flags, streams Streams) error {
	logger := app.Logger()

	var opener dataset.Opener
	if flags.Interactive {
		p := prompt.New(streams.In, streams.Err)
		opener.Retry = p.Retry()
		if !flags.toleranceSet {
			tolerance, err := p.Tolerance(flags.Tolerance)
			if err != nil {
				return errors.WrapIO("read", "tolerance", err)
			}
			flags.Tolerance = tolerance
		}
	} else if err := requirePaths(flags); err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, logger)
	in, err := readInputs(ctx, &opener, flags)
	if err != nil {
		return err
	}

	trial, err := pipeline.Run(ctx, in, pipeline.WithTolerance(flags.Tolerance))
	if err != nil {
		return err
	}

	out := Output{
		Report:  trial.Report(),
		Results: trial.Results(),
	}
	if flags.ShowUnmatched {
		out.Unmatched = trial.Unmatched()
	}
	if flags.ShowUnassigned {
		out.Unassigned = trial.Unassigned()
	}
	if flags.ShowMultiplicity {
		out.Multiplicity = trial.Reconciled().Rows()
	}

	if !flags.NoWrite {
		written, err := export.Write(out.Results, flags.Tolerance, export.WithDir(flags.OutputDir))
		if err != nil {
			return err
		}
		for _, w := range written {
			logger.Info().
				Str("table", w.Table.String()).
				Str("path", w.Path).
				Int("rows", w.Rows).
				Msg("Wrote table")
		}
		out.Written = written
	}

	if flags.Plot {
		path, err := drawPlot(out.Results, flags, logger)
		if err != nil {
			return err
		}
		out.Plot = path
	}

	return display(streams.Out, output.Format(app.OutputFormat()), out)
}

// requirePaths rejects a non-interactive run missing any input path.
func requirePaths(flags *Flags) error {
	required := []struct {
		flag string
		path string
	}{
		{"xray", flags.XRay},
		{"beta-x", flags.BetaX},
		{"optical", flags.Optical},
		{"frequency", flags.Frequency},
	}
	for _, r := range required {
		if r.path == "" {
			return errors.NewValidationError(r.flag, "", "input path is required")
		}
	}
	return nil
}

// readInputs opens and parses the four datasets.
func readInputs(ctx context.Context, opener *dataset.Opener, flags *Flags) (pipeline.Inputs, error) {
	var in pipeline.Inputs
	var err error

	if in.XRay, err = readFile(ctx, opener, dataset.XRay, flags.XRay, dataset.ReadXRay); err != nil {
		return in, err
	}
	if in.SpectralIndex, err = readFile(ctx, opener, dataset.SpectralIndex, flags.BetaX, dataset.ReadSpectralIndex); err != nil {
		return in, err
	}
	if in.Optical, err = readFile(ctx, opener, dataset.Optical, flags.Optical, dataset.ReadOptical); err != nil {
		return in, err
	}
	if in.Frequency, err = readFile(ctx, opener, dataset.Frequency, flags.Frequency, dataset.ReadFrequency); err != nil {
		return in, err
	}
	return in, nil
}

func readFile[T any](ctx context.Context, opener *dataset.Opener, kind dataset.Kind, path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := opener.Open(kind, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := read(f.File, f.Path)
	if err != nil {
		return nil, err
	}
	logging.FromContext(logging.WithFile(ctx, f.Path)).Debug().
		Str("kind", string(kind)).
		Int("rows", len(rows)).
		Msg("Read dataset")
	return rows, nil
}

// drawPlot renders the index plot for results. Nothing is drawn when no
// result has a cross-band index.
func drawPlot(results []records.Record, flags *Flags, logger *zerolog.Logger) (string, error) {
	pairings := make([]darkness.Pairing, 0, len(results))
	for i := range results {
		pairings = append(pairings, darkness.FromRecord(&results[i]))
	}

	opts := []chart.Option{
		chart.WithTitle(fmt.Sprintf("βOX vs. βX (dt within %s%%)", export.FormatTolerance(flags.Tolerance))),
	}
	if flags.DeltaBeta {
		opts = append(opts, chart.WithDeltaBeta(darkness.DeltaBeta(flags.Tolerance)))
	}

	if err := os.MkdirAll(flags.OutputDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", flags.OutputDir, err)
	}
	path := filepath.Join(flags.OutputDir, export.PlotFileName(flags.Tolerance))
	n, err := chart.Save(path, pairings, opts...)
	if errors.IsEmptyInput(err) {
		logger.Warn().Msg("No calculated pairings to plot")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	logger.Info().Str("path", path).Int("points", n).Msg("Wrote plot")
	return path, nil
}
