package classify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

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
)

// Streams are the terminal streams a classification reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Result is the outcome of one criterion.
type Result struct {
	Method  darkness.Method       `json:"method" yaml:"method"`
	Darkest bool                  `json:"darkest" yaml:"darkest"`
	Dark    []darkness.Classified `json:"dark" yaml:"dark"`
	Path    string                `json:"path,omitempty" yaml:"path,omitempty"`
	Plot    string                `json:"plot,omitempty" yaml:"plot,omitempty"`
}

// Output is the structured result of a classification.
type Output struct {
	Source    string   `json:"source" yaml:"source"`
	Pairings  int      `json:"pairings" yaml:"pairings"`
	DeltaBeta float64  `json:"delta_beta" yaml:"delta_beta"`
	Results   []Result `json:"results" yaml:"results"`
}

// Execute classifies the pairings in source.
func Execute(ctx context.Context, app appcontext.Interface, flags *Flags, source string, streams Streams) error {
	logger := app.Logger()

	methods, err := parseMethods(flags.Method)
	if err != nil {
		return err
	}
	if flags.DeltaBeta && flags.Tolerance <= 0 {
		return errors.NewValidationError("tolerance", flags.Tolerance, "must be positive")
	}

	var opener dataset.Opener
	if flags.Interactive {
		opener.Retry = prompt.New(streams.In, streams.Err).Retry()
	}
	f, err := opener.Open(dataset.Pairings, source)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	pairings, err := dataset.ReadPairings(f.File, f.Path)
	if err != nil {
		return err
	}
	pairings = darkness.FilterBurst(pairings, flags.Burst)
	if len(pairings) == 0 {
		return errors.NewNotFoundError("pairings", burstOrAll(flags.Burst))
	}

	var deltaBeta float64
	if flags.DeltaBeta {
		deltaBeta = darkness.DeltaBeta(flags.Tolerance)
	}

	out := Output{Source: f.Path, Pairings: len(pairings), DeltaBeta: deltaBeta}
	for _, method := range methods {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := classify(method, pairings, deltaBeta, flags, f.Path, logger)
		if err != nil {
			return err
		}
		out.Results = append(out.Results, res)
	}

	return display(streams.Out, output.Format(app.OutputFormat()), out)
}

func classify(method darkness.Method, pairings []darkness.Pairing, deltaBeta float64, flags *Flags, source string, logger *zerolog.Logger) (Result, error) {
	c, err := darkness.NewClassifier(method, deltaBeta)
	if err != nil {
		return Result{}, err
	}
	dark := c.Dark(pairings)
	if flags.Darkest {
		dark = darkness.Darkest(dark)
	}
	res := Result{Method: method, Darkest: flags.Darkest, Dark: dark}

	logger.Info().
		Str("method", string(method)).
		Int("pairings", len(pairings)).
		Int("dark", len(dark)).
		Float64("delta_beta", deltaBeta).
		Msg("Classified pairings")

	if len(dark) == 0 || (flags.NoWrite && !flags.Plot) {
		return res, nil
	}
	if err := os.MkdirAll(flags.OutputDir, constants.DirPermissions); err != nil {
		return res, errors.WrapIO("create", flags.OutputDir, err)
	}
	base := filepath.Join(flags.OutputDir, export.DarkBaseName(method, flags.Darkest, flags.DeltaBeta, source))

	if !flags.NoWrite {
		res.Path = base + ".csv"
		if _, err := export.WritePairingsFile(res.Path, darkness.Pairings(dark)); err != nil {
			return res, err
		}
	}

	if flags.Plot {
		title := fmt.Sprintf("%s dark bursts: βOX vs. βX", method.Label())
		_, err := chart.Save(base+".png", darkness.Pairings(dark), chart.WithTitle(title), chart.WithDeltaBeta(deltaBeta))
		switch {
		case errors.IsEmptyInput(err):
			logger.Warn().Str("method", string(method)).Msg("No calculated pairings to plot")
		case err != nil:
			return res, err
		default:
			res.Plot = base + ".png"
		}
	}
	return res, nil
}

// parseMethods expands a criterion name, where "both" selects every criterion.
func parseMethods(s string) ([]darkness.Method, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") || s == "" {
		return darkness.Methods(), nil
	}
	m, err := darkness.ParseMethod(s)
	if err != nil {
		return nil, errors.NewValidationError("method", s, err.Error())
	}
	return []darkness.Method{m}, nil
}

func burstOrAll(id string) string {
	if id == "" {
		return "*"
	}
	return id
}
