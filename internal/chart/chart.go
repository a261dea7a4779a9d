// Package chart draws the cross-band index against the X-ray index.
//
// Both axes are negated indexes, so -beta_OX is plotted against -beta_X
// with asymmetric error bars. Three reference lines mark beta_OX = beta_X,
// beta_OX = beta_X - 0.5 and beta_OX = 0.5, the boundaries of the two
// darkness criteria.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/errors"
)

// Options configures a chart.
type Options struct {
	Title     string
	DeltaBeta float64 // added to both cross-band index bounds
	Width     vg.Length
	Height    vg.Length
}

// Option is a function that configures chart Options.
type Option func(*Options)

// Defaults returns the default chart options.
func Defaults() *Options {
	return &Options{
		Title:  "βOX vs. βX",
		Width:  8 * vg.Inch,
		Height: 8 * vg.Inch,
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithDeltaBeta widens the cross-band index bounds by delta.
func WithDeltaBeta(delta float64) Option {
	return func(o *Options) {
		o.DeltaBeta = delta
	}
}

// WithSize sets the rendered size.
func WithSize(width, height vg.Length) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// errPoints carries points with errors on both axes.
type errPoints struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

// points converts pairings to plot coordinates, skipping uncalculated ones.
func points(pairings []darkness.Pairing, deltaBeta float64) errPoints {
	var pts errPoints
	for _, p := range pairings {
		if p.BetaOX == 0 {
			continue
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: -p.BetaX, Y: -p.BetaOX})
		pts.XErrors = append(pts.XErrors, struct{ Low, High float64 }{p.BetaXLower, p.BetaXUpper})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{p.BetaOXLower + deltaBeta, p.BetaOXUpper + deltaBeta})
	}
	return pts
}

// New builds the chart and returns it with the number of points drawn.
// It returns errors.ErrEmptyInput when no pairing has a calculated index.
func New(pairings []darkness.Pairing, opts ...Option) (*plot.Plot, int, error) {
	p, _, n, err := build(pairings, opts)
	return p, n, err
}

// build renders the chart and returns the resolved options.
func build(pairings []darkness.Pairing, opts []Option) (*plot.Plot, *Options, int, error) {
	options := Defaults()
	for _, opt := range opts {
		opt(options)
	}

	pts := points(pairings, options.DeltaBeta)
	if len(pts.XYs) == 0 {
		return nil, nil, 0, errors.ErrEmptyInput
	}

	p := plot.New()
	p.Title.Text = options.Title
	p.X.Label.Text = "βX"
	p.Y.Label.Text = "βOX"

	scatter, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to create scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.RGBA{G: 128, A: 255}

	xerr, err := plotter.NewXErrorBars(pts)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to create x error bars: %w", err)
	}
	yerr, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to create y error bars: %w", err)
	}
	xerr.LineStyle.Width = vg.Points(1)
	yerr.LineStyle.Width = vg.Points(1)

	equal := reference(func(x float64) float64 { return x }, color.RGBA{R: 255, A: 255}, vg.Points(1), vg.Points(2))
	offset := reference(func(x float64) float64 { return x - constants.VanDerHorstOffset }, color.RGBA{R: 165, G: 42, B: 42, A: 255}, vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2))
	threshold := reference(func(float64) float64 { return constants.JakobssonThreshold }, color.RGBA{R: 255, G: 165, A: 255}, vg.Points(5), vg.Points(3))

	p.Add(equal, offset, threshold, xerr, yerr, scatter)
	p.Legend.Add("βOX = βX", equal)
	p.Legend.Add("βOX = βX - 0.5", offset)
	p.Legend.Add("βOX = 0.5", threshold)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10

	p.X.Min, p.X.Max = 0.2, 3
	p.Y.Min, p.Y.Max = -0.4, 1.4
	widen(p, pts)

	return p, options, len(pts.XYs), nil
}

func reference(fn func(float64) float64, c color.Color, dashes ...vg.Length) *plotter.Function {
	f := plotter.NewFunction(fn)
	f.Color = c
	f.Width = vg.Points(1.5)
	f.Dashes = dashes
	f.Samples = 200
	return f
}

// widen grows the default axis ranges to include every error bar.
func widen(p *plot.Plot, pts errPoints) {
	for i, xy := range pts.XYs {
		xl, xh := pts.XError(i)
		yl, yh := pts.YError(i)
		p.X.Min = min(p.X.Min, xy.X-xl)
		p.X.Max = max(p.X.Max, xy.X+xh)
		p.Y.Min = min(p.Y.Min, xy.Y-yl)
		p.Y.Max = max(p.Y.Max, xy.Y+yh)
	}
}

// Save renders the chart to a PNG file at path.
func Save(path string, pairings []darkness.Pairing, opts ...Option) (int, error) {
	p, options, n, err := build(pairings, opts)
	if err != nil {
		return 0, err
	}
	if err := p.Save(options.Width, options.Height, path); err != nil {
		return 0, errors.WrapIO("write", path, err)
	}
	return n, nil
}

// Write renders the chart as PNG to w.
func Write(w io.Writer, pairings []darkness.Pairing, opts ...Option) (int, error) {
	p, options, n, err := build(pairings, opts)
	if err != nil {
		return 0, err
	}
	wt, err := p.WriterTo(options.Width, options.Height, "png")
	if err != nil {
		return 0, fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return 0, errors.WrapIO("write", "", err)
	}
	return n, nil
}
