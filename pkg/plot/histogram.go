// Package plot renders column distributions.
package plot

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/marczieee/featurepipe/pkg/stats"
)

// HistogramOptions controls Histogram. Zero values pick the defaults.
type HistogramOptions struct {
	Bins          int
	IQRMultiplier float64
	Width         vg.Length
	Height        vg.Length
}

func (o *HistogramOptions) defaults() {
	if o.Bins <= 0 {
		o.Bins = 20
	}
	if o.IQRMultiplier <= 0 {
		o.IQRMultiplier = 1.5
	}
	if o.Width == 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
}

// Histogram draws the distribution of values with the IQR outlier fences
// marked as vertical lines, and saves it to filename. The image format
// follows the file extension.
func Histogram(name string, values []float64, filename string, opts HistogramOptions) error {
	opts.defaults()
	vals := stats.Finite(values)
	if len(vals) == 0 {
		return errors.New("no values to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution of %s", name)
	p.X.Label.Text = name
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(vals), opts.Bins)
	if err != nil {
		return err
	}
	h.FillColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(h)

	top := 0.0
	for _, b := range h.Bins {
		top = max(top, b.Weight)
	}
	lo, hi := stats.MinMax(vals)
	fences := stats.IQRFences(vals, opts.IQRMultiplier)
	for _, x := range []float64{fences.Lower, fences.Upper} {
		if x < lo || x > hi {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
		if err != nil {
			return err
		}
		l.Color = color.RGBA{R: 255, A: 255}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
	}

	if err := p.Save(opts.Width, opts.Height, filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}
