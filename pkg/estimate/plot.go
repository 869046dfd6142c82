package estimate

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotResponse writes the fitted samples and the fitted line to an
// image file (format from the extension).
func PlotResponse(rf ResponseFit, title, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", title, rf.Response)
	p.X.Label.Text = "exposure channel average"
	p.Y.Label.Text = "base channel average"
	p.X.Min, p.X.Max = 0, 255
	p.Y.Min, p.Y.Max = 0, 255

	pts := make(plotter.XYs, 0, len(rf.X))
	for i := range rf.X {
		pts = append(pts, plotter.XY{X: rf.X[i], Y: rf.Y[i]})
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plot response scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)

	fit := plotter.NewFunction(func(x float64) float64 { return rf.Gain*x + rf.Offset })
	fit.Width = vg.Points(1)

	p.Add(scatter, fit, plotter.NewGrid())
	p.Legend.Add("samples", scatter)
	p.Legend.Add("fit", fit)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("plot response save '%s': %w", filename, err)
	}
	return nil
}
