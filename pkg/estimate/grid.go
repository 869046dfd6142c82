package estimate

import (
	"image"
	"math"
)

// NumSamples is how many grid points the estimators look at.
const NumSamples = 100

// SampleGrid spreads n points evenly over bounds, keeping away from the
// edges: row i of r sits at (i+1)/(r+1) of the height, likewise for
// columns.
func SampleGrid(bounds image.Rectangle, n int) []image.Point {
	nw := int(math.Sqrt(float64(n)))
	if nw < 1 {
		nw = 1
	}
	nh := n / nw

	pts := make([]image.Point, 0, nw*nh)
	for j := 0; j < nh; j++ {
		alpha := (float64(j) + 1.0) / (float64(nh) + 1.0)
		y := bounds.Min.Y + int(alpha*float64(bounds.Dy()))
		for i := 0; i < nw; i++ {
			beta := (float64(i) + 1.0) / (float64(nw) + 1.0)
			x := bounds.Min.X + int(beta*float64(bounds.Dx()))
			pts = append(pts, image.Point{x, y})
		}
	}
	return pts
}
