package estimate

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

var ErrTooFewSamples = errors.New("too few samples")

// A ResponseFit is an estimated fusion.Response, with the samples it
// was fitted from.
type ResponseFit struct {
	fusion.Response

	X       []float64 // channel averages in the exposure being corrected
	Y       []float64 // channel averages in the base exposure
	Weights []float64

	RSquared float64
}

func (rf ResponseFit) String() string {
	return fmt.Sprintf("response %s (r^2=%.4f over %d samples)", rf.Response, rf.RSquared, len(rf.X))
}

// FitResponse estimates how pixels of in should be adjusted to match
// the exposure level of base. Both images must share bounds.
//
// Samples near the middle of the observed brightness range are trusted
// most; the weight falls linearly to zero at the darkest and brightest
// samples, where clipping is likely.
func FitResponse(in, base image.Image, fitOffset bool) (ResponseFit, error) {
	if in.Bounds() != base.Bounds() {
		return ResponseFit{}, fmt.Errorf("fit response: bounds %v vs %v", in.Bounds(), base.Bounds())
	}

	pts := SampleGrid(base.Bounds(), NumSamples)
	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, pt := range pts {
		x[i] = fusion.ChannelAverage(fusion.RGBAAt(in, pt.X, pt.Y))
		y[i] = fusion.ChannelAverage(fusion.RGBAAt(base, pt.X, pt.Y))
	}

	return FitSamples(x, y, TriangularWeights(x), fitOffset)
}

// TriangularWeights gives each sample a weight of its distance to the
// nearer end of the sampled range.
func TriangularWeights(x []float64) []float64 {
	w := make([]float64, len(x))
	if len(x) == 0 {
		return w
	}

	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mid := 0.5 * (lo + hi)

	for i, v := range x {
		if v <= mid {
			w[i] = v - lo
		} else {
			w[i] = hi - v
		}
	}
	return w
}

// FitSamples does a weighted least squares fit of y against x. By
// default the line goes through the origin (a gain only); with
// fitOffset an intercept is fitted too. Degenerate inputs (all weight
// at x=0, or a zero-variance sample set) fall back to the identity.
func FitSamples(x, y, weights []float64, fitOffset bool) (ResponseFit, error) {
	if len(x) != len(y) || len(x) != len(weights) {
		return ResponseFit{}, fmt.Errorf("fit: %d x, %d y, %d weights", len(x), len(y), len(weights))
	}
	if len(x) <= 3 {
		return ResponseFit{}, fmt.Errorf("fit: %d samples: %w", len(x), ErrTooFewSamples)
	}

	rf := ResponseFit{Response: fusion.IdentityResponse(), X: x, Y: y, Weights: weights}

	denom := 0.0
	for i := range x {
		denom += weights[i] * x[i] * x[i]
	}
	if denom < 1.0e-5 {
		return rf, nil
	}

	alpha, beta := stat.LinearRegression(x, y, weights, !fitOffset)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) || beta <= 0 {
		return rf, nil
	}

	rf.Gain = beta
	rf.Offset = alpha
	rf.RSquared = stat.RSquared(x, y, weights, alpha, beta)

	return rf, nil
}
