package estimate

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// ramp fills an image with a horizontal gray ramp, v = f(x).
func ramp(w, h int, f func(x int) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := f(x)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 0xff})
		}
	}
	return img
}

func flat(w, h int, v uint8) *image.RGBA { return ramp(w, h, func(int) uint8 { return v }) }

func TestSampleGrid(t *testing.T) {
	bounds := image.Rect(10, 20, 110, 120)
	pts := SampleGrid(bounds, NumSamples)
	require.Len(t, pts, 100)

	// 1/11 and 10/11 of 100, truncated
	assert.Equal(t, image.Point{10 + 9, 20 + 9}, pts[0])
	assert.Equal(t, image.Point{10 + 90, 20 + 90}, pts[99])
	for _, pt := range pts {
		assert.True(t, pt.In(bounds), "%v", pt)
	}
}

func TestTriangularWeights(t *testing.T) {
	w := TriangularWeights([]float64{10, 20, 30, 50})
	assert.Equal(t, []float64{0, 10, 20, 0}, w)
	assert.Empty(t, TriangularWeights(nil))
}

func TestFitResponseGainThroughOrigin(t *testing.T) {
	darker := ramp(128, 8, func(x int) uint8 { return uint8(x) })
	base := ramp(128, 8, func(x int) uint8 { return uint8(2 * x) })

	rf, err := FitResponse(darker, base, false)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, rf.Gain, 1e-9)
	assert.Equal(t, 0.0, rf.Offset)
	assert.InDelta(t, 1.0, rf.RSquared, 1e-9)
	assert.Len(t, rf.X, NumSamples)
}

func TestFitResponseWithOffset(t *testing.T) {
	brighter := ramp(200, 4, func(x int) uint8 { return uint8(x) })
	base := ramp(200, 4, func(x int) uint8 { return uint8(x/2 + 10) })

	rf, err := FitResponse(brighter, base, true)
	require.NoError(t, err)

	// integer halving wobbles the samples a little off the line
	assert.InDelta(t, 0.5, rf.Gain, 0.02)
	assert.InDelta(t, 10.0, rf.Offset, 1.0)
}

func TestFitResponseFlatImageIsIdentity(t *testing.T) {
	rf, err := FitResponse(flat(32, 32, 90), flat(32, 32, 120), false)
	require.NoError(t, err)
	assert.Equal(t, fusion.IdentityResponse(), rf.Response)
}

func TestFitResponseBoundsMismatch(t *testing.T) {
	_, err := FitResponse(flat(4, 4, 1), flat(5, 4, 1), false)
	assert.Error(t, err)
}

func TestFitSamplesTooFew(t *testing.T) {
	_, err := FitSamples([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 1, 1}, false)
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, err = FitSamples([]float64{1, 2, 3, 4}, []float64{1, 2}, []float64{1, 1, 1, 1}, false)
	assert.Error(t, err)
}

func TestToneScaleMidGray(t *testing.T) {
	k, err := fusion.NewKernel(fusion.NewConfig())
	require.NoError(t, err)

	base := flat(20, 20, 127)
	n := fusion.Neighbors{Darker: flat(20, 20, 127), Brighter: flat(20, 20, 127)}

	// Every fused sample is 127, so L+1 = 128 everywhere
	assert.InDelta(t, 128.0, LogAverageLuminance(k, base, n), 1e-9)
	assert.InDelta(t, 256.0, ToneScale(k, base, n), 1e-9)
}

func TestToneScaleBlack(t *testing.T) {
	k, err := fusion.NewKernel(fusion.NewConfig())
	require.NoError(t, err)

	n := fusion.Neighbors{Darker: flat(8, 8, 0), Brighter: flat(8, 8, 0)}
	assert.InDelta(t, 2.0, ToneScale(k, flat(8, 8, 0), n), 1e-12)
}

func TestPlotResponse(t *testing.T) {
	darker := ramp(128, 8, func(x int) uint8 { return uint8(x) })
	base := ramp(128, 8, func(x int) uint8 { return uint8(2 * x) })
	rf, err := FitResponse(darker, base, false)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "response.png")
	require.NoError(t, PlotResponse(rf, "darker", filename))

	st, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))
}
