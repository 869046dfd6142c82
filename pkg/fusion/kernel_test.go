package fusion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestProcessMidGrayScenario(t *testing.T) {
	n := Neighbors{
		Darker:   uniform(4, 4, gray(127)),
		Brighter: uniform(4, 4, gray(127)),
	}
	cfg := NewConfig()

	// fused = 127; scale = 255/(1+127) = 1.9921875; 1.9921875*127 = 253.0078125
	want := color.RGBA{253, 253, 253, 255}

	k, err := NewKernel(cfg)
	require.NoError(t, err)

	assert.Equal(t, want, k.Process(2, 3, gray(127), n))
	assert.Equal(t, want, Process(2, 3, gray(127), n, cfg))
}

func TestProcessBlackIsBlack(t *testing.T) {
	n := Neighbors{
		Darker:   uniform(2, 2, gray(0)),
		Brighter: uniform(2, 2, gray(0)),
	}

	for _, scale := range []float64{0.1, 1, 4, 100} {
		cfg := NewConfig()
		cfg.ToneScale = scale
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, Process(0, 0, gray(0), n, cfg))
	}
}

func TestProcessReadsNeighboursAtCoordinate(t *testing.T) {
	brighter := uniform(3, 3, gray(0))
	brighter.SetRGBA(1, 2, gray(200))
	n := Neighbors{Darker: uniform(3, 3, gray(0)), Brighter: brighter}

	k, err := NewKernel(NewConfig())
	require.NoError(t, err)

	dark := k.Process(1, 1, gray(0), n)
	lit := k.Process(1, 2, gray(0), n)
	assert.Equal(t, uint8(0), dark.G)
	assert.Greater(t, lit.G, uint8(200), "brighter neighbour recovers the black base")
}

func TestSampleNonRGBANeighbours(t *testing.T) {
	darker := image.NewGray(image.Rect(0, 0, 2, 2))
	darker.SetGray(1, 0, color.Gray{Y: 42})
	n := Neighbors{Darker: darker, Brighter: uniform(2, 2, gray(9))}

	s := Sample(1, 0, gray(100), n)
	assert.Equal(t, gray(42), s[Darker])
	assert.Equal(t, gray(100), s[Base])
	assert.Equal(t, gray(9), s[Brighter])
}

func TestNewKernelRejectsBadConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Fuser = "nope"
	_, err := NewKernel(cfg)
	assert.ErrorIs(t, err, ErrUnknownFuser)
}

func TestProcessAverageIsNotTonemapped(t *testing.T) {
	n := Neighbors{
		Darker:   uniform(2, 2, gray(10)),
		Brighter: uniform(2, 2, gray(220)),
	}
	cfg := NewConfig()
	cfg.Fuser = "average"

	k, err := NewKernel(cfg)
	require.NoError(t, err)

	// (10+100+220)/3 = 110, truncated straight to the output
	want := color.RGBA{110, 110, 110, 255}
	assert.Equal(t, want, k.Process(1, 1, gray(100), n))
	assert.Equal(t, want, Process(1, 1, gray(100), n, cfg))

	// Truncated, not rounded: (0+1+1)/3
	n = Neighbors{Darker: uniform(2, 2, gray(0)), Brighter: uniform(2, 2, gray(1))}
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, k.Process(0, 0, gray(1), n))
}
