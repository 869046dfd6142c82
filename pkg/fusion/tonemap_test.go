package fusion

import (
	"image/color"
	"testing"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
)

func TestTonemapBlackStaysBlack(t *testing.T) {
	for _, scale := range []float64{0.001, 0.5, 1, 10, 1000} {
		assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, Tonemap(hdrcolor.RGB{}, scale))
	}
}

func TestTonemapExact(t *testing.T) {
	// 255/(1+127) = 1.9921875; 1.9921875*127 = 253.0078125
	assert.Equal(t, color.RGBA{253, 253, 253, 0xff}, Tonemap(hdrcolor.RGB{R: 127, G: 127, B: 127}, 1.0))

	// Max channel drives the scale for all three: 255/(3+252) = 1
	assert.Equal(t, color.RGBA{252, 100, 7, 0xff}, Tonemap(hdrcolor.RGB{R: 252, G: 100, B: 7.9}, 3.0))
}

func TestTonemapMonotonicInToneScale(t *testing.T) {
	rgb := hdrcolor.RGB{R: 100, G: 50, B: 25}
	prev := Tonemap(rgb, 1)

	for _, scale := range []float64{50, 200, 1000} {
		got := Tonemap(rgb, scale)
		assert.Less(t, got.R, prev.R, "scale %f", scale)
		assert.Less(t, got.G, prev.G, "scale %f", scale)
		assert.Less(t, got.B, prev.B, "scale %f", scale)
		prev = got
	}
}

func TestTonemapNeverExceeds255(t *testing.T) {
	for _, m := range []float64{0.5, 1, 256, 1024} {
		got := Tonemap(hdrcolor.RGB{R: m, G: m / 2, B: m / 4}, 0)
		assert.Equal(t, uint8(255), got.R, "degenerate zero scale saturates the max channel")
		got = Tonemap(hdrcolor.RGB{R: m, G: m / 2, B: m / 4}, 0.01)
		assert.Less(t, got.R, uint8(255))
	}
}

func TestTonemapNegativeInputs(t *testing.T) {
	got := Tonemap(hdrcolor.RGB{R: -20, G: 10, B: 40}, 1)
	assert.Equal(t, uint8(0), got.R)
	assert.Equal(t, uint8(0xff), got.A)
}

func TestDisplay(t *testing.T) {
	fs := FusedSample{Sum: hdrcolor.RGB{R: 254, G: 127, B: 63.9}, TotalWeight: 1}
	assert.Equal(t, Tonemap(fs.Linear(), 1), Display(fs, 1))

	fs.DisplayReferred = true
	assert.Equal(t, color.RGBA{254, 127, 63, 0xff}, Display(fs, 1))
}
