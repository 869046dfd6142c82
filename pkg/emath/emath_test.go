package emath

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGammaExpand(t *testing.T) {
	assert.Equal(t, 0.0, GammaExpand(0))
	assert.InDelta(t, 1.0, GammaExpand(1), 1e-9)
	assert.InDelta(t, 12.92*0.001, GammaExpand(0.001), 1e-12)
	assert.Greater(t, GammaExpand(0.2), 0.2)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 1.0, Clamp01(7))
}

func TestFloatGrid(t *testing.T) {
	fg := NewFloatGrid(4, 3)
	require.Equal(t, 4, fg.Dx())
	require.Equal(t, 3, fg.Dy())

	fg.Set(3, 2, 5)
	fg.Set(0, 0, -1)
	assert.Equal(t, 5.0, fg.Get(3, 2))

	min, max := fg.Range()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 5.0, max)
	assert.Contains(t, fg.Stats(), "4x3")

	img := fg.ToImage()
	assert.Equal(t, uint16(0xFFFF), img.RGBA64At(3, 2).R)
	assert.Equal(t, uint16(0), img.RGBA64At(0, 0).R)
}

func TestFloatGridFlat(t *testing.T) {
	fg := NewFloatGrid(2, 2)
	img := fg.ToImage()
	assert.Equal(t, uint16(0), img.RGBA64At(1, 1).G)
}

func TestToImg(t *testing.T) {
	fg := NewFloatGrid(64, 32)
	for x := 0; x < 64; x++ {
		for y := 0; y < 32; y++ {
			fg.Set(x, y, float64(x))
		}
	}

	filename := filepath.Join(t.TempDir(), "grid.png")
	require.NoError(t, fg.ToImg("ramp", filename))

	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}
