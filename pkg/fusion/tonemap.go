package fusion

import (
	"image/color"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"
)

// DefaultToneScale is the Reinhard constant used when none is configured.
const DefaultToneScale = 1.0

// Tonemap compresses a linear-light triple into displayable 8-bit RGB
// with a global Reinhard operator keyed on the largest channel:
//
//	scale = 255 / (toneScale + max(r,g,b))
//
// Every channel is multiplied by the same scale, so channel ratios (and
// so hue) are preserved. Larger toneScale values compress harder.
// Results are truncated, not rounded. Alpha is always opaque.
func Tonemap(rgb hdrcolor.RGB, toneScale float64) color.RGBA {
	maxChannel := math.Max(rgb.R, math.Max(rgb.G, rgb.B))
	scale := 255.0 / (toneScale + maxChannel)

	return color.RGBA{
		R: truncate8(scale * rgb.R),
		G: truncate8(scale * rgb.G),
		B: truncate8(scale * rgb.B),
		A: 0xff,
	}
}

// Display turns a fused sample into an output pixel. Display-referred
// samples are truncated as they are; everything else is tonemapped.
func Display(fs FusedSample, toneScale float64) color.RGBA {
	lin := fs.Linear()
	if fs.DisplayReferred {
		return color.RGBA{R: truncate8(lin.R), G: truncate8(lin.G), B: truncate8(lin.B), A: 0xff}
	}
	return Tonemap(lin, toneScale)
}

// truncate8 truncates toward zero. Go leaves out-of-range float to
// integer conversions implementation-defined, so anything outside
// [0,255] (negative offsets, a zero toneScale, NaN) is pinned first.
func truncate8(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
