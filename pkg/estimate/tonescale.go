package estimate

import (
	"image"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// Luminance of a linear-light triple on the [0,255] scale.
func Luminance(rgb hdrcolor.RGB) float64 {
	return 0.27*rgb.R + 0.67*rgb.G + 0.06*rgb.B
}

// LogAverageLuminance fuses the pixels on the sample grid and returns
// exp(mean(log(L+1))). The +1 keeps black pixels out of log(0).
func LogAverageLuminance(k fusion.Kernel, base image.Image, n fusion.Neighbors) float64 {
	pts := SampleGrid(base.Bounds(), NumSamples)
	if len(pts) == 0 {
		return 1.0
	}

	sum := 0.0
	for _, pt := range pts {
		s := fusion.Sample(pt.X, pt.Y, fusion.RGBAAt(base, pt.X, pt.Y), n)
		lum := Luminance(k.Fuse(s).Linear())
		sum += math.Log(math.Max(lum, 0) + 1.0)
	}

	return math.Exp(sum / float64(len(pts)))
}

// ToneScale picks a Reinhard constant that maps the log-average
// luminance of the scene to half the output range.
func ToneScale(k fusion.Kernel, base image.Image, n fusion.Neighbors) float64 {
	return LogAverageLuminance(k, base, n) / 0.5
}
