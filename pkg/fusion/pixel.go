package fusion

import (
	"image"
	"image/color"
)

// An Exposure indexes one of the three captures in a bracket. The
// base exposure sits in the middle; the darker one needed more light to
// expose fully, the brighter one less.
type Exposure int

const (
	NoExposure Exposure = iota - 1
	Darker
	Base
	Brighter

	NumExposures = 3
)

func (e Exposure) String() string {
	switch e {
	case Darker:
		return "darker"
	case Base:
		return "base"
	case Brighter:
		return "brighter"
	}
	return "none"
}

// Samples are the raw pixels gathered from every exposure at a single
// coordinate.
type Samples [NumExposures]color.RGBA

// Neighbors are the two read-only exposures consulted around the base
// pixel. Both must cover the coordinates being fused.
type Neighbors struct {
	Darker   image.Image
	Brighter image.Image
}

// Sample gathers the three raw pixels at (x,y). The base pixel is
// handed in by the caller; the other two are read from the neighbours.
func Sample(x, y int, base color.RGBA, n Neighbors) Samples {
	return Samples{
		Darker:   RGBAAt(n.Darker, x, y),
		Base:     base,
		Brighter: RGBAAt(n.Brighter, x, y),
	}
}

// RGBAAt reads a pixel as 8-bit RGBA, skipping the color.Model round
// trip when the image is already an *image.RGBA.
func RGBAAt(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// ChannelAverage is the plain mean of the red, green and blue channels,
// on the raw [0,255] scale. Alpha is ignored.
func ChannelAverage(p color.RGBA) float64 {
	return (float64(p.R) + float64(p.G) + float64(p.B)) / 3.0
}
