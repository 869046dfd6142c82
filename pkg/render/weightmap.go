package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/hdrfuse/pkg/emath"
	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// Hues for the neighbour map
var neighborHue = map[fusion.Exposure]float64{
	fusion.Darker:   220, // blue
	fusion.Brighter: 35,  // orange
}

// WeightMap writes the base weight of each pixel as a grayscale image;
// white pixels came entirely from the base exposure.
func (fi *FusedImage) WeightMap(filename string) error {
	if fi.Pixels == nil {
		return fmt.Errorf("weight map: not fused yet")
	}

	b := fi.Bounds()
	fg := emath.NewFloatGrid(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			fg.Set(x, y, float64(fi.Pix(x+b.Min.X, y+b.Min.Y).BaseWeight))
		}
	}

	return fg.ToImg(fmt.Sprintf("base weight, %s", fg.Stats()), filename)
}

// NeighborColor shows which neighbour contributed to a pixel (by hue)
// and how much it contributed (by value). Base-only pixels are black.
func NeighborColor(p Pixel) colorful.Color {
	hue, ok := neighborHue[p.NeighborExposure()]
	if !ok {
		return colorful.Color{}
	}
	share := emath.Clamp01(1.0 - float64(p.BaseWeight))
	return colorful.Hsv(hue, 0.9, 0.25+0.75*share)
}

// NeighborMap writes a colour image of which neighbour each pixel used.
func (fi *FusedImage) NeighborMap(filename string) error {
	if fi.Pixels == nil {
		return fmt.Errorf("neighbor map: not fused yet")
	}

	b := fi.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := NeighborColor(fi.Pix(x+b.Min.X, y+b.Min.Y)).RGB255()
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, bl, 0xff
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString("blue: darker, orange: brighter", 20, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("saving neighbor map to '%s': %w", filename, err)
	}
	return nil
}
