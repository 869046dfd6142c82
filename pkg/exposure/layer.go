package exposure

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
)

// A Layer is one exposure of the bracket, decoded from a file.
type Layer struct {
	LoadFilename string
	ExposureValue
	HasExposure bool // whether ExposureValue came from EXIF

	MeanLevel float64 // mean channel average over all pixels, [0,255]

	// Always 8-bit RGBA; the per-pixel code reads it directly
	*image.RGBA
}

// NewLayer converts img to 8-bit RGBA (16-bit sources lose their low
// byte) and measures its mean level.
func NewLayer(filename string, img image.Image) Layer {
	l := Layer{LoadFilename: filename, RGBA: toRGBA(img)}
	l.MeanLevel = meanLevel(l.RGBA)
	return l
}

func (l Layer) String() string {
	str := fmt.Sprintf("%s: %dx%d, mean %.1f", l.Filename(), l.Bounds().Dx(), l.Bounds().Dy(), l.MeanLevel)
	if l.HasExposure {
		str += ", " + l.ExposureValue.String()
	}
	return str
}

func (l Layer) Filename() string {
	return filepath.Base(l.LoadFilename)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func meanLevel(img *image.RGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}

	sum := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			sum += float64(row[i]) + float64(row[i+1]) + float64(row[i+2])
		}
	}
	return sum / 3.0 / float64(b.Dx()*b.Dy())
}
