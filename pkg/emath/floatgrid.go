package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, one per pixel, used for dumping
// per-pixel diagnostics as images.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// Range returns the smallest and largest values in the grid.
func (fg *FloatGrid) Range() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min

	for _, v := range fg.values {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return min, max
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.Range()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// normalizer returns a func that rescales values so that the grid's
// range maps onto [0,1]. A flat grid maps to all zeroes.
func (fg *FloatGrid) normalizer() func(v float64) float64 {
	min, max := fg.Range()
	if max <= min {
		return func(float64) float64 { return 0 }
	}
	return func(v float64) float64 { return (v - min) / (max - min) }
}

// ToImage renders a simple grayscale, based on the range of values in
// the grid, and gamma scaling the gray to look normal for human vision.
func (fg *FloatGrid) ToImage() *image.RGBA64 {
	norm := fg.normalizer()

	img := image.NewRGBA64(image.Rect(0, 0, fg.Dx(), fg.Dy()))
	for y := 0; y < fg.Dy(); y++ {
		for x := 0; x < fg.Dx(); x++ {
			gray := uint16(GammaExpand(Clamp01(norm(fg.Get(x, y)))) * 65535.0)
			img.SetRGBA64(x, y, color.RGBA64{gray, gray, gray, 0xFFFF})
		}
	}
	return img
}

// ToImg saves the grayscale rendering as a PNG, with the title written
// into the top left corner.
func (fg *FloatGrid) ToImg(title, filename string) error {
	dc := gg.NewContextForImage(fg.ToImage())
	dc.SetRGB(1, 0, 0)
	dc.DrawString(title, 20, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("saving grid to '%s': %w", filename, err)
	}
	return nil
}
