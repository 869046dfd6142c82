package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// Stats summarizes a fused image: how much each pixel leaned on the base
// exposure, how bright the output came out, and which neighbours got used.
type Stats struct {
	BaseWeight *hdrhistogram.Histogram // in thousandths
	Brightness *hdrhistogram.Histogram // output channel average, [0,255]
	Neighbors  map[fusion.Exposure]int64
}

func NewStats() Stats {
	return Stats{
		BaseWeight: hdrhistogram.New(0, 1000, 3),
		Brightness: hdrhistogram.New(0, 255, 3),
		Neighbors:  map[fusion.Exposure]int64{},
	}
}

// Stats gathers the statistics of a fused image.
func (fi *FusedImage) Stats() (Stats, error) {
	s := NewStats()
	if fi.Pixels == nil {
		return s, fmt.Errorf("stats: not fused yet")
	}

	b := fi.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if err := s.Record(fi.Pix(x, y), fi.Output.RGBAAt(x, y)); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// Record adds one pixel, and its tonemapped output.
func (s Stats) Record(p Pixel, out color.RGBA) error {
	brightness := int64(math.Round(float64(int(out.R)+int(out.G)+int(out.B)) / 3.0))
	if err := s.Brightness.RecordValue(brightness); err != nil {
		return fmt.Errorf("record brightness %d: %w", brightness, err)
	}

	w := int64(math.Round(1000.0 * float64(p.BaseWeight)))
	if err := s.BaseWeight.RecordValue(w); err != nil {
		return fmt.Errorf("record base weight %d: %w", w, err)
	}

	s.Neighbors[p.NeighborExposure()]++
	return nil
}

func (s Stats) String() string {
	str := fmt.Sprintf("%d pixels\n", s.Brightness.TotalCount())
	str += fmt.Sprintf("  base weight: mean %.3f, p10 %.3f, p50 %.3f, p90 %.3f\n",
		s.BaseWeight.Mean()/1000.0,
		float64(s.BaseWeight.ValueAtQuantile(10))/1000.0,
		float64(s.BaseWeight.ValueAtQuantile(50))/1000.0,
		float64(s.BaseWeight.ValueAtQuantile(90))/1000.0)
	str += fmt.Sprintf("  brightness:  mean %.1f, p10 %d, p50 %d, p90 %d\n",
		s.Brightness.Mean(),
		s.Brightness.ValueAtQuantile(10),
		s.Brightness.ValueAtQuantile(50),
		s.Brightness.ValueAtQuantile(90))
	str += fmt.Sprintf("  neighbors:   none %d, darker %d, brighter %d\n",
		s.Neighbors[fusion.NoExposure], s.Neighbors[fusion.Darker], s.Neighbors[fusion.Brighter])
	return str
}
