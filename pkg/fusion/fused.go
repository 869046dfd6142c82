package fusion

import (
	"fmt"

	"github.com/mdouchement/hdr/hdrcolor"
)

// A FusedSample accumulates weighted linear-light contributions for a
// single pixel. It lives only as long as the pixel is being computed.
type FusedSample struct {
	Sum         hdrcolor.RGB // weighted sum of response-corrected triples
	TotalWeight float64

	// Notes on how the sum was built, for diagnostics
	BaseWeight     float64
	Neighbor       Exposure // NoExposure if only the base was used
	NeighborWeight float64

	// DisplayReferred sums are already on the 8-bit output scale, and
	// skip the tonemapper.
	DisplayReferred bool
}

func (fs *FusedSample) accumulate(rgb hdrcolor.RGB, weight float64) {
	fs.Sum.R += weight * rgb.R
	fs.Sum.G += weight * rgb.G
	fs.Sum.B += weight * rgb.B
	fs.TotalWeight += weight
}

// Linear divides the accumulated sum by the accumulated weight. Every
// fuser guarantees TotalWeight > 0.
func (fs FusedSample) Linear() hdrcolor.RGB {
	return hdrcolor.RGB{
		R: fs.Sum.R / fs.TotalWeight,
		G: fs.Sum.G / fs.TotalWeight,
		B: fs.Sum.B / fs.TotalWeight,
	}
}

func (fs FusedSample) String() string {
	lin := fs.Linear()
	return fmt.Sprintf("[%10.4f, %10.4f, %10.4f] w=%.4f (base %.4f, %s %.4f)",
		lin.R, lin.G, lin.B, fs.TotalWeight, fs.BaseWeight, fs.Neighbor, fs.NeighborWeight)
}
