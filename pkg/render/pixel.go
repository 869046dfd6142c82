package render

import (
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

// A Pixel is what we keep of each fused pixel once the kernel is done
// with it. It is compact, as there is one per pixel.
type Pixel struct {
	Linear     [3]float32 // linear light, on the [0,255] scale of the base exposure
	BaseWeight float32
	Neighbor   int8 // a fusion.Exposure; NoExposure if only the base was used
}

func NewPixel(fs fusion.FusedSample, lin hdrcolor.RGB) Pixel {
	return Pixel{
		Linear:     [3]float32{float32(lin.R), float32(lin.G), float32(lin.B)},
		BaseWeight: float32(fs.BaseWeight),
		Neighbor:   int8(fs.Neighbor),
	}
}

func (p Pixel) NeighborExposure() fusion.Exposure { return fusion.Exposure(p.Neighbor) }

// HDR rescales the linear value so that a fully exposed base pixel is
// 1.0, which is what the HDR codecs and tonemappers expect.
func (p Pixel) HDR() hdrcolor.RGB {
	return hdrcolor.RGB{
		R: float64(p.Linear[0]) / 255.0,
		G: float64(p.Linear[1]) / 255.0,
		B: float64(p.Linear[2]) / 255.0,
	}
}
