package fusion

import (
	"fmt"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
)

// A Response is the affine brightness correction for one exposure,
// applied identically to each channel: corrected = Gain*raw + Offset.
// It maps an exposure's pixel values onto the base exposure's scale.
type Response struct {
	Gain   float64
	Offset float64
}

// IdentityResponse leaves pixel values untouched.
func IdentityResponse() Response { return Response{Gain: 1.0} }

func (r Response) String() string {
	return fmt.Sprintf("%.4f*v%+.4f", r.Gain, r.Offset)
}

// Apply corrects the raw channels of p into a linear-light triple. The
// result is unbounded; nothing is clipped here.
func (r Response) Apply(p color.RGBA) hdrcolor.RGB {
	return hdrcolor.RGB{
		R: r.Gain*float64(p.R) + r.Offset,
		G: r.Gain*float64(p.G) + r.Offset,
		B: r.Gain*float64(p.B) + r.Offset,
	}
}

// Responses holds one Response per exposure. They are fixed for a
// whole pass.
type Responses struct {
	Darker   Response
	Base     Response
	Brighter Response
}

func IdentityResponses() Responses {
	return Responses{
		Darker:   IdentityResponse(),
		Base:     IdentityResponse(),
		Brighter: IdentityResponse(),
	}
}

// For returns the response for exposure e.
func (rs Responses) For(e Exposure) Response {
	switch e {
	case Darker:
		return rs.Darker
	case Brighter:
		return rs.Brighter
	}
	return rs.Base
}

func (rs Responses) String() string {
	return fmt.Sprintf("darker[%s] base[%s] brighter[%s]", rs.Darker, rs.Base, rs.Brighter)
}
