package fusion

import (
	"errors"
	"fmt"
)

// A Fuser turns the three raw samples at a coordinate into a single
// weighted linear-light value.
type Fuser func(Samples, Responses) FusedSample

var ErrUnknownFuser = errors.New("unknown fuser")

var Fusers = []string{"directional", "weighted", "average"}

// LookupFuser returns the fuser registered under name.
func LookupFuser(name string) (Fuser, error) {
	switch name {
	case "directional", "":
		return FuseDirectional, nil
	case "weighted":
		return FuseWeighted, nil
	case "average":
		return FuseAverage, nil
	}
	return nil, fmt.Errorf("fuser '%s' (want one of %v): %w", name, Fusers, ErrUnknownFuser)
}

// FuseDirectional is the default algorithm. The base exposure is
// trusted fully while its channel average stays within SafeRange of
// mid-gray. Outside that range it is discounted, and exactly one
// neighbour makes up the lost confidence: the brighter exposure when
// the base is dark, the darker exposure when the base is bright. The
// third exposure never contributes.
func FuseDirectional(s Samples, rs Responses) FusedSample {
	fs := FusedSample{Neighbor: NoExposure}

	baseAvg := ChannelAverage(s[Base])
	fs.BaseWeight = SafeRangeWeight(baseAvg)
	fs.accumulate(rs.Base.Apply(s[Base]), fs.BaseWeight)

	if fs.BaseWeight < 1.0 {
		fs.Neighbor = Darker
		if baseAvg <= MidGray {
			fs.Neighbor = Brighter
		}

		p := s[fs.Neighbor]
		fs.NeighborWeight = (1.0 - fs.BaseWeight) * SafeRangeWeight(ChannelAverage(p))
		fs.accumulate(rs.For(fs.Neighbor).Apply(p), fs.NeighborWeight)
	}

	return fs
}

// FuseWeighted blends all three exposures, each weighted by how close
// its own channel average is to mid-gray. Prone to haloing where the
// exposures disagree.
func FuseWeighted(s Samples, rs Responses) FusedSample {
	fs := FusedSample{Neighbor: NoExposure}

	for e := Darker; e <= Brighter; e++ {
		w := TriangleWeight(ChannelAverage(s[e]))
		if e == Base {
			fs.BaseWeight = w
		}
		fs.accumulate(rs.For(e).Apply(s[e]), w)
	}

	return fs
}

// FuseAverage is a plain mean of the raw exposures, with no response
// correction. The mean is display-referred: it is truncated straight to
// the output, not tonemapped. Only useful for comparison.
func FuseAverage(s Samples, rs Responses) FusedSample {
	fs := FusedSample{Neighbor: NoExposure, BaseWeight: 1.0, DisplayReferred: true}

	for e := Darker; e <= Brighter; e++ {
		fs.accumulate(IdentityResponse().Apply(s[e]), 1.0)
	}

	return fs
}
