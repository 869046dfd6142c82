package fusion

import (
	"image/color"
)

// A Kernel is the per-pixel fuse-and-tonemap function, bound to the
// immutable parameters of one pass. It holds no mutable state, so a
// single Kernel may be called concurrently from any number of
// goroutines.
type Kernel struct {
	fuser     Fuser
	responses Responses
	toneScale float64
}

// NewKernel binds a validated Config into a Kernel.
func NewKernel(cfg Config) (Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return Kernel{}, err
	}
	fuser, err := LookupFuser(cfg.Fuser)
	if err != nil {
		return Kernel{}, err
	}

	return Kernel{
		fuser:     fuser,
		responses: cfg.Responses,
		toneScale: cfg.ToneScale,
	}, nil
}

func (k Kernel) Responses() Responses { return k.responses }
func (k Kernel) ToneScale() float64    { return k.toneScale }

// Fuse runs the configured fuser over samples that were already gathered.
func (k Kernel) Fuse(s Samples) FusedSample {
	return k.fuser(s, k.responses)
}

// Process computes one output pixel: sample, fuse, tonemap.
func (k Kernel) Process(x, y int, base color.RGBA, n Neighbors) color.RGBA {
	return k.Display(k.Fuse(Sample(x, y, base, n)))
}

// Display maps a fused sample onto the output, with this kernel's tone scale.
func (k Kernel) Display(fs FusedSample) color.RGBA {
	return Display(fs, k.toneScale)
}

// Process is the stand-alone form of Kernel.Process, for callers that
// don't want to hold on to a Kernel. An unusable fuser name falls back
// to FuseDirectional.
func Process(x, y int, base color.RGBA, n Neighbors, cfg Config) color.RGBA {
	fuser, err := LookupFuser(cfg.Fuser)
	if err != nil {
		fuser = FuseDirectional
	}
	return Display(fuser(Sample(x, y, base, n), cfg.Responses), cfg.ToneScale)
}
