package render

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mdouchement/hdr/tmo"
)

var (
	ErrUnknownTonemapper = errors.New("unknown tonemapper")

	// Tonemappers are the global operators from the tmo package, which can
	// be run over the fused linear image for comparison with the output.
	Tonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// SetupTonemapper builds the named tmo operator over the fused image.
func (fi *FusedImage) SetupTonemapper(name string) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(fi)
		op.Bias = 0.85
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(fi), nil

	case "icam06":
		op := tmo.NewDefaultICam06(fi)
		op.MaxClipping = 0.999
		return op, nil

	case "linear":
		return tmo.NewLinear(fi), nil

	case "reinhard05":
		return tmo.NewDefaultReinhard05(fi), nil
	}

	return nil, fmt.Errorf("tonemapper %q, wanted %s: %w", name, ListTonemappers(), ErrUnknownTonemapper)
}

// CompareTonemappers runs each named operator (all of them, if none
// are named) and writes tmo-<name>.png into dir.
func (fi *FusedImage) CompareTonemappers(dir string, names ...string) error {
	if fi.Pixels == nil {
		return fmt.Errorf("compare tonemappers: not fused yet")
	}
	if len(names) == 0 {
		names = Tonemappers
	}

	for _, name := range names {
		op, err := fi.SetupTonemapper(name)
		if err != nil {
			return err
		}

		if fi.Config.Verbosity > 0 {
			log.Printf("Tonemapping: %s", name)
		}
		if err := WritePNG(op.Perform(), filepath.Join(dir, fmt.Sprintf("tmo-%s.png", name))); err != nil {
			return fmt.Errorf("tonemapper %s: %w", name, err)
		}
	}

	return nil
}
