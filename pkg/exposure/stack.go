package exposure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abworrall/hdrfuse/pkg/fusion"
)

var (
	ErrExposureCount = errors.New("need exactly three exposures")
	ErrSizeMismatch  = errors.New("exposures differ in size")
)

// A Stack collects the layers of a bracket, plus any config file found
// alongside them.
type Stack struct {
	Layers []Layer
	Config *fusion.Config // nil unless a .yaml was loaded
}

func NewStack() Stack {
	return Stack{Layers: []Layer{}}
}

func (s Stack) String() string {
	str := "Stack[\n"
	for _, l := range s.Layers {
		str += fmt.Sprintf("  %s\n", l)
	}
	return str + "]\n"
}

func (s *Stack) AddLayer(l Layer) {
	s.Layers = append(s.Layers, l)
}

// Bracket is a stack resolved into its three roles.
type Bracket struct {
	Darker, Base, Brighter Layer
}

func (b Bracket) Layer(e fusion.Exposure) Layer {
	switch e {
	case fusion.Darker:
		return b.Darker
	case fusion.Brighter:
		return b.Brighter
	}
	return b.Base
}

func (b Bracket) Neighbors() fusion.Neighbors {
	return fusion.Neighbors{Darker: b.Darker.RGBA, Brighter: b.Brighter.RGBA}
}

// Bracket checks the stack holds three same-sized layers and orders
// them darkest first. When every layer has exposure metadata, EV decides
// (higher EV is darker); otherwise the measured mean level does.
func (s *Stack) Bracket() (Bracket, error) {
	if len(s.Layers) != fusion.NumExposures {
		return Bracket{}, fmt.Errorf("have %d: %w", len(s.Layers), ErrExposureCount)
	}

	bounds := s.Layers[0].Bounds()
	for _, l := range s.Layers[1:] {
		if l.Bounds() != bounds {
			return Bracket{}, fmt.Errorf("%s is %v, %s is %v: %w",
				s.Layers[0].Filename(), bounds, l.Filename(), l.Bounds(), ErrSizeMismatch)
		}
	}

	byEV := true
	for _, l := range s.Layers {
		byEV = byEV && l.HasExposure
	}

	ordered := append([]Layer{}, s.Layers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if byEV {
			return ordered[i].EV > ordered[j].EV
		}
		return ordered[i].MeanLevel < ordered[j].MeanLevel
	})

	return Bracket{Darker: ordered[0], Base: ordered[1], Brighter: ordered[2]}, nil
}
