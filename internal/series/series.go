package series

import (
	"errors"
	"fmt"
)

// Mode selects which historical split drives an episode.
type Mode int

const (
	ModeTrain Mode = iota
	ModeValidation
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeValidation:
		return "validation"
	case ModeTest:
		return "test"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps the config/API spelling of a split to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "train":
		return ModeTrain, nil
	case "validation", "valid":
		return ModeValidation, nil
	case "test":
		return ModeTest, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want train, validation or test)", s)
	}
}

// Scaling converts normalized [0,1] profiles into physical units.
// Production is W/Wp scaled by the installed PV capacity; consumption
// is scaled by the peak household demand.
type Scaling struct {
	InstalledPVKWp float64
	PeakDemandKW   float64
}

// DefaultScaling matches the reference sizing: a 12 kWp PV array
// (roughly 60 m^2) and a 2.1 kW peak demand profile.
func DefaultScaling() Scaling {
	return Scaling{InstalledPVKWp: 12.0, PeakDemandKW: 2.1}
}

// Split holds the four parallel hourly series an episode reads from.
// Production/Consumption are in kW; the *Norm slices are the raw
// normalized profiles in [0,1] used for observations.
type Split struct {
	Production      []float64
	Consumption     []float64
	ProductionNorm  []float64
	ConsumptionNorm []float64
}

// NewSplit scales a pair of normalized profiles into a Split.
func NewSplit(prodNorm, consNorm []float64, sc Scaling) *Split {
	s := &Split{
		ProductionNorm:  prodNorm,
		ConsumptionNorm: consNorm,
		Production:      make([]float64, len(prodNorm)),
		Consumption:     make([]float64, len(consNorm)),
	}
	for i, v := range prodNorm {
		s.Production[i] = v * sc.InstalledPVKWp
	}
	for i, v := range consNorm {
		s.Consumption[i] = v * sc.PeakDemandKW
	}
	return s
}

// Len returns the number of usable samples (the shortest series wins
// if the inputs are ragged; Validate reports ragged inputs as errors).
func (s *Split) Len() int {
	n := len(s.Production)
	for _, v := range [][]float64{s.Consumption, s.ProductionNorm, s.ConsumptionNorm} {
		if len(v) < n {
			n = len(v)
		}
	}
	return n
}

func (s *Split) Validate() error {
	if s == nil {
		return errors.New("split is nil")
	}
	n := len(s.Production)
	if len(s.Consumption) != n || len(s.ProductionNorm) != n || len(s.ConsumptionNorm) != n {
		return fmt.Errorf("ragged split: production=%d consumption=%d production_norm=%d consumption_norm=%d",
			len(s.Production), len(s.Consumption), len(s.ProductionNorm), len(s.ConsumptionNorm))
	}
	if n == 0 {
		return errors.New("empty split")
	}
	return nil
}

// Dataset bundles the three splits the environment can bind to.
type Dataset struct {
	Train      *Split
	Validation *Split
	Test       *Split
}

// Split returns the series for the requested mode.
func (d *Dataset) Split(mode Mode) (*Split, error) {
	if d == nil {
		return nil, errors.New("dataset is nil")
	}
	var s *Split
	switch mode {
	case ModeTrain:
		s = d.Train
	case ModeValidation:
		s = d.Validation
	case ModeTest:
		s = d.Test
	default:
		return nil, fmt.Errorf("unknown mode %d", int(mode))
	}
	if s == nil {
		return nil, fmt.Errorf("dataset has no %s split", mode)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s split: %w", mode, err)
	}
	return s, nil
}

func (d *Dataset) Validate() error {
	for _, mode := range []Mode{ModeTrain, ModeValidation, ModeTest} {
		if _, err := d.Split(mode); err != nil {
			return err
		}
	}
	return nil
}
