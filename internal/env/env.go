// Package env implements the microgrid two-storage control
// environment: a deterministic discrete-time state machine over
// exogenous production/consumption series. A fast short-term buffer
// (battery) absorbs the instantaneous surplus or shortfall left after
// the agent's long-term store (hydrogen) command; unmet demand costs a
// loss-load penalty, and moving energy through the long-term store
// earns the hydrogen tariff.
package env

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"microgrid-env/internal/series"
)

const (
	forecastShortHours = 24
	forecastLongHours  = 48
	// halfYearDays is the day count to the equinox midpoint used by
	// the seasonal signal.
	halfYearDays = 365.0 / 2
)

// Params are the fixed physical and economic parameters, immutable
// after construction.
// Units: capacities/powers in kWh/kW, efficiencies in (0,1],
// penalty and tariff in currency units per kWh.
type Params struct {
	ShortTermCapacity   float64
	ShortTermEfficiency float64
	LongTermMaxPower    float64
	LongTermEfficiency  float64
	LossLoadPenalty     float64
	LongTermTariff      float64
}

// DefaultParams matches the reference sizing: a 15 kWh battery at 90%
// efficiency, a 1.1 kW hydrogen electrolyzer/fuel-cell pair at 65%
// round trip, 2/kWh loss load, 0.1/kWh hydrogen tariff.
func DefaultParams() Params {
	return Params{
		ShortTermCapacity:   15.0,
		ShortTermEfficiency: 0.9,
		LongTermMaxPower:    1.1,
		LongTermEfficiency:  0.65,
		LossLoadPenalty:     2.0,
		LongTermTariff:      0.1,
	}
}

func (p Params) Validate() error {
	if p.ShortTermCapacity <= 0 {
		return errors.New("ShortTermCapacity must be > 0")
	}
	if p.ShortTermEfficiency <= 0 || p.ShortTermEfficiency > 1 {
		return errors.New("ShortTermEfficiency must be in (0, 1]")
	}
	if p.LongTermMaxPower < 0 {
		return errors.New("LongTermMaxPower must be >= 0")
	}
	if p.LongTermEfficiency <= 0 || p.LongTermEfficiency > 1 {
		return errors.New("LongTermEfficiency must be in (0, 1]")
	}
	if p.LossLoadPenalty < 0 {
		return errors.New("LossLoadPenalty must be >= 0")
	}
	return nil
}

// Flags select the optional observation features. Only three of the
// four combinations form a supported layout; see layoutFor.
type Flags struct {
	SeasonalSignal     bool
	ProductionForecast bool
}

// Environment is the state machine. It is not safe for concurrent
// use; one driver loop calls Reset/Step/Observe sequentially.
type Environment struct {
	params Params
	layout Layout
	// rng is reserved for stochastic variants (noisy forecasts); the
	// deterministic core never draws from it.
	rng *rand.Rand

	dataset *series.Dataset

	// Episode state, owned exclusively by Reset and Step.
	split          *series.Split
	shortTermLevel float64
	longTermLevel  float64
	cursor         int
	last           Observation
}

// New constructs an environment over a dataset. The dataset is
// referenced, not copied; the caller must not mutate it while an
// episode is active.
func New(rng *rand.Rand, params Params, flags Flags, dataset *series.Dataset) (*Environment, error) {
	if err := params.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	layout, err := layoutFor(flags)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, &ConfigurationError{Reason: "dataset is nil"}
	}
	return &Environment{
		params:  params,
		layout:  layout,
		rng:     rng,
		dataset: dataset,
	}, nil
}

// Reset starts a new episode on the split for mode: the short-term
// buffer starts full, the long-term accumulator at zero, the cursor
// at 1.
//
// The returned observation is all zeros, including the storage-level
// slot, even though the internal level is 1.0. The reference behaves
// this way (t=0 is "not yet measured") and drivers depend on it, so
// the asymmetry is kept.
func (e *Environment) Reset(mode series.Mode) (Observation, error) {
	split, err := e.dataset.Split(mode)
	if err != nil {
		return Observation{}, err
	}
	if min := e.minSplitLen(); split.Len() < min {
		return Observation{}, fmt.Errorf("%s split too short: %d samples, need >= %d", mode, split.Len(), min)
	}

	e.split = split
	e.shortTermLevel = 1.0
	e.longTermLevel = 0
	e.cursor = 1
	e.last = Observation{Layout: e.layout}
	return e.last, nil
}

// Step advances one hour. The action charges, holds or discharges the
// long-term store; the short-term buffer then absorbs whatever net
// demand remains. The returned reward is the hydrogen tariff earned
// minus any loss-load penalty.
//
// Validation happens before any mutation: a failed Step leaves the
// environment exactly as it was.
func (e *Environment) Step(action Action) (float64, error) {
	if e.split == nil {
		return 0, ErrNoEpisode
	}
	if !action.Valid() {
		return 0, &InvalidActionError{Action: action}
	}
	if limit := e.EpisodeLength(); e.cursor > limit {
		return 0, &OutOfRangeError{Cursor: e.cursor, Limit: limit}
	}

	// Physical-unit imbalance at the hour just consumed.
	trueDemand := e.split.Consumption[e.cursor-1] - e.split.Production[e.cursor-1]

	// fromLongTerm is the long-term store's contribution to demand:
	// negative when discharging (it supplies energy, degraded by the
	// round-trip efficiency), positive when charging (it draws extra
	// energy, inflated by the same efficiency). delta is the raw
	// power booked against the accumulator.
	var fromLongTerm, delta float64
	switch action {
	case ActionDischarge:
		fromLongTerm = -e.params.LongTermMaxPower * e.params.LongTermEfficiency
		delta = -e.params.LongTermMaxPower
	case ActionHold:
		// No long-term flow.
	case ActionCharge:
		fromLongTerm = e.params.LongTermMaxPower / e.params.LongTermEfficiency
		delta = e.params.LongTermMaxPower
	}

	reward := delta * e.params.LongTermTariff

	// The short-term buffer covers the remaining need (or absorbs the
	// remaining surplus).
	level := e.shortTermLevel
	netNeed := trueDemand + fromLongTerm
	switch {
	case netNeed > 0:
		available := level * e.params.ShortTermCapacity
		if available >= netNeed {
			level -= netNeed / e.params.ShortTermCapacity
		} else {
			reward -= (netNeed - available) * e.params.LossLoadPenalty
			level = 0
		}
	case netNeed < 0:
		level = math.Min(1, level-netNeed/e.params.ShortTermCapacity*e.params.ShortTermEfficiency)
	}

	obs := Observation{
		Layout:       e.layout,
		StorageLevel: level,
		Consumption:  e.split.ConsumptionNorm[e.cursor],
		Production:   e.split.ProductionNorm[e.cursor],
	}
	if e.layout == LayoutSeasonal || e.layout == LayoutFull {
		obs.DistanceToEquinox = math.Abs(float64(e.cursor)/24-halfYearDays) / halfYearDays
	}
	if e.layout == LayoutFull {
		obs.Forecast24 = stat.Mean(e.split.ProductionNorm[e.cursor:e.cursor+forecastShortHours], nil)
		obs.Forecast48 = stat.Mean(e.split.ProductionNorm[e.cursor:e.cursor+forecastLongHours], nil)
	}

	// Commit.
	e.shortTermLevel = level
	e.longTermLevel += delta
	e.last = obs
	e.cursor++

	return reward, nil
}

// Observe returns a copy of the last-assembled observation. Calling
// it repeatedly without a Step in between returns equal values.
func (e *Environment) Observe() Observation {
	return e.last
}

// InputDimensions returns the observation component shapes fixed at
// construction.
func (e *Environment) InputDimensions() []Shape {
	return e.layout.InputDimensions()
}

// NActions returns the size of the discrete action space.
func (e *Environment) NActions() int { return NumActions }

// Layout returns the observation layout fixed at construction.
func (e *Environment) Layout() Layout { return e.layout }

// Params returns the fixed parameters.
func (e *Environment) Params() Params { return e.params }

// ShortTermLevel returns the buffer fill fraction in [0,1].
func (e *Environment) ShortTermLevel() float64 { return e.shortTermLevel }

// LongTermLevel returns the net energy moved into the long-term store
// since Reset. It is an unbounded accumulator, not a capacity gauge.
func (e *Environment) LongTermLevel() float64 { return e.longTermLevel }

// Cursor returns the current series index; 1 immediately after Reset.
func (e *Environment) Cursor() int { return e.cursor }

// EpisodeLength returns the highest cursor Step will accept for the
// active split: the forecast window must stay in bounds when
// forecasts are enabled.
func (e *Environment) EpisodeLength() int {
	if e.split == nil {
		return 0
	}
	if e.layout == LayoutFull {
		return e.split.Len() - forecastLongHours
	}
	return e.split.Len() - 1
}

// minSplitLen is the minimum series length Reset accepts for the
// configured layout.
func (e *Environment) minSplitLen() int {
	if e.layout == LayoutFull {
		return forecastLongHours
	}
	return 1
}
