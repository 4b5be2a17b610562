package episode

import (
	"fmt"

	"microgrid-env/internal/env"
)

// Context is what a policy sees when deciding a step: the step index
// within the episode and the observation produced by the previous
// step (zeroed at t=0, per the environment's reset contract).
type Context struct {
	Step        int
	Observation env.Observation
}

// Policy chooses one long-term-store action per step. Policies here
// are deliberately simple baselines; learning agents live outside
// this repository and drive the environment through the same loop.
type Policy interface {
	Name() string
	Decide(ctx Context) env.Action
}

// HoldPolicy never touches the long-term store.
type HoldPolicy struct{}

func (HoldPolicy) Name() string              { return "hold" }
func (HoldPolicy) Decide(Context) env.Action { return env.ActionHold }

// SchedulePolicy charges the long-term store during a fixed
// hour-of-day window and discharges during another, holding
// otherwise. Hours are on a 24h clock; a window may wrap midnight,
// and start==end means the window is empty.
type SchedulePolicy struct {
	ChargeStartHour    int
	ChargeEndHour      int
	DischargeStartHour int
	DischargeEndHour   int
}

func (SchedulePolicy) Name() string { return "schedule" }

func (p SchedulePolicy) Decide(ctx Context) env.Action {
	hour := ctx.Step % 24
	if inWindow(hour, p.ChargeStartHour, p.ChargeEndHour) {
		return env.ActionCharge
	}
	if inWindow(hour, p.DischargeStartHour, p.DischargeEndHour) {
		return env.ActionDischarge
	}
	return env.ActionHold
}

// ThresholdPolicy acts on the sign of the observed normalized
// surplus: charge when production exceeds consumption by at least
// Margin, discharge when consumption exceeds production by at least
// Margin, hold in between.
type ThresholdPolicy struct {
	Margin float64
}

func (ThresholdPolicy) Name() string { return "threshold" }

func (p ThresholdPolicy) Decide(ctx Context) env.Action {
	surplus := ctx.Observation.Production - ctx.Observation.Consumption
	switch {
	case surplus > p.Margin:
		return env.ActionCharge
	case surplus < -p.Margin:
		return env.ActionDischarge
	default:
		return env.ActionHold
	}
}

// BuildPolicy constructs a named policy from loosely-typed params
// (as they arrive from YAML config or a JSON request body).
func BuildPolicy(name string, params map[string]any) (Policy, error) {
	switch name {
	case "hold", "":
		return HoldPolicy{}, nil
	case "schedule":
		return SchedulePolicy{
			ChargeStartHour:    intParam(params, "charge_start_hour", 10),
			ChargeEndHour:      intParam(params, "charge_end_hour", 16),
			DischargeStartHour: intParam(params, "discharge_start_hour", 18),
			DischargeEndHour:   intParam(params, "discharge_end_hour", 22),
		}, nil
	case "threshold":
		return ThresholdPolicy{
			Margin: floatParam(params, "margin", 0.1),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported policy: %q", name)
	}
}

// inWindow checks hour membership in [start, end) on a 24h clock,
// wrapping across midnight when start > end.
func inWindow(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

func floatParam(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}

func intParam(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case int:
			return x
		case float64:
			return int(x)
		}
	}
	return def
}
