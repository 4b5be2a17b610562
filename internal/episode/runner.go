package episode

import (
	"fmt"

	"microgrid-env/internal/env"
	"microgrid-env/internal/series"
)

// Record is one row of per-step output: the action taken, the reward
// it earned, and the observation the step produced. This is the
// primary artifact for "what happened" in an episode.
type Record struct {
	Step   int
	Action env.Action

	Reward    float64
	CumReward float64

	StorageLevel      float64
	Consumption       float64
	Production        float64
	DistanceToEquinox float64
	Forecast24        float64
	Forecast48        float64
}

type Result struct {
	Mode       series.Mode
	Policy     string
	Trajectory []Record

	TotalReward        float64
	FinalStorageLevel  float64
	FinalLongTermLevel float64
}

// Run resets the environment on mode and drives it with the policy
// for steps steps (steps <= 0 runs the whole usable episode).
func Run(e *env.Environment, mode series.Mode, pol Policy, steps int) (*Result, error) {
	if e == nil {
		return nil, fmt.Errorf("environment is nil")
	}
	if pol == nil {
		return nil, fmt.Errorf("policy is nil")
	}

	obs, err := e.Reset(mode)
	if err != nil {
		return nil, fmt.Errorf("reset %s: %w", mode, err)
	}

	limit := e.EpisodeLength()
	if steps <= 0 || steps > limit {
		steps = limit
	}

	trajectory := make([]Record, 0, steps)
	cum := 0.0

	for i := 0; i < steps; i++ {
		action := pol.Decide(Context{Step: i, Observation: obs})
		reward, err := e.Step(action)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, action, err)
		}
		cum += reward

		obs = e.Observe()
		trajectory = append(trajectory, Record{
			Step:   i,
			Action: action,

			Reward:    reward,
			CumReward: cum,

			StorageLevel:      obs.StorageLevel,
			Consumption:       obs.Consumption,
			Production:        obs.Production,
			DistanceToEquinox: obs.DistanceToEquinox,
			Forecast24:        obs.Forecast24,
			Forecast48:        obs.Forecast48,
		})
	}

	return &Result{
		Mode:               mode,
		Policy:             pol.Name(),
		Trajectory:         trajectory,
		TotalReward:        cum,
		FinalStorageLevel:  e.ShortTermLevel(),
		FinalLongTermLevel: e.LongTermLevel(),
	}, nil
}
