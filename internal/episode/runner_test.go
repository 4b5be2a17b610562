package episode

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microgrid-env/internal/env"
	"microgrid-env/internal/series"
)

func testEnv(t *testing.T, n int) *env.Environment {
	t.Helper()
	prodNorm, consNorm := series.Synthetic(n, 17)
	s := series.NewSplit(prodNorm, consNorm, series.DefaultScaling())
	ds := &series.Dataset{Train: s, Validation: s, Test: s}
	e, err := env.New(nil, env.DefaultParams(), env.Flags{}, ds)
	require.NoError(t, err)
	return e
}

func TestRunFullEpisode(t *testing.T) {
	n := 240
	e := testEnv(t, n)

	res, err := Run(e, series.ModeTrain, HoldPolicy{}, 0)
	require.NoError(t, err)

	assert.Equal(t, n-1, len(res.Trajectory), "steps <= 0 runs the whole usable episode")
	assert.Equal(t, "hold", res.Policy)
	assert.Equal(t, series.ModeTrain, res.Mode)
	assert.Equal(t, 0.0, res.FinalLongTermLevel, "hold never moves the long-term store")

	// Cumulative reward is consistent with the per-step rewards.
	cum := 0.0
	for i, r := range res.Trajectory {
		assert.Equal(t, i, r.Step)
		assert.Equal(t, env.ActionHold, r.Action)
		cum += r.Reward
		assert.InDelta(t, cum, r.CumReward, 1e-9)
	}
	assert.InDelta(t, cum, res.TotalReward, 1e-9)
}

func TestRunStepLimit(t *testing.T) {
	e := testEnv(t, 240)
	res, err := Run(e, series.ModeTrain, HoldPolicy{}, 24)
	require.NoError(t, err)
	assert.Len(t, res.Trajectory, 24)
}

func TestRunValidatesInputs(t *testing.T) {
	_, err := Run(nil, series.ModeTrain, HoldPolicy{}, 0)
	assert.Error(t, err)

	e := testEnv(t, 240)
	_, err = Run(e, series.ModeTrain, nil, 0)
	assert.Error(t, err)
}

func TestSchedulePolicyWindows(t *testing.T) {
	p := SchedulePolicy{
		ChargeStartHour:    10,
		ChargeEndHour:      16,
		DischargeStartHour: 18,
		DischargeEndHour:   22,
	}

	cases := map[int]env.Action{
		0:  env.ActionHold,
		10: env.ActionCharge,
		15: env.ActionCharge,
		16: env.ActionHold,
		18: env.ActionDischarge,
		21: env.ActionDischarge,
		22: env.ActionHold,
	}
	for hour, want := range cases {
		got := p.Decide(Context{Step: hour})
		assert.Equal(t, want, got, "hour %d", hour)
	}

	// Second day repeats the schedule.
	assert.Equal(t, env.ActionCharge, p.Decide(Context{Step: 24 + 12}))

	// A window wrapping midnight.
	wrap := SchedulePolicy{ChargeStartHour: 22, ChargeEndHour: 2}
	assert.Equal(t, env.ActionCharge, wrap.Decide(Context{Step: 23}))
	assert.Equal(t, env.ActionCharge, wrap.Decide(Context{Step: 1}))
	assert.Equal(t, env.ActionHold, wrap.Decide(Context{Step: 3}))
}

func TestThresholdPolicy(t *testing.T) {
	p := ThresholdPolicy{Margin: 0.1}

	obs := func(prod, cons float64) Context {
		return Context{Observation: env.Observation{Production: prod, Consumption: cons}}
	}
	assert.Equal(t, env.ActionCharge, p.Decide(obs(0.8, 0.2)))
	assert.Equal(t, env.ActionDischarge, p.Decide(obs(0.1, 0.9)))
	assert.Equal(t, env.ActionHold, p.Decide(obs(0.5, 0.45)))
}

func TestBuildPolicy(t *testing.T) {
	p, err := BuildPolicy("hold", nil)
	require.NoError(t, err)
	assert.Equal(t, "hold", p.Name())

	p, err = BuildPolicy("schedule", map[string]any{"charge_start_hour": 8, "charge_end_hour": 12})
	require.NoError(t, err)
	sched, ok := p.(SchedulePolicy)
	require.True(t, ok)
	assert.Equal(t, 8, sched.ChargeStartHour)
	assert.Equal(t, 12, sched.ChargeEndHour)

	// YAML/JSON numbers arrive as float64.
	p, err = BuildPolicy("threshold", map[string]any{"margin": 0.25})
	require.NoError(t, err)
	thresh, ok := p.(ThresholdPolicy)
	require.True(t, ok)
	assert.Equal(t, 0.25, thresh.Margin)

	_, err = BuildPolicy("oracle", nil)
	assert.Error(t, err)
}

func TestWriteTrajectoryCSV(t *testing.T) {
	e := testEnv(t, 240)
	res, err := Run(e, series.ModeTrain, SchedulePolicy{
		ChargeStartHour: 10, ChargeEndHour: 16,
		DischargeStartHour: 18, DischargeEndHour: 22,
	}, 48)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trajectory.csv")
	require.NoError(t, WriteTrajectoryCSV(path, res.Trajectory))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 49) // header + 48 steps

	assert.Equal(t, "step", rows[0][0])
	assert.Equal(t, "action", rows[0][1])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "HOLD", rows[1][1])
	assert.Equal(t, "CHARGE", rows[11][1]) // step 10 is in the charge window
}
