package main

import (
	"flag"
	"fmt"
	"math/rand"

	"microgrid-env/internal/env"
	"microgrid-env/internal/series"
)

// Demo:
// - Build a synthetic dataset
// - Instantiate the environment with the reference sizing
// - Play a short fixed action sequence to show how observations and
//   rewards evolve
func main() {
	seed := flag.Int64("seed", 123456, "Synthetic data seed")
	n := flag.Int("n", series.YearHours, "Samples per split")
	flag.Parse()

	dataset := series.SyntheticDataset(*n, *seed, series.DefaultScaling())
	series.LogSplitProfile("train", dataset.Train)

	rng := rand.New(rand.NewSource(*seed))
	e, err := env.New(rng, env.DefaultParams(), env.Flags{SeasonalSignal: true, ProductionForecast: true}, dataset)
	if err != nil {
		panic(err)
	}

	obs, err := e.Reset(series.ModeTrain)
	if err != nil {
		panic(err)
	}
	fmt.Printf("reset: %+v\n", obs)

	script := []env.Action{
		env.ActionCharge, env.ActionCharge, env.ActionDischarge,
		env.ActionHold, env.ActionHold,
		env.ActionCharge, env.ActionCharge, env.ActionCharge,
		env.ActionCharge, env.ActionCharge,
		env.ActionHold, env.ActionHold,
	}
	for i, a := range script {
		reward, err := e.Step(a)
		if err != nil {
			panic(err)
		}
		o := e.Observe()
		fmt.Printf("step %2d %-9s reward=%+.4f battery=%.4f cons=%.3f prod=%.3f fc24=%.3f\n",
			i, a, reward, o.StorageLevel, o.Consumption, o.Production, o.Forecast24)
	}

	fmt.Printf("hydrogen storage: %.3f kWh, cursor: %d\n", e.LongTermLevel(), e.Cursor())
}
