package series

import (
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ProfileStats summarizes a physical profile. The reference printed
// these during construction; here they are a diagnostic the caller
// asks for, the environment itself never emits them.
type ProfileStats struct {
	Min           float64
	Max           float64
	Mean          float64
	AveragePerDay float64 // mean daily energy in kWh, assuming hourly samples
}

func ComputeProfileStats(profile []float64) ProfileStats {
	if len(profile) == 0 {
		return ProfileStats{}
	}
	mean := stat.Mean(profile, nil)
	return ProfileStats{
		Min:           floats.Min(profile),
		Max:           floats.Max(profile),
		Mean:          mean,
		AveragePerDay: mean * 24,
	}
}

// LogSplitProfile prints the consumption/production summary lines for
// one split, in the style of the reference diagnostics.
func LogSplitProfile(name string, s *Split) {
	cons := ComputeProfileStats(s.Consumption)
	prod := ComputeProfileStats(s.Production)
	log.Printf("[series] %s consumption (kW): min=%.3f max=%.3f avg/day=%.2f kWh", name, cons.Min, cons.Max, cons.AveragePerDay)
	log.Printf("[series] %s production  (kW): min=%.3f max=%.3f avg/day=%.2f kWh", name, prod.Min, prod.Max, prod.AveragePerDay)
}
