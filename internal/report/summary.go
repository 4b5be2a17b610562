package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/stat"

	"microgrid-env/internal/episode"
)

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, // cyan
}

func paletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// Summarize writes a console summary of an episode result: totals,
// final storage state, and per-step reward statistics.
func Summarize(w io.Writer, res *episode.Result) {
	rewards := make([]float64, len(res.Trajectory))
	counts := map[string]int{}
	for i, r := range res.Trajectory {
		rewards[i] = r.Reward
		counts[r.Action.String()]++
	}

	fmt.Fprintf(w, "episode summary (%s split, %s policy)\n", res.Mode, res.Policy)
	fmt.Fprintf(w, "  steps:              %d\n", len(res.Trajectory))
	fmt.Fprintf(w, "  total reward:       %.4f\n", res.TotalReward)
	fmt.Fprintf(w, "  final battery:      %.4f\n", res.FinalStorageLevel)
	fmt.Fprintf(w, "  hydrogen storage:   %.4f kWh\n", res.FinalLongTermLevel)
	if len(rewards) > 0 {
		mean, std := stat.MeanStdDev(rewards, nil)
		fmt.Fprintf(w, "  reward per step:    mean=%.5f std=%.5f\n", mean, std)
	}
	fmt.Fprintf(w, "  actions:            charge=%d hold=%d discharge=%d\n",
		counts["CHARGE"], counts["HOLD"], counts["DISCHARGE"])
}
