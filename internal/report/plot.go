// Package report renders diagnostics from a recorded trajectory. It
// is pure presentation: nothing here feeds back into the environment.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"microgrid-env/internal/episode"
)

// DefaultPlotWindow matches the 100-step window of the reference
// performance figure.
const DefaultPlotWindow = 100

// RenderTrajectory draws storage level, normalized consumption and
// production, and the action trace for the first window steps of a
// trajectory, and saves the figure to path (format from extension,
// e.g. .png). Everything is drawn on the normalized [0,1] axis, with
// actions mapped to {0, 0.5, 1} for discharge/hold/charge.
func RenderTrajectory(path string, trajectory []episode.Record, window int) error {
	if len(trajectory) == 0 {
		return fmt.Errorf("empty trajectory")
	}
	if window <= 0 || window > len(trajectory) {
		window = len(trajectory)
	}
	if window > DefaultPlotWindow {
		window = DefaultPlotWindow
	}
	rec := trajectory[:window]

	p := plot.New()
	p.Title.Text = "Microgrid episode"
	p.X.Label.Text = "Hour"
	p.Y.Label.Text = "Normalized level"
	p.Y.Min, p.Y.Max = 0, 1.05

	storage := make(plotter.XYs, len(rec))
	consumption := make(plotter.XYs, len(rec))
	production := make(plotter.XYs, len(rec))
	actions := make(plotter.XYs, len(rec))
	for i, r := range rec {
		x := float64(r.Step)
		storage[i] = plotter.XY{X: x, Y: r.StorageLevel}
		consumption[i] = plotter.XY{X: x, Y: r.Consumption}
		production[i] = plotter.XY{X: x, Y: r.Production}
		actions[i] = plotter.XY{X: x, Y: float64(r.Action) / 2}
	}

	if err := addLines(p,
		"Battery level", storage,
		"Consumption", consumption,
		"Production", production,
		"H actions", actions,
	); err != nil {
		return err
	}

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

// addLines adds name/points pairs as styled lines with legend
// entries.
func addLines(p *plot.Plot, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		name := pairs[i].(string)
		pts := pairs[i+1].(plotter.XYs)
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = paletteColor(i / 2)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true
	return nil
}
