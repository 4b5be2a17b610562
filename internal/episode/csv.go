package episode

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteTrajectoryCSV writes the per-step trajectory, one row per step.
// Action values are the stable strings CHARGE/HOLD/DISCHARGE.
func WriteTrajectoryCSV(path string, trajectory []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"step",
		"action",
		"reward",
		"cum_reward",
		"storage_level",
		"consumption",
		"production",
		"distance_to_equinox",
		"forecast_24h",
		"forecast_48h",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range trajectory {
		row := []string{
			strconv.Itoa(r.Step),
			r.Action.String(),
			fmtFloat(r.Reward),
			fmtFloat(r.CumReward),
			fmtFloat(r.StorageLevel),
			fmtFloat(r.Consumption),
			fmtFloat(r.Production),
			fmtFloat(r.DistanceToEquinox),
			fmtFloat(r.Forecast24),
			fmtFloat(r.Forecast48),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
