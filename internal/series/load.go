package series

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// YearHours is the nominal split length: one year of hourly samples.
const YearHours = 365 * 24

// LoadVector reads a flat numeric file: one float per line, blank
// lines ignored. This is the plain-text export of the reference
// profile vectors.
func LoadVector(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []float64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}
	return out, nil
}

// FileSet names the profile files a dataset is built from. Train and
// validation both come from the train files (first and second year
// respectively); test has its own files.
type FileSet struct {
	TrainProduction  string
	TrainConsumption string
	TestProduction   string
	TestConsumption  string
}

// LoadDataset builds the three splits from flat profile files.
// The train files must carry at least two years of hourly samples so
// the validation split does not overlap the train split.
func LoadDataset(fs FileSet, sc Scaling) (*Dataset, error) {
	prodTrain, err := LoadVector(fs.TrainProduction)
	if err != nil {
		return nil, fmt.Errorf("train production: %w", err)
	}
	consTrain, err := LoadVector(fs.TrainConsumption)
	if err != nil {
		return nil, fmt.Errorf("train consumption: %w", err)
	}
	prodTest, err := LoadVector(fs.TestProduction)
	if err != nil {
		return nil, fmt.Errorf("test production: %w", err)
	}
	consTest, err := LoadVector(fs.TestConsumption)
	if err != nil {
		return nil, fmt.Errorf("test consumption: %w", err)
	}

	if len(prodTrain) < 2*YearHours || len(consTrain) < 2*YearHours {
		return nil, fmt.Errorf("train files must hold >= %d samples (two years), got production=%d consumption=%d",
			2*YearHours, len(prodTrain), len(consTrain))
	}

	d := &Dataset{
		Train:      NewSplit(prodTrain[:YearHours], consTrain[:YearHours], sc),
		Validation: NewSplit(prodTrain[YearHours:2*YearHours], consTrain[YearHours:2*YearHours], sc),
		Test:       NewSplit(clampYear(prodTest), clampYear(consTest), sc),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func clampYear(v []float64) []float64 {
	if len(v) > YearHours {
		return v[:YearHours]
	}
	return v
}
