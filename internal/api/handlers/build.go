package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microgrid-env/internal/api/models"
	"microgrid-env/internal/config"
	"microgrid-env/internal/env"
)

// buildEnvironment turns request specs into a live environment by
// reusing the config layer: the API body is just another source of
// the same shapes the YAML config carries.
func buildEnvironment(spec models.EnvironmentSpec, data models.DataSpec) (*env.Environment, error) {
	cfg := config.Config{
		Environment: config.EnvironmentConfig{
			Name:                spec.Name,
			ShortTermCapacity:   spec.ShortTermCapacityKWh,
			ShortTermEfficiency: spec.ShortTermEfficiency,
			LongTermMaxPower:    spec.LongTermMaxPowerKW,
			LongTermEfficiency:  spec.LongTermEfficiency,
			LossLoadPenalty:     spec.LossLoadPenalty,
			LongTermTariff:      spec.LongTermTariff,
			SeasonalSignal:      spec.SeasonalSignal,
			ProductionForecast:  spec.ProductionForecast,
		},
		Data: config.DataConfig{
			TrainProduction:  data.TrainProduction,
			TrainConsumption: data.TrainConsumption,
			TestProduction:   data.TestProduction,
			TestConsumption:  data.TestConsumption,
			InstalledPVKWp:   data.InstalledPVKWp,
			PeakDemandKW:     data.PeakDemandKW,
			Synthetic:        data.Synthetic,
			SyntheticLength:  data.SyntheticLength,
			Seed:             data.Seed,
		},
	}
	// Requests that name no data files get synthetic profiles.
	if cfg.Data.TrainProduction == "" && !cfg.Data.Synthetic {
		cfg.Data.Synthetic = true
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataset, err := cfg.Data.BuildDataset()
	if err != nil {
		return nil, err
	}
	return env.New(nil, cfg.Environment.ToParams(), cfg.Environment.ToFlags(), dataset)
}

// writeEnvError maps environment error types onto HTTP statuses and
// stable error codes.
func writeEnvError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	code := "BAD_REQUEST"

	var cfgErr *env.ConfigurationError
	var actionErr *env.InvalidActionError
	var rangeErr *env.OutOfRangeError
	switch {
	case errors.As(err, &cfgErr):
		code = "CONFIGURATION_ERROR"
	case errors.As(err, &actionErr):
		code = "INVALID_ACTION"
		status = http.StatusUnprocessableEntity
	case errors.As(err, &rangeErr):
		code = "OUT_OF_RANGE"
		status = http.StatusConflict
	case errors.Is(err, env.ErrNoEpisode):
		code = "NO_EPISODE"
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func inputDims(e *env.Environment) [][]int {
	shapes := e.InputDimensions()
	out := make([][]int, len(shapes))
	for i, s := range shapes {
		out[i] = []int(s)
	}
	return out
}
