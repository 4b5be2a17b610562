package models

// EnvironmentSpec defines environment parameters in a request body.
// Zero-valued numeric fields fall back to the reference defaults.
type EnvironmentSpec struct {
	Name string `json:"name,omitempty"`

	ShortTermCapacityKWh float64 `json:"short_term_capacity_kwh,omitempty"`
	ShortTermEfficiency  float64 `json:"short_term_efficiency,omitempty"`
	LongTermMaxPowerKW   float64 `json:"long_term_max_power_kw,omitempty"`
	LongTermEfficiency   float64 `json:"long_term_efficiency,omitempty"`
	LossLoadPenalty      float64 `json:"loss_load_penalty,omitempty"`
	LongTermTariff       float64 `json:"long_term_tariff,omitempty"`

	SeasonalSignal     bool `json:"seasonal_signal,omitempty"`
	ProductionForecast bool `json:"production_forecast,omitempty"`
}

// DataSpec selects the profile data an environment reads. The API
// only serves synthetic profiles or server-side profile files; it
// never accepts raw series in the body.
type DataSpec struct {
	Synthetic       bool  `json:"synthetic,omitempty"`
	SyntheticLength int   `json:"synthetic_length,omitempty"`
	Seed            int64 `json:"seed,omitempty"`

	TrainProduction  string `json:"train_production,omitempty"`
	TrainConsumption string `json:"train_consumption,omitempty"`
	TestProduction   string `json:"test_production,omitempty"`
	TestConsumption  string `json:"test_consumption,omitempty"`

	InstalledPVKWp float64 `json:"installed_pv_kwp,omitempty"`
	PeakDemandKW   float64 `json:"peak_demand_kw,omitempty"`
}

// PolicySpec names a baseline policy and its parameters.
type PolicySpec struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// CreateSessionRequest opens an interactive environment session.
type CreateSessionRequest struct {
	Environment EnvironmentSpec `json:"environment"`
	Data        DataSpec        `json:"data"`
}

// ResetRequest starts an episode on a split.
type ResetRequest struct {
	Mode string `json:"mode" binding:"required"` // train | validation | test
}

// StepRequest advances the session one step.
type StepRequest struct {
	Action int `json:"action"`
}

// RunEpisodeRequest runs a whole episode in one call.
type RunEpisodeRequest struct {
	Environment       EnvironmentSpec `json:"environment"`
	Data              DataSpec        `json:"data"`
	Mode              string          `json:"mode" binding:"required"`
	Policy            PolicySpec      `json:"policy" binding:"required"`
	Steps             int             `json:"steps,omitempty"` // 0 = full episode
	IncludeTrajectory bool            `json:"include_trajectory,omitempty"`
}
