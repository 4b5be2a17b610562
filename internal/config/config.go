package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"microgrid-env/internal/env"
	"microgrid-env/internal/series"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load environment parameters from a separate YAML
	// (e.g. examples/environments/*.yaml). Explicit fields under
	// Environment override the file.
	EnvironmentFile string            `yaml:"environment_file"`
	Environment     EnvironmentConfig `yaml:"environment"`
	Data            DataConfig        `yaml:"data"`
	Policy          PolicyConfig      `yaml:"policy"`
}

type EnvironmentConfig struct {
	Name string `yaml:"name"`

	ShortTermCapacity   float64 `yaml:"short_term_capacity_kwh"`
	ShortTermEfficiency float64 `yaml:"short_term_efficiency"`
	LongTermMaxPower    float64 `yaml:"long_term_max_power_kw"`
	LongTermEfficiency  float64 `yaml:"long_term_efficiency"`
	LossLoadPenalty     float64 `yaml:"loss_load_penalty"`
	LongTermTariff      float64 `yaml:"long_term_tariff"`

	SeasonalSignal     bool `yaml:"seasonal_signal"`
	ProductionForecast bool `yaml:"production_forecast"`
}

// DataConfig points at the profile files, or asks for synthetic
// profiles when no historical data is on disk.
type DataConfig struct {
	TrainProduction  string `yaml:"train_production"`
	TrainConsumption string `yaml:"train_consumption"`
	TestProduction   string `yaml:"test_production"`
	TestConsumption  string `yaml:"test_consumption"`

	InstalledPVKWp float64 `yaml:"installed_pv_kwp"`
	PeakDemandKW   float64 `yaml:"peak_demand_kw"`

	Synthetic       bool  `yaml:"synthetic"`
	SyntheticLength int   `yaml:"synthetic_length"`
	Seed            int64 `yaml:"seed"`
}

type PolicyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.EnvironmentFile != "" {
		envPath := c.EnvironmentFile
		if !filepath.IsAbs(envPath) {
			// Prefer paths relative to the config file directory, but
			// fall back to cwd-relative if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), envPath)
			if _, err := os.Stat(cand); err == nil {
				envPath = cand
			}
		}
		loaded, err := loadEnvironmentFile(envPath)
		if err != nil {
			return nil, err
		}
		c.Environment = MergeEnvironment(loaded, c.Environment)
	}
	return &c, nil
}

// ApplyDefaults fills unset numeric fields with the reference sizing,
// so a minimal config only has to name its data files.
func (c *Config) ApplyDefaults() {
	def := env.DefaultParams()
	e := &c.Environment
	if e.ShortTermCapacity == 0 {
		e.ShortTermCapacity = def.ShortTermCapacity
	}
	if e.ShortTermEfficiency == 0 {
		e.ShortTermEfficiency = def.ShortTermEfficiency
	}
	if e.LongTermMaxPower == 0 {
		e.LongTermMaxPower = def.LongTermMaxPower
	}
	if e.LongTermEfficiency == 0 {
		e.LongTermEfficiency = def.LongTermEfficiency
	}
	if e.LossLoadPenalty == 0 {
		e.LossLoadPenalty = def.LossLoadPenalty
	}
	if e.LongTermTariff == 0 {
		e.LongTermTariff = def.LongTermTariff
	}

	sc := series.DefaultScaling()
	if c.Data.InstalledPVKWp == 0 {
		c.Data.InstalledPVKWp = sc.InstalledPVKWp
	}
	if c.Data.PeakDemandKW == 0 {
		c.Data.PeakDemandKW = sc.PeakDemandKW
	}
	if c.Data.SyntheticLength == 0 {
		c.Data.SyntheticLength = series.YearHours
	}
	if c.Policy.Name == "" {
		c.Policy.Name = "hold"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate environment params the same way the environment will.
	if err := c.Environment.ToParams().Validate(); err != nil {
		return fmt.Errorf("environment config invalid: %w", err)
	}
	if c.Environment.ProductionForecast && !c.Environment.SeasonalSignal {
		return errors.New("environment config invalid: production_forecast requires seasonal_signal")
	}
	if !c.Data.Synthetic {
		for name, p := range map[string]string{
			"data.train_production":  c.Data.TrainProduction,
			"data.train_consumption": c.Data.TrainConsumption,
			"data.test_production":   c.Data.TestProduction,
			"data.test_consumption":  c.Data.TestConsumption,
		} {
			if p == "" {
				return fmt.Errorf("%s is required (or set data.synthetic: true)", name)
			}
		}
	}
	return nil
}

func (e EnvironmentConfig) ToParams() env.Params {
	return env.Params{
		ShortTermCapacity:   e.ShortTermCapacity,
		ShortTermEfficiency: e.ShortTermEfficiency,
		LongTermMaxPower:    e.LongTermMaxPower,
		LongTermEfficiency:  e.LongTermEfficiency,
		LossLoadPenalty:     e.LossLoadPenalty,
		LongTermTariff:      e.LongTermTariff,
	}
}

func (e EnvironmentConfig) ToFlags() env.Flags {
	return env.Flags{
		SeasonalSignal:     e.SeasonalSignal,
		ProductionForecast: e.ProductionForecast,
	}
}

func (d DataConfig) Scaling() series.Scaling {
	return series.Scaling{
		InstalledPVKWp: d.InstalledPVKWp,
		PeakDemandKW:   d.PeakDemandKW,
	}
}

// BuildDataset loads (or generates) the dataset the config describes.
func (d DataConfig) BuildDataset() (*series.Dataset, error) {
	if d.Synthetic {
		return series.SyntheticDataset(d.SyntheticLength, d.Seed, d.Scaling()), nil
	}
	return series.LoadDataset(series.FileSet{
		TrainProduction:  d.TrainProduction,
		TrainConsumption: d.TrainConsumption,
		TestProduction:   d.TestProduction,
		TestConsumption:  d.TestConsumption,
	}, d.Scaling())
}

type environmentFileWrapper struct {
	Environment EnvironmentConfig `yaml:"environment"`
}

func loadEnvironmentFile(path string) (EnvironmentConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EnvironmentConfig{}, err
	}
	var w environmentFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return EnvironmentConfig{}, err
	}
	return w.Environment, nil
}

// MergeEnvironment overlays non-zero fields from override onto base.
// Booleans always OR in the override; YAML has no way to express
// "unset" for them.
func MergeEnvironment(base, override EnvironmentConfig) EnvironmentConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ShortTermCapacity != 0 {
		out.ShortTermCapacity = override.ShortTermCapacity
	}
	if override.ShortTermEfficiency != 0 {
		out.ShortTermEfficiency = override.ShortTermEfficiency
	}
	if override.LongTermMaxPower != 0 {
		out.LongTermMaxPower = override.LongTermMaxPower
	}
	if override.LongTermEfficiency != 0 {
		out.LongTermEfficiency = override.LongTermEfficiency
	}
	if override.LossLoadPenalty != 0 {
		out.LossLoadPenalty = override.LossLoadPenalty
	}
	if override.LongTermTariff != 0 {
		out.LongTermTariff = override.LongTermTariff
	}
	out.SeasonalSignal = base.SeasonalSignal || override.SeasonalSignal
	out.ProductionForecast = base.ProductionForecast || override.ProductionForecast
	return out
}
