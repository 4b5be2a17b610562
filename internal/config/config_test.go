package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
data:
  synthetic: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15.0, cfg.Environment.ShortTermCapacity)
	assert.Equal(t, 0.9, cfg.Environment.ShortTermEfficiency)
	assert.Equal(t, 1.1, cfg.Environment.LongTermMaxPower)
	assert.Equal(t, 0.65, cfg.Environment.LongTermEfficiency)
	assert.Equal(t, 2.0, cfg.Environment.LossLoadPenalty)
	assert.Equal(t, 0.1, cfg.Environment.LongTermTariff)
	assert.Equal(t, 12.0, cfg.Data.InstalledPVKWp)
	assert.Equal(t, 2.1, cfg.Data.PeakDemandKW)
	assert.Equal(t, "hold", cfg.Policy.Name)
}

func TestLoadEnvironmentFileWithOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference.yaml", `
environment:
  name: reference
  short_term_capacity_kwh: 15.0
  short_term_efficiency: 0.9
  seasonal_signal: true
`)
	path := writeFile(t, dir, "config.yaml", `
environment_file: reference.yaml
environment:
  short_term_capacity_kwh: 30.0
data:
  synthetic: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Override wins, the rest comes from the environment file.
	assert.Equal(t, 30.0, cfg.Environment.ShortTermCapacity)
	assert.Equal(t, 0.9, cfg.Environment.ShortTermEfficiency)
	assert.Equal(t, "reference", cfg.Environment.Name)
	assert.True(t, cfg.Environment.SeasonalSignal)
}

func TestLoadRejectsForecastWithoutSeasonal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
environment:
  production_forecast: true
data:
  synthetic: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadEfficiency(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
environment:
  short_term_efficiency: 1.5
data:
  synthetic: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresDataFilesWithoutSynthetic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
environment:
  seasonal_signal: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBuildDatasetSynthetic(t *testing.T) {
	cfg := Config{Data: DataConfig{Synthetic: true, SyntheticLength: 200, Seed: 5}}
	cfg.ApplyDefaults()

	d, err := cfg.Data.BuildDataset()
	require.NoError(t, err)
	require.NoError(t, d.Validate())
	assert.Equal(t, 200, d.Train.Len())
}

func TestMergeEnvironment(t *testing.T) {
	base := EnvironmentConfig{
		Name:                "base",
		ShortTermCapacity:   15,
		ShortTermEfficiency: 0.9,
		SeasonalSignal:      true,
	}
	override := EnvironmentConfig{ShortTermCapacity: 20}

	out := MergeEnvironment(base, override)
	assert.Equal(t, 20.0, out.ShortTermCapacity)
	assert.Equal(t, 0.9, out.ShortTermEfficiency)
	assert.Equal(t, "base", out.Name)
	assert.True(t, out.SeasonalSignal)
}
