package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridstress/internal/model"
	"gridstress/internal/sim"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", `
fleet:
  batteries:
    - name: grid-scale
      power_mw: 25000
      capacity_mwh: 100000
  reserves:
    - name: hydrogen
      power_mw: 5000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	b := cfg.Fleet.Batteries[0]
	assert.Equal(t, 0.9, b.RoundTripEfficiency)
	require.NotNil(t, b.InitialSOCFraction)
	assert.Equal(t, 0.5, *b.InitialSOCFraction)
	assert.Equal(t, "Holistic Transition", cfg.Scenario.FESPathway)
	assert.Equal(t, 2030, cfg.Scenario.TargetYear)
	assert.Equal(t, 5, cfg.Scenario.WindowDays)

	params := b.ToParams()
	assert.InDelta(t, 50000, params.InitialSOCMWh, 1e-9)
}

func TestLoad_ExplicitEmptyBatteryStaysEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", `
fleet:
  batteries:
    - name: drained
      power_mw: 10
      capacity_mwh: 100
      initial_soc_mwh: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	params := cfg.Fleet.Batteries[0].ToParams()
	assert.Zero(t, params.InitialSOCMWh, "explicit 0 must not fall back to the 50%% default")
}

func TestApplyDefaults_DistinguishesZeroSOCFromOmitted(t *testing.T) {
	zero := 0.0

	explicit := &Config{Fleet: FleetConfig{Batteries: []BatteryConfig{
		{PowerMW: 10, CapacityMWh: 100, InitialSOCMWh: &zero},
	}}}
	explicit.ApplyDefaults()
	assert.Zero(t, explicit.Fleet.Batteries[0].ToParams().InitialSOCMWh)

	fraction := &Config{Fleet: FleetConfig{Batteries: []BatteryConfig{
		{PowerMW: 10, CapacityMWh: 100, InitialSOCFraction: &zero},
	}}}
	fraction.ApplyDefaults()
	assert.Zero(t, fraction.Fleet.Batteries[0].ToParams().InitialSOCMWh)

	omitted := &Config{Fleet: FleetConfig{Batteries: []BatteryConfig{
		{PowerMW: 10, CapacityMWh: 100},
	}}}
	omitted.ApplyDefaults()
	assert.InDelta(t, 50, omitted.Fleet.Batteries[0].ToParams().InitialSOCMWh, 1e-9)
}

func TestLoad_FleetFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fleet.yaml", `
fleet:
  batteries:
    - name: base
      power_mw: 1000
      capacity_mwh: 4000
  reserves:
    - name: base-reserve
      power_mw: 500
`)
	path := writeFile(t, dir, "scenario.yaml", `
fleet_file: fleet.yaml
fleet:
  reserves:
    - name: hydrogen
      power_mw: 5000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Battery list from the fleet file survives; reserves are replaced.
	require.Len(t, cfg.Fleet.Batteries, 1)
	assert.Equal(t, "base", cfg.Fleet.Batteries[0].Name)
	require.Len(t, cfg.Fleet.Reserves, 1)
	assert.Equal(t, "hydrogen", cfg.Fleet.Reserves[0].Name)
}

func TestLoad_RejectsInvalidFleet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", `
fleet:
  batteries:
    - power_mw: -5
      capacity_mwh: 10
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power_mw")
}

func TestValidate_Idempotent(t *testing.T) {
	cfg := &Config{Fleet: FleetConfig{
		Batteries: []BatteryConfig{{PowerMW: 10, CapacityMWh: 40, RoundTripEfficiency: 0.9}},
	}}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.Validate())
}

func TestToSim_DispatchOrder(t *testing.T) {
	f := FleetConfig{
		DispatchOrder: []string{"reserves", "batteries"},
		Batteries:     []BatteryConfig{{PowerMW: 1, CapacityMWh: 2, RoundTripEfficiency: 1}},
	}
	got := f.ToSim()
	require.Equal(t, []sim.DispatchClass{sim.ClassReserves, sim.ClassBatteries}, got.DispatchOrder)
	assert.Equal(t, model.EfficiencySide(""), got.Batteries[0].EfficiencySide)
}
