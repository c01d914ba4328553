package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gridstress/internal/model"
	"gridstress/internal/sim"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	// Optional: load the fleet from a separate YAML (e.g. examples/fleets/*.yaml).
	// If both FleetFile and Fleet are provided, Fleet overrides FleetFile.
	FleetFile string         `yaml:"fleet_file" json:"fleet_file,omitempty"`
	Fleet     FleetConfig    `yaml:"fleet" json:"fleet"`
	Scenario  ScenarioConfig `yaml:"scenario" json:"scenario,omitempty"`
}

// FleetConfig declares the dispatchable fleet and the merit order.
type FleetConfig struct {
	// DispatchOrder is the explicit merit order for dispatchable classes.
	// Empty means [batteries, reserves].
	DispatchOrder []string        `yaml:"dispatch_order" json:"dispatch_order,omitempty"`
	Batteries     []BatteryConfig `yaml:"batteries" json:"batteries,omitempty"`
	Reserves      []ReserveConfig `yaml:"reserves" json:"reserves,omitempty"`
}

type BatteryConfig struct {
	Name        string  `yaml:"name" json:"name,omitempty"`
	PowerMW     float64 `yaml:"power_mw" json:"power_mw"`
	CapacityMWh float64 `yaml:"capacity_mwh" json:"capacity_mwh"`
	// InitialSOCMWh and InitialSOCFraction are pointers so an explicit 0
	// (a pool that starts empty) is distinct from an omitted value. When both
	// are omitted the pool starts 50% full, matching the "start the year half
	// charged" assumption of the source model.
	InitialSOCMWh      *float64 `yaml:"initial_soc_mwh" json:"initial_soc_mwh,omitempty"`
	InitialSOCFraction *float64 `yaml:"initial_soc_fraction" json:"initial_soc_fraction,omitempty"`
	// RoundTripEfficiency defaults to 0.9 when zero.
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency" json:"round_trip_efficiency,omitempty"`
	// EfficiencySide: charge (default), discharge, or split.
	EfficiencySide string `yaml:"efficiency_side" json:"efficiency_side,omitempty"`
}

type ReserveConfig struct {
	Name    string  `yaml:"name" json:"name,omitempty"`
	PowerMW float64 `yaml:"power_mw" json:"power_mw"`
}

// ScenarioConfig drives the data-preparation pipeline (CLI `run`): which FES
// pathway to scale demand to and how long the stress window is.
type ScenarioConfig struct {
	FESPathway string `yaml:"fes_pathway" json:"fes_pathway,omitempty"` // default "Holistic Transition"
	TargetYear int    `yaml:"target_year" json:"target_year,omitempty"` // default 2030
	// OffshoreWindGW overrides the CP30 high-ambition offshore target.
	OffshoreWindGW float64 `yaml:"offshore_wind_gw" json:"offshore_wind_gw,omitempty"`
	WindowDays     int     `yaml:"window_days" json:"window_days,omitempty"` // default 5
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
	if c.FleetFile != "" {
		fleetPath := c.FleetFile
		if !filepath.IsAbs(fleetPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, falling back to cwd-relative if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), fleetPath)
			if _, err := os.Stat(cand); err == nil {
				fleetPath = cand
			}
		}
		loaded, err := loadFleetFile(fleetPath)
		if err != nil {
			return nil, err
		}
		c.Fleet = MergeFleet(loaded, c.Fleet)
	}
	return &c, nil
}

// ApplyDefaults fills script-level defaults; it is idempotent.
func (c *Config) ApplyDefaults() {
	if c.Scenario.FESPathway == "" {
		c.Scenario.FESPathway = "Holistic Transition"
	}
	if c.Scenario.TargetYear == 0 {
		c.Scenario.TargetYear = 2030
	}
	if c.Scenario.WindowDays == 0 {
		c.Scenario.WindowDays = 5
	}
	for i := range c.Fleet.Batteries {
		b := &c.Fleet.Batteries[i]
		if b.RoundTripEfficiency == 0 {
			b.RoundTripEfficiency = 0.9
		}
		if b.InitialSOCMWh == nil && b.InitialSOCFraction == nil {
			half := 0.5
			b.InitialSOCFraction = &half
		}
	}
}

// Validate builds the sim fleet and reuses the engine's own validation, so
// config and engine can never disagree about what is legal.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	fleet := c.Fleet.ToSim()
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("fleet config invalid: %w", err)
	}
	if c.Scenario.WindowDays < 0 {
		return model.Invalid("scenario.window_days", "must be >= 0, got %d", c.Scenario.WindowDays)
	}
	return nil
}

// ToSim converts the YAML shape into the engine's fleet.
func (f FleetConfig) ToSim() sim.Fleet {
	out := sim.Fleet{}
	for _, class := range f.DispatchOrder {
		out.DispatchOrder = append(out.DispatchOrder, sim.DispatchClass(class))
	}
	for _, b := range f.Batteries {
		out.Batteries = append(out.Batteries, b.ToParams())
	}
	for _, r := range f.Reserves {
		out.Reserves = append(out.Reserves, model.ReserveParams{Name: r.Name, PowerMW: r.PowerMW})
	}
	return out
}

func (b BatteryConfig) ToParams() model.BatteryParams {
	soc := 0.0
	switch {
	case b.InitialSOCMWh != nil:
		soc = *b.InitialSOCMWh
	case b.InitialSOCFraction != nil:
		soc = *b.InitialSOCFraction * b.CapacityMWh
	}
	return model.BatteryParams{
		Name:                b.Name,
		PowerMW:             b.PowerMW,
		CapacityMWh:         b.CapacityMWh,
		InitialSOCMWh:       soc,
		RoundTripEfficiency: b.RoundTripEfficiency,
		EfficiencySide:      model.EfficiencySide(b.EfficiencySide),
	}
}

type fleetFileWrapper struct {
	Fleet FleetConfig `yaml:"fleet"`
}

func loadFleetFile(path string) (FleetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FleetConfig{}, err
	}
	var w fleetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return FleetConfig{}, err
	}
	return w.Fleet, nil
}

// MergeFleet overlays non-empty sections from override onto base. Pool lists
// replace wholesale rather than element-wise: a variation that touches any
// battery restates the whole battery list.
func MergeFleet(base, override FleetConfig) FleetConfig {
	out := base
	if len(override.DispatchOrder) > 0 {
		out.DispatchOrder = override.DispatchOrder
	}
	if len(override.Batteries) > 0 {
		out.Batteries = override.Batteries
	}
	if len(override.Reserves) > 0 {
		out.Reserves = override.Reserves
	}
	return out
}
