package scenario

import (
	"fmt"
	"time"

	"gridstress/internal/data"
	"gridstress/internal/model"
)

// Profile is a weather template scaled to 2030 dimensions: the 2025 shapes
// stretched to the projected peak demand and the targeted generation
// capacity. All series share the record index of the source template.
type Profile struct {
	Times []time.Time

	DemandMW  []float64
	WindMW    []float64
	SolarMW   []float64
	NuclearMW []float64

	// RenewableMW is the must-run stack (wind + solar + nuclear baseload),
	// the quantity netted against demand before any dispatchable pool acts.
	RenewableMW []float64
	// NetMW is demand minus must-run: positive needs flexibility, negative
	// is surplus available for charging or curtailment.
	NetMW []float64
}

// Build2030 scales the weather template: demand keeps its 2025 shape but is
// stretched so its peak hits peakDemandMW; wind and solar apply the template
// load factors to the high-ambition target capacities; nuclear runs flat.
func Build2030(weather []data.WeatherRecord, targets Targets, peakDemandMW float64) (*Profile, error) {
	if len(weather) == 0 {
		return nil, fmt.Errorf("empty weather template")
	}
	if peakDemandMW <= 0 {
		return nil, fmt.Errorf("peak demand must be > 0, got %v", peakDemandMW)
	}

	peakTemplate := 0.0
	for _, w := range weather {
		if w.DemandMW > peakTemplate {
			peakTemplate = w.DemandMW
		}
	}
	if peakTemplate <= 0 {
		return nil, fmt.Errorf("weather template has no positive demand")
	}
	scale := peakDemandMW / peakTemplate

	windCapMW := (targets.OffshoreWind.HighGW + targets.OnshoreWind.HighGW) * 1000
	solarCapMW := targets.Solar.HighGW * 1000
	nuclearMW := targets.Nuclear.HighGW * 1000

	n := len(weather)
	p := &Profile{
		Times:       make([]time.Time, n),
		DemandMW:    make([]float64, n),
		WindMW:      make([]float64, n),
		SolarMW:     make([]float64, n),
		NuclearMW:   make([]float64, n),
		RenewableMW: make([]float64, n),
		NetMW:       make([]float64, n),
	}
	for i, w := range weather {
		p.Times[i] = w.Time
		p.DemandMW[i] = w.DemandMW * scale
		p.WindMW[i] = w.WindLF * windCapMW
		p.SolarMW[i] = w.SolarLF * solarCapMW
		p.NuclearMW[i] = nuclearMW
		p.RenewableMW[i] = p.WindMW[i] + p.SolarMW[i] + p.NuclearMW[i]
		p.NetMW[i] = p.DemandMW[i] - p.RenewableMW[i]
	}
	return p, nil
}

// Len returns the number of half-hourly intervals.
func (p *Profile) Len() int { return len(p.DemandMW) }

// IntervalHours is the template resolution: half-hourly settlement periods.
func (p *Profile) IntervalHours() float64 { return model.HalfHour }

// Series extracts the [start, end) slice as engine input. Slices are copied
// so a later run can never alias profile storage.
func (p *Profile) Series(start, end int) (model.SeriesPair, error) {
	if start < 0 || end > p.Len() || start >= end {
		return model.SeriesPair{}, fmt.Errorf("window [%d, %d) out of range [0, %d)", start, end, p.Len())
	}
	out := model.SeriesPair{
		DemandMW:      append([]float64(nil), p.DemandMW[start:end]...),
		RenewableMW:   append([]float64(nil), p.RenewableMW[start:end]...),
		IntervalHours: model.HalfHour,
	}
	return out, nil
}
