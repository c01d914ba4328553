package model

import (
	"fmt"
	"math"
)

// EfficiencySide selects where round-trip losses are applied.
// The NESO source model applies the full loss on charge, so that is the
// default; discharge-side and an even split are supported because the
// placement is a modelling convention, not a physical fact.
type EfficiencySide string

const (
	EfficiencyOnCharge    EfficiencySide = "charge"
	EfficiencyOnDischarge EfficiencySide = "discharge"
	EfficiencySplit       EfficiencySide = "split"
)

// BatteryParams defines one battery pool.
// Units:
// - PowerMW: max charge/discharge power (grid side)
// - CapacityMWh: usable energy capacity
// - InitialSOCMWh: stored energy at t=0, in [0, CapacityMWh]
// - RoundTripEfficiency: fraction in (0, 1]
type BatteryParams struct {
	Name                string
	PowerMW             float64
	CapacityMWh         float64
	InitialSOCMWh       float64
	RoundTripEfficiency float64
	EfficiencySide      EfficiencySide
}

// Validate checks the params; field prefixes the error field name,
// e.g. "batteries[0]".
func (p BatteryParams) Validate(field string) error {
	if p.PowerMW < 0 {
		return Invalid(field+".power_mw", "must be >= 0, got %v", p.PowerMW)
	}
	if p.CapacityMWh < 0 {
		return Invalid(field+".capacity_mwh", "must be >= 0, got %v", p.CapacityMWh)
	}
	if p.InitialSOCMWh < 0 || p.InitialSOCMWh > p.CapacityMWh {
		return Invalid(field+".initial_soc_mwh", "must be in [0, %v], got %v", p.CapacityMWh, p.InitialSOCMWh)
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return Invalid(field+".round_trip_efficiency", "must be in (0, 1], got %v", p.RoundTripEfficiency)
	}
	switch p.EfficiencySide {
	case "", EfficiencyOnCharge, EfficiencyOnDischarge, EfficiencySplit:
	default:
		return Invalid(field+".efficiency_side", "unknown value %q", p.EfficiencySide)
	}
	return nil
}

// chargeEfficiency is the fraction of grid-side energy that ends up stored.
func (p BatteryParams) chargeEfficiency() float64 {
	switch p.EfficiencySide {
	case EfficiencyOnDischarge:
		return 1
	case EfficiencySplit:
		return math.Sqrt(p.RoundTripEfficiency)
	default:
		return p.RoundTripEfficiency
	}
}

// dischargeEfficiency is the fraction of stored energy delivered to the grid.
func (p BatteryParams) dischargeEfficiency() float64 {
	switch p.EfficiencySide {
	case EfficiencyOnDischarge:
		return p.RoundTripEfficiency
	case EfficiencySplit:
		return math.Sqrt(p.RoundTripEfficiency)
	default:
		return 1
	}
}

// BatteryPool bundles params with mutable state of charge. A pool is valid
// for exactly one engine run; the engine constructs fresh pools from params
// so caller-held configuration is never mutated.
type BatteryPool struct {
	Params BatteryParams
	SOCMWh float64
}

func NewBatteryPool(params BatteryParams) *BatteryPool {
	return &BatteryPool{Params: params, SOCMWh: params.InitialSOCMWh}
}

// socEpsilonMWh absorbs float noise when deciding whether a pool is drained.
const socEpsilonMWh = 1e-9

// Empty reports whether the pool is drained. Zero-capacity pools are
// degenerate (they never contribute) and are not counted as exhausted.
func (b *BatteryPool) Empty() bool {
	return b.Params.CapacityMWh > 0 && b.SOCMWh <= socEpsilonMWh
}

// Discharge delivers up to requestMW to the grid for an interval of the given
// length, bounded by the power rating and the stored energy. It returns the
// delivered power (MW) and decreases the state of charge accordingly.
func (b *BatteryPool) Discharge(requestMW, hours float64) float64 {
	if requestMW <= 0 || hours <= 0 {
		return 0
	}
	effD := b.Params.dischargeEfficiency()
	p := math.Min(requestMW, b.Params.PowerMW)
	// Stored energy bounds the deliverable power: withdrawn = p*h/effD <= SOC.
	if limit := b.SOCMWh * effD / hours; p > limit {
		p = limit
	}
	if p <= 0 {
		return 0
	}
	b.SOCMWh -= p * hours / effD
	if b.SOCMWh < 0 {
		b.SOCMWh = 0
	}
	return p
}

// Charge absorbs up to offerMW of surplus from the grid, bounded by the power
// rating and the remaining headroom. It returns the grid-side draw (MW) and
// increases the state of charge by the stored fraction.
func (b *BatteryPool) Charge(offerMW, hours float64) float64 {
	if offerMW <= 0 || hours <= 0 {
		return 0
	}
	effC := b.Params.chargeEfficiency()
	g := math.Min(offerMW, b.Params.PowerMW)
	// Headroom bounds the grid-side draw: g*h*effC <= Capacity - SOC.
	if limit := (b.Params.CapacityMWh - b.SOCMWh) / (effC * hours); g > limit {
		g = limit
	}
	if g <= 0 {
		return 0
	}
	b.SOCMWh += g * hours * effC
	if b.SOCMWh > b.Params.CapacityMWh {
		b.SOCMWh = b.Params.CapacityMWh
	}
	return g
}

func (p BatteryParams) String() string {
	return fmt.Sprintf("%s{%.0fMW/%.0fMWh eta=%.2f}", p.Name, p.PowerMW, p.CapacityMWh, p.RoundTripEfficiency)
}
