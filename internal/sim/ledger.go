package sim

import "gridstress/internal/model"

// Record is one row of per-interval output: the balance position, what each
// resource class contributed, and the state of charge after the update.
// This is the primary artifact for "what happened" in a run.
type Record struct {
	Index int

	DemandMW            float64
	RenewableMW         float64
	NetBeforeDispatchMW float64

	// BatteryDispatchMW is the fleet total, grid view: discharge positive,
	// charge negative (energy drawn from the grid, before efficiency loss).
	BatteryDispatchMW float64
	BatterySOCMWh     float64
	PoolSOCMWh        []float64

	ReserveDispatchMW float64
	UnmetDeficitMW    float64
	CurtailedMW       float64

	Phase model.Phase
}

// Result is the full ledger plus derived aggregates. It is owned by the
// caller on return and never mutated by the engine afterwards.
type Result struct {
	Ledger        []Record
	IntervalHours float64

	TotalUnmetMWh    float64
	PeakDeficitMW    float64
	PeakDeficitIndex int // -1 when the window has no deficit

	// ExhaustionIndex is the first interval at which any battery pool's state
	// of charge reached zero during a shortfall; -1 when it never happened.
	// Exhaustion is not terminal: pools can recharge from later surplus.
	ExhaustionIndex int

	CurtailedMWh        float64
	EnergyDischargedMWh float64
	EnergyChargedMWh    float64
	ReserveEnergyMWh    float64

	// FinalSOCMWh holds each battery pool's state of charge at end of run,
	// in configuration order.
	FinalSOCMWh []float64
}

// UnmetIntervals counts intervals with a residual deficit.
func (r *Result) UnmetIntervals() int {
	n := 0
	for _, rec := range r.Ledger {
		if rec.UnmetDeficitMW > 0 {
			n++
		}
	}
	return n
}
