package sim

import (
	"fmt"

	"gridstress/internal/model"
)

// Engine runs the dispatch simulation: one deterministic linear pass over the
// window, netting renewables against demand and resolving the remainder
// through the merit order. No randomness, no wall clock, no lookahead.
type Engine struct{}

func New() *Engine { return &Engine{} }

// NetBeforeDispatchMW is the balance position before any dispatchable
// resource acts. Positive = shortfall, negative = surplus available for
// charging or curtailment.
func NetBeforeDispatchMW(demandMW, renewableMW float64) float64 {
	return demandMW - renewableMW
}

// Run simulates the window and returns the ledger plus aggregates.
// Validation is fail-fast: no dispatch step runs on an invalid input, and a
// *model.ValidationError names the offending field. Degenerate-but-valid
// configuration (zero-capacity pools, an empty fleet) is not an error; those
// resources simply contribute nothing.
func (e *Engine) Run(series model.SeriesPair, fleet Fleet) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}
	fleet = fleet.normalized()
	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}

	hours := series.Hours()
	state := newFleetState(fleet)
	res := &Result{
		Ledger:           make([]Record, 0, series.Len()),
		IntervalHours:    hours,
		PeakDeficitIndex: -1,
		ExhaustionIndex:  -1,
	}

	for t := 0; t < series.Len(); t++ {
		demand := series.DemandMW[t]
		renewable := series.RenewableMW[t]
		net := NetBeforeDispatchMW(demand, renewable)

		rec := Record{
			Index:               t,
			DemandMW:            demand,
			RenewableMW:         renewable,
			NetBeforeDispatchMW: net,
		}

		switch {
		case net > 0:
			battery, reserve, deficit := state.resolveShortfall(net, hours)
			rec.BatteryDispatchMW = battery
			rec.ReserveDispatchMW = reserve
			rec.UnmetDeficitMW = deficit
			if res.ExhaustionIndex < 0 && state.anyExhausted() {
				res.ExhaustionIndex = t
			}
		case net < 0:
			charge, curtailed := state.absorbSurplus(-net, hours)
			rec.BatteryDispatchMW = -charge
			rec.CurtailedMW = curtailed
		}

		rec.PoolSOCMWh = state.socSnapshot()
		rec.BatterySOCMWh = state.totalSOC()
		rec.Phase = model.PhaseFromPowerMW(rec.BatteryDispatchMW)

		res.TotalUnmetMWh += rec.UnmetDeficitMW * hours
		res.CurtailedMWh += rec.CurtailedMW * hours
		res.ReserveEnergyMWh += rec.ReserveDispatchMW * hours
		if rec.BatteryDispatchMW > 0 {
			res.EnergyDischargedMWh += rec.BatteryDispatchMW * hours
		} else {
			res.EnergyChargedMWh += -rec.BatteryDispatchMW * hours
		}
		if rec.UnmetDeficitMW > res.PeakDeficitMW {
			res.PeakDeficitMW = rec.UnmetDeficitMW
			res.PeakDeficitIndex = t
		}

		res.Ledger = append(res.Ledger, rec)
	}

	res.FinalSOCMWh = state.socSnapshot()
	return res, nil
}
