package sim

import "gridstress/internal/model"

// fleetState is the mutable pool state for one run. Pools are freshly
// constructed from params so two runs over the same Fleet never share state.
type fleetState struct {
	order     []DispatchClass
	batteries []*model.BatteryPool
	reserves  []*model.ReservePool
}

func newFleetState(f Fleet) *fleetState {
	s := &fleetState{order: f.DispatchOrder}
	for _, p := range f.Batteries {
		s.batteries = append(s.batteries, model.NewBatteryPool(p))
	}
	for _, p := range f.Reserves {
		s.reserves = append(s.reserves, model.NewReservePool(p))
	}
	return s
}

// resolveShortfall walks the merit order for a positive net position.
// Each pool contributes up to min(rating, stored energy, remaining need);
// whatever survives every pool is the interval's unmet deficit.
func (s *fleetState) resolveShortfall(netMW, hours float64) (batteryMW, reserveMW, deficitMW float64) {
	remaining := netMW
	for _, class := range s.order {
		switch class {
		case ClassBatteries:
			for _, b := range s.batteries {
				p := b.Discharge(remaining, hours)
				batteryMW += p
				remaining -= p
			}
		case ClassReserves:
			for _, r := range s.reserves {
				p := r.Dispatch(remaining)
				reserveMW += p
				remaining -= p
			}
		}
	}
	return batteryMW, reserveMW, remaining
}

// absorbSurplus charges batteries (in configured order) from a surplus.
// Reserve pools never absorb; the remainder is curtailed renewable output.
// chargeMW is the grid-side draw, before efficiency loss.
func (s *fleetState) absorbSurplus(surplusMW, hours float64) (chargeMW, curtailedMW float64) {
	remaining := surplusMW
	for _, b := range s.batteries {
		g := b.Charge(remaining, hours)
		chargeMW += g
		remaining -= g
	}
	return chargeMW, remaining
}

// anyExhausted reports whether some battery pool is drained.
func (s *fleetState) anyExhausted() bool {
	for _, b := range s.batteries {
		if b.Empty() {
			return true
		}
	}
	return false
}

// socSnapshot copies the per-pool state of charge, in configuration order.
func (s *fleetState) socSnapshot() []float64 {
	out := make([]float64, len(s.batteries))
	for i, b := range s.batteries {
		out[i] = b.SOCMWh
	}
	return out
}

func (s *fleetState) totalSOC() float64 {
	total := 0.0
	for _, b := range s.batteries {
		total += b.SOCMWh
	}
	return total
}
