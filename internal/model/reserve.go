package model

// ReserveParams defines one energy-unconstrained dispatchable pool:
// gas/CCS/hydrogen "last resort" capacity, or aggressive DSR treated as
// negative load. Only the power rating binds; there is no state of charge.
type ReserveParams struct {
	Name    string
	PowerMW float64
}

func (p ReserveParams) Validate(field string) error {
	if p.PowerMW < 0 {
		return Invalid(field+".power_mw", "must be >= 0, got %v", p.PowerMW)
	}
	return nil
}

// ReservePool is stateless; it exists so the resolver treats both resource
// kinds as pools exercised in configuration order.
type ReservePool struct {
	Params ReserveParams
}

func NewReservePool(params ReserveParams) *ReservePool {
	return &ReservePool{Params: params}
}

// Dispatch supplies up to requestMW, bounded only by the power rating.
// Reserve pools never absorb surplus.
func (r *ReservePool) Dispatch(requestMW float64) float64 {
	if requestMW <= 0 {
		return 0
	}
	if requestMW > r.Params.PowerMW {
		return r.Params.PowerMW
	}
	return requestMW
}
