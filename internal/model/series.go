package model

// HalfHour is the settlement-period length used by the NESO datasets.
const HalfHour = 0.5

// SeriesPair bundles the aligned demand and renewable series for one
// simulation window. Values are average power (MW) over the interval;
// renewables are all must-run generation already netted together
// (wind + solar + nuclear baseload).
type SeriesPair struct {
	DemandMW    []float64
	RenewableMW []float64

	// IntervalHours is the interval length in hours. Zero defaults to HalfHour.
	IntervalHours float64
}

// Hours returns the effective interval length.
func (s SeriesPair) Hours() float64 {
	if s.IntervalHours == 0 {
		return HalfHour
	}
	return s.IntervalHours
}

// Len returns the window length T.
func (s SeriesPair) Len() int { return len(s.DemandMW) }

func (s SeriesPair) Validate() error {
	if len(s.DemandMW) == 0 {
		return Invalid("demand_series", "window is empty")
	}
	if len(s.DemandMW) != len(s.RenewableMW) {
		return Invalid("renewable_series", "length %d does not match demand length %d",
			len(s.RenewableMW), len(s.DemandMW))
	}
	if s.IntervalHours < 0 {
		return Invalid("interval_hours", "must be >= 0, got %v", s.IntervalHours)
	}
	for i, v := range s.DemandMW {
		if v < 0 {
			return Invalid("demand_series", "negative value %v at interval %d", v, i)
		}
	}
	for i, v := range s.RenewableMW {
		if v < 0 {
			return Invalid("renewable_series", "negative value %v at interval %d", v, i)
		}
	}
	return nil
}
