package model

// Phase is a human-friendly battery operating mode for a timestep.
// Keep these values stable; they are written to the CSV ledger.
type Phase string

const (
	PhaseCharging    Phase = "CHARGING"
	PhaseIdle        Phase = "IDLE"
	PhaseDischarging Phase = "DISCHARGING"
)

// PhaseFromPowerMW maps the signed fleet dispatch (discharge positive,
// charge negative) to its phase label.
func PhaseFromPowerMW(powerMW float64) Phase {
	switch {
	case powerMW < 0:
		return PhaseCharging
	case powerMW > 0:
		return PhaseDischarging
	default:
		return PhaseIdle
	}
}
