package scenario

// TargetRange is a Clean Power 2030 capacity target band in GW.
type TargetRange struct {
	LowGW  float64
	HighGW float64
}

// Targets holds the CP30 capacity target ranges used to scale the weather
// template up to 2030 dimensions.
type Targets struct {
	OffshoreWind    TargetRange
	OnshoreWind     TargetRange
	Solar           TargetRange
	Batteries       TargetRange
	Interconnectors TargetRange
	Nuclear         TargetRange
}

// CP30 returns the Clean Power 2030 Action Plan target ranges.
// Source: UK Gov Clean Power 2030 Action Plan.
func CP30() Targets {
	return Targets{
		OffshoreWind:    TargetRange{LowGW: 43, HighGW: 50},
		OnshoreWind:     TargetRange{LowGW: 27, HighGW: 29},
		Solar:           TargetRange{LowGW: 45, HighGW: 47},
		Batteries:       TargetRange{LowGW: 23, HighGW: 27},
		Interconnectors: TargetRange{LowGW: 12, HighGW: 14},
		Nuclear:         TargetRange{LowGW: 3, HighGW: 4},
	}
}
