package models

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string      `json:"id,omitempty"`
	Status  string      `json:"status"`
	Summary Summary     `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// Summary contains aggregated simulation results
type Summary struct {
	TotalIntervals      int       `json:"total_intervals"`
	IntervalHours       float64   `json:"interval_hours"`
	TotalUnmetMWh       float64   `json:"total_unmet_mwh"`
	UnmetIntervals      int       `json:"unmet_intervals"`
	PeakDeficitMW       float64   `json:"peak_deficit_mw"`
	PeakDeficitIndex    int       `json:"peak_deficit_index"`
	ExhaustionIndex     int       `json:"exhaustion_index"`
	CurtailedMWh        float64   `json:"curtailed_mwh"`
	EnergyDischargedMWh float64   `json:"energy_discharged_mwh"`
	EnergyChargedMWh    float64   `json:"energy_charged_mwh"`
	ReserveEnergyMWh    float64   `json:"reserve_energy_mwh"`
	FinalSOCMWh         []float64 `json:"final_soc_mwh"`
}

// LedgerRow represents one interval in the dispatch ledger
type LedgerRow struct {
	Index               int       `json:"index"`
	DemandMW            float64   `json:"demand_mw"`
	RenewableMW         float64   `json:"renewable_mw"`
	NetBeforeDispatchMW float64   `json:"net_mw"`
	BatteryDispatchMW   float64   `json:"battery_mw"`
	BatterySOCMWh       float64   `json:"battery_soc_mwh"`
	PoolSOCMWh          []float64 `json:"pool_soc_mwh,omitempty"`
	ReserveDispatchMW   float64   `json:"reserve_mw"`
	UnmetDeficitMW      float64   `json:"unmet_mw"`
	CurtailedMW         float64   `json:"curtailed_mw"`
	Phase               string    `json:"phase"` // "CHARGING", "DISCHARGING", "IDLE"
}

// CompareResponse represents the response from a fleet comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one fleet variation. A variation
// whose fleet fails validation carries Error instead of a summary, so
// callers can tell a rejected variation from one never requested.
type ComparisonResult struct {
	Name    string       `json:"name"`
	Summary *Summary     `json:"summary,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// WindowsResponse represents the response from a window ranking
type WindowsResponse struct {
	Windows []WindowInfo `json:"windows"`
	Stats   NetStatsInfo `json:"stats"`
}

// WindowInfo describes one candidate stress window
type WindowInfo struct {
	Rank       int     `json:"rank"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	DeficitMWh float64 `json:"deficit_mwh"`
}

// NetStatsInfo summarises the submitted net-demand series
type NetStatsInfo struct {
	MeanMW     float64 `json:"mean_mw"`
	MinMW      float64 `json:"min_mw"`
	MaxMW      float64 `json:"max_mw"`
	P05MW      float64 `json:"p05_mw"`
	P95MW      float64 `json:"p95_mw"`
	DeficitMWh float64 `json:"deficit_mwh"`
	SurplusMWh float64 `json:"surplus_mwh"`
}

// TargetBand is a low/high capacity range in GW
type TargetBand struct {
	LowGW  float64 `json:"low_gw"`
	HighGW float64 `json:"high_gw"`
}

// TargetsResponse lists the 2030 capacity build-out ranges
type TargetsResponse struct {
	OffshoreWind    TargetBand `json:"offshore_wind"`
	OnshoreWind     TargetBand `json:"onshore_wind"`
	Solar           TargetBand `json:"solar"`
	Batteries       TargetBand `json:"batteries"`
	Interconnectors TargetBand `json:"interconnectors"`
	Nuclear         TargetBand `json:"nuclear"`
}

// FleetInfo represents information about a fleet preset
type FleetInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	File  string     `json:"file"`
	Specs FleetSpecs `json:"specs"`
}

// FleetSpecs contains fleet totals
type FleetSpecs struct {
	BatteryPowerMW     float64 `json:"battery_power_mw"`
	BatteryCapacityMWh float64 `json:"battery_capacity_mwh"`
	ReservePowerMW     float64 `json:"reserve_power_mw"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
