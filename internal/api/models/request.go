package models

import "gridstress/internal/config"

// SeriesInput carries the half-hourly (or otherwise) demand and renewable
// series for a simulation request.
type SeriesInput struct {
	DemandMW      []float64 `json:"demand_mw" binding:"required"`
	RenewableMW   []float64 `json:"renewable_mw" binding:"required"`
	IntervalHours float64   `json:"interval_hours,omitempty"` // default: 0.5
}

// SimulateRequest represents the request body for running a dispatch simulation
type SimulateRequest struct {
	Series  SeriesInput        `json:"series" binding:"required"`
	Fleet   config.FleetConfig `json:"fleet"`
	Options SimulateOptions    `json:"options,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	LimitIntervals int  `json:"limit_intervals,omitempty"` // 0 = all
	IncludeLedger  bool `json:"include_ledger,omitempty"`  // default: false
}

// CompareRequest represents a request to run one window against several fleets
type CompareRequest struct {
	Series     SeriesInput        `json:"series" binding:"required"`
	BaseFleet  config.FleetConfig `json:"base_fleet"`
	Variations []FleetVariation   `json:"variations" binding:"required"`
}

// FleetVariation defines a fleet variation to test
type FleetVariation struct {
	Name  string             `json:"name" binding:"required"`
	Fleet config.FleetConfig `json:"fleet"`
}

// WindowsRequest represents a request to rank stress windows in a net series
type WindowsRequest struct {
	NetMW         []float64 `json:"net_mw" binding:"required"`
	IntervalHours float64   `json:"interval_hours,omitempty"` // default: 0.5
	WindowDays    int       `json:"window_days,omitempty"`    // default: 5
	Limit         int       `json:"limit,omitempty"`          // default: 1
}
