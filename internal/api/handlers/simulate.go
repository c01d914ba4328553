package handlers

import (
	"errors"
	"net/http"
	"time"

	"gridstress/internal/api/models"
	"gridstress/internal/config"
	"gridstress/internal/logging"
	"gridstress/internal/metrics"
	"gridstress/internal/model"
	"gridstress/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SimulateHandler handles dispatch simulation requests
type SimulateHandler struct {
	store *RunStore
	sink  *metrics.Sink
	log   zerolog.Logger
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(store *RunStore, sink *metrics.Sink) *SimulateHandler {
	return &SimulateHandler{
		store: store,
		sink:  sink,
		log:   logging.New("api.simulate"),
	}
}

// Run handles POST /api/v1/simulate
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	series := toSeries(req.Series, req.Options.LimitIntervals)
	fleet := buildFleet(req.Fleet)

	started := time.Now()
	result, err := sim.New().Run(series, fleet)
	if err != nil {
		h.sink.RecordRun(metrics.OutcomeInvalid, time.Since(started), 0)
		writeRunError(c, err)
		return
	}
	h.sink.RecordRun(metrics.OutcomeOK, time.Since(started), result.TotalUnmetMWh)

	id := h.store.Put(result)
	h.log.Info().
		Str("run_id", id).
		Int("intervals", len(result.Ledger)).
		Float64("unmet_mwh", result.TotalUnmetMWh).
		Int("exhaustion_index", result.ExhaustionIndex).
		Msg("simulation completed")

	response := models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}
	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/simulate/:id/ledger
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: "Run not found or expired. Re-run the simulation or use include_ledger=true.",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
		Ledger:  convertLedger(result.Ledger),
	})
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(req.Variations) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "at least one variation is required",
			},
		})
		return
	}

	series := toSeries(req.Series, 0)
	engine := sim.New()

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		fleet := buildFleet(config.MergeFleet(req.BaseFleet, variation.Fleet))

		started := time.Now()
		result, err := engine.Run(series, fleet)
		if err != nil {
			h.sink.RecordRun(metrics.OutcomeInvalid, time.Since(started), 0)
			h.log.Warn().Str("variation", variation.Name).Err(err).Msg("variation rejected")
			detail := errorDetail(err)
			comparison = append(comparison, models.ComparisonResult{
				Name:  variation.Name,
				Error: &detail,
			})
			continue
		}
		h.sink.RecordRun(metrics.OutcomeOK, time.Since(started), result.TotalUnmetMWh)

		summary := buildSummary(result)
		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: &summary,
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper methods

func toSeries(in models.SeriesInput, limit int) model.SeriesPair {
	demand := in.DemandMW
	renewable := in.RenewableMW
	if limit > 0 && limit < len(demand) && limit < len(renewable) {
		demand = demand[:limit]
		renewable = renewable[:limit]
	}
	return model.SeriesPair{
		DemandMW:      demand,
		RenewableMW:   renewable,
		IntervalHours: in.IntervalHours,
	}
}

func buildFleet(fc config.FleetConfig) sim.Fleet {
	cfg := config.Config{Fleet: fc}
	cfg.ApplyDefaults()
	return cfg.Fleet.ToSim()
}

// errorDetail maps engine failures to the response envelope: validation
// errors name the offending field, anything else is a simulation error.
func errorDetail(err error) models.ErrorDetail {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return models.ErrorDetail{
			Code:    "INVALID_INPUT",
			Message: err.Error(),
			Details: map[string]interface{}{"field": verr.Field},
		}
	}
	return models.ErrorDetail{
		Code:    "SIMULATION_ERROR",
		Message: err.Error(),
	}
}

// writeRunError maps engine validation failures to 400 and everything else
// to 500.
func writeRunError(c *gin.Context, err error) {
	detail := errorDetail(err)
	status := http.StatusInternalServerError
	if detail.Code == "INVALID_INPUT" {
		status = http.StatusBadRequest
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func buildSummary(result *sim.Result) models.Summary {
	return models.Summary{
		TotalIntervals:      len(result.Ledger),
		IntervalHours:       result.IntervalHours,
		TotalUnmetMWh:       result.TotalUnmetMWh,
		UnmetIntervals:      result.UnmetIntervals(),
		PeakDeficitMW:       result.PeakDeficitMW,
		PeakDeficitIndex:    result.PeakDeficitIndex,
		ExhaustionIndex:     result.ExhaustionIndex,
		CurtailedMWh:        result.CurtailedMWh,
		EnergyDischargedMWh: result.EnergyDischargedMWh,
		EnergyChargedMWh:    result.EnergyChargedMWh,
		ReserveEnergyMWh:    result.ReserveEnergyMWh,
		FinalSOCMWh:         result.FinalSOCMWh,
	}
}

func convertLedger(ledger []sim.Record) []models.LedgerRow {
	rows := make([]models.LedgerRow, len(ledger))
	for i, rec := range ledger {
		rows[i] = models.LedgerRow{
			Index:               rec.Index,
			DemandMW:            rec.DemandMW,
			RenewableMW:         rec.RenewableMW,
			NetBeforeDispatchMW: rec.NetBeforeDispatchMW,
			BatteryDispatchMW:   rec.BatteryDispatchMW,
			BatterySOCMWh:       rec.BatterySOCMWh,
			PoolSOCMWh:          rec.PoolSOCMWh,
			ReserveDispatchMW:   rec.ReserveDispatchMW,
			UnmetDeficitMW:      rec.UnmetDeficitMW,
			CurtailedMW:         rec.CurtailedMW,
			Phase:               string(rec.Phase),
		}
	}
	return rows
}
