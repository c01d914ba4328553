package handlers

import (
	"net/http"

	"gridstress/internal/analysis"
	"gridstress/internal/api/models"

	"github.com/gin-gonic/gin"
)

// WindowsHandler handles stress-window ranking requests
type WindowsHandler struct{}

// NewWindowsHandler creates a new windows handler
func NewWindowsHandler() *WindowsHandler {
	return &WindowsHandler{}
}

// Rank handles POST /api/v1/windows
func (h *WindowsHandler) Rank(c *gin.Context) {
	var req models.WindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	intervalHours := req.IntervalHours
	if intervalHours == 0 {
		intervalHours = 0.5
	}
	windowDays := req.WindowDays
	if windowDays == 0 {
		windowDays = 5
	}
	limit := req.Limit
	if limit == 0 {
		limit = 1
	}

	windows, err := analysis.RankWindows(req.NetMW, intervalHours, windowDays, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
			},
		})
		return
	}

	stats := analysis.ComputeNetStats(req.NetMW, intervalHours)

	response := models.WindowsResponse{
		Windows: make([]models.WindowInfo, len(windows)),
		Stats: models.NetStatsInfo{
			MeanMW:     stats.MeanMW,
			MinMW:      stats.MinMW,
			MaxMW:      stats.MaxMW,
			P05MW:      stats.P05MW,
			P95MW:      stats.P95MW,
			DeficitMWh: stats.DeficitMWh,
			SurplusMWh: stats.SurplusMWh,
		},
	}
	for i, w := range windows {
		response.Windows[i] = models.WindowInfo{
			Rank:       i + 1,
			Start:      w.Start,
			End:        w.End,
			DeficitMWh: w.DeficitMWh,
		}
	}

	c.JSON(http.StatusOK, response)
}
