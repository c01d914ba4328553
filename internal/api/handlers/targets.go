package handlers

import (
	"net/http"

	"gridstress/internal/api/models"
	"gridstress/internal/scenario"

	"github.com/gin-gonic/gin"
)

// GetTargets handles GET /api/v1/targets
func GetTargets(c *gin.Context) {
	t := scenario.CP30()
	c.JSON(http.StatusOK, models.TargetsResponse{
		OffshoreWind:    band(t.OffshoreWind),
		OnshoreWind:     band(t.OnshoreWind),
		Solar:           band(t.Solar),
		Batteries:       band(t.Batteries),
		Interconnectors: band(t.Interconnectors),
		Nuclear:         band(t.Nuclear),
	})
}

func band(r scenario.TargetRange) models.TargetBand {
	return models.TargetBand{LowGW: r.LowGW, HighGW: r.HighGW}
}
