package middleware

import (
	"net/http"

	"gridstress/internal/api/models"
	"gridstress/internal/logging"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers handler panics into the standard error envelope.
// The panic value is logged; only string panics surface in the response.
func ErrorHandler() gin.HandlerFunc {
	log := logging.New("api.recovery")
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("handler panicked")

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
		c.Abort()
	})
}
