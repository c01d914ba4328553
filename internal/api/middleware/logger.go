package middleware

import (
	"time"

	"gridstress/internal/logging"

	"github.com/gin-gonic/gin"
)

// Logger returns a middleware that logs each request with zerolog.
func Logger() gin.HandlerFunc {
	log := logging.New("api.http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		} else if c.Writer.Status() >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
