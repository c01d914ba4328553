package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gridstress/internal/api/handlers"
	"gridstress/internal/api/middleware"
	"gridstress/internal/logging"
	"gridstress/internal/metrics"
)

func main() {
	log := logging.New("api")

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	sink, err := metrics.NewSink(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics setup failed")
	}

	// Initialize handlers
	store := handlers.NewRunStore(runTTL())
	simulateHandler := handlers.NewSimulateHandler(store, sink)
	windowsHandler := handlers.NewWindowsHandler()
	fleetHandler := handlers.NewFleetHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Run)
		api.GET("/simulate/:id/ledger", simulateHandler.GetLedger)
		api.POST("/simulate/compare", simulateHandler.Compare)

		api.POST("/windows", windowsHandler.Rank)

		api.GET("/fleets", fleetHandler.ListFleets)
		api.GET("/targets", handlers.GetTargets)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// runTTL reads RUN_TTL (e.g. "30m") for the in-memory result store.
func runTTL() time.Duration {
	if s := os.Getenv("RUN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return time.Hour
}
