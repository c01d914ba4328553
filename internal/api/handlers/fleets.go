package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gridstress/internal/api/models"
	"gridstress/internal/config"
	"gridstress/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FleetHandler lists fleet presets shipped as YAML files
type FleetHandler struct {
	fleetDir string
	log      zerolog.Logger
}

// NewFleetHandler creates a new fleet handler. The preset directory comes from
// FLEET_DIR, falling back to ./examples/fleets.
func NewFleetHandler() *FleetHandler {
	dir := os.Getenv("FLEET_DIR")
	if dir == "" {
		dir = filepath.Join(".", "examples", "fleets")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &FleetHandler{
		fleetDir: dir,
		log:      logging.New("api.fleets"),
	}
}

// ListFleets handles GET /api/v1/fleets
func (h *FleetHandler) ListFleets(c *gin.Context) {
	fleets := []models.FleetInfo{}

	entries, err := os.ReadDir(h.fleetDir)
	if err != nil {
		h.log.Warn().Str("dir", h.fleetDir).Err(err).Msg("fleet directory unreadable")
		c.JSON(http.StatusOK, gin.H{"fleets": fleets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.fleetDir, entry.Name())
		info, err := h.loadFleetInfo(path, entry.Name())
		if err != nil {
			h.log.Warn().Str("file", path).Err(err).Msg("skipping invalid fleet file")
			continue
		}
		fleets = append(fleets, *info)
	}

	c.JSON(http.StatusOK, gin.H{"fleets": fleets})
}

func (h *FleetHandler) loadFleetInfo(path, filename string) (*models.FleetInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Name  string             `yaml:"name"`
		Fleet config.FleetConfig `yaml:"fleet"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := wrapper.Name
	if name == "" {
		name = id
	}

	specs := models.FleetSpecs{}
	for _, b := range wrapper.Fleet.Batteries {
		specs.BatteryPowerMW += b.PowerMW
		specs.BatteryCapacityMWh += b.CapacityMWh
	}
	for _, r := range wrapper.Fleet.Reserves {
		specs.ReservePowerMW += r.PowerMW
	}

	return &models.FleetInfo{
		ID:    id,
		Name:  name,
		File:  path,
		Specs: specs,
	}, nil
}
