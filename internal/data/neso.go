package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// WeatherRecord is one half-hourly row of the weather template derived from
// a NESO demand-data CSV: national demand plus unitized wind/solar load
// factors (0..1) carrying that day's weather pattern.
type WeatherRecord struct {
	Time     time.Time
	DemandMW float64
	WindLF   float64
	SolarLF  float64
}

// Columns of the NESO demanddata export we consume. The embedded columns are
// used as a proxy for the weather pattern.
const (
	colSettlementDate = "SETTLEMENT_DATE"
	colSettlementPer  = "SETTLEMENT_PERIOD"
	colNationalDemand = "ND"
	colWindGen        = "EMBEDDED_WIND_GENERATION"
	colWindCap        = "EMBEDDED_WIND_CAPACITY"
	colSolarGen       = "EMBEDDED_SOLAR_GENERATION"
	colSolarCap       = "EMBEDDED_SOLAR_CAPACITY"
)

// LoadWeatherTemplate reads a NESO settlement CSV from disk.
func LoadWeatherTemplate(path string) ([]WeatherRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ParseWeatherTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ParseWeatherTemplate parses the CSV: SETTLEMENT_DATE (YYYY-MM-DD) plus
// SETTLEMENT_PERIOD (1-48) give the half-hour timestamp; load factors are
// generation/capacity, clipped to [0,1] with zero-capacity rows treated as 0.
func ParseWeatherTemplate(r io.Reader) ([]WeatherRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, colSettlementDate, colSettlementPer, colNationalDemand,
		colWindGen, colWindCap, colSolarGen, colSolarCap)
	if err != nil {
		return nil, err
	}

	var out []WeatherRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[idx[colSettlementDate]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: settlement date: %w", line, err)
		}
		period, err := strconv.Atoi(strings.TrimSpace(row[idx[colSettlementPer]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: settlement period: %w", line, err)
		}
		if period < 1 || period > 50 {
			return nil, fmt.Errorf("line %d: settlement period %d out of range", line, period)
		}

		demand, err := parseMW(row[idx[colNationalDemand]])
		if err != nil {
			return nil, fmt.Errorf("line %d: ND: %w", line, err)
		}

		out = append(out, WeatherRecord{
			Time:     date.Add(time.Duration(period-1) * 30 * time.Minute),
			DemandMW: demand,
			WindLF:   loadFactor(row[idx[colWindGen]], row[idx[colWindCap]]),
			SolarLF:  loadFactor(row[idx[colSolarGen]], row[idx[colSolarCap]]),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return out, nil
}

func headerIndex(header []string, want ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, fmt.Errorf("missing column %q", w)
		}
	}
	return idx, nil
}

func parseMW(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// loadFactor computes generation/capacity, treating unparsable or
// zero-capacity rows as 0 and clipping to [0,1].
func loadFactor(gen, cap string) float64 {
	g, err := parseMW(gen)
	if err != nil {
		return 0
	}
	c, err := parseMW(cap)
	if err != nil || c <= 0 {
		return 0
	}
	lf := g / c
	if lf < 0 {
		return 0
	}
	if lf > 1 {
		return 1
	}
	return lf
}
