package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"gridstress/internal/model"
)

// LoadSeriesCSV reads a prepared two-column series file (demand_mw,
// renewable_mw; half-hourly unless stated otherwise by the caller) for the
// CLI's raw-series mode.
func LoadSeriesCSV(path string) (model.SeriesPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SeriesPair{}, err
	}
	defer f.Close()
	s, err := ParseSeriesCSV(f)
	if err != nil {
		return model.SeriesPair{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func ParseSeriesCSV(r io.Reader) (model.SeriesPair, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return model.SeriesPair{}, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, "demand_mw", "renewable_mw")
	if err != nil {
		return model.SeriesPair{}, err
	}

	var out model.SeriesPair
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.SeriesPair{}, fmt.Errorf("line %d: %w", line, err)
		}
		d, err := parseMW(row[idx["demand_mw"]])
		if err != nil {
			return model.SeriesPair{}, fmt.Errorf("line %d: demand_mw: %w", line, err)
		}
		g, err := parseMW(row[idx["renewable_mw"]])
		if err != nil {
			return model.SeriesPair{}, fmt.Errorf("line %d: renewable_mw: %w", line, err)
		}
		out.DemandMW = append(out.DemandMW, d)
		out.RenewableMW = append(out.RenewableMW, g)
	}
	return out, nil
}
