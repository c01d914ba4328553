package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FES (Future Energy Scenarios) CSVs are wide: one row per pathway/metric,
// one column per year. We only need the projected peak customer demand.

const (
	colPathway  = "Pathway"
	colDataItem = "Data item"
	colPeakKind = "Peak/ Annual/ Minimum"
	colUnit     = "Unit"

	peakDemandItem = "peak customer demand: total consumption"
)

// LoadPeakDemandMW looks up the projected peak demand (MW) for a pathway and
// year in a FES CSV on disk.
func LoadPeakDemandMW(path, pathway string, year int) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	v, err := ParsePeakDemandMW(f, pathway, year)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ParsePeakDemandMW scans for the aggregate peak-demand row of the given
// pathway and returns the value for the year column, normalised to MW
// (FES ED1 usually reports peaks in GW).
func ParsePeakDemandMW(r io.Reader, pathway string, year int) (float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, colPathway, colDataItem, colPeakKind, colUnit)
	if err != nil {
		return 0, err
	}
	yearCol := -1
	yearStr := strconv.Itoa(year)
	for i, h := range header {
		if strings.TrimSpace(h) == yearStr {
			yearCol = i
			break
		}
	}
	if yearCol < 0 {
		return 0, fmt.Errorf("missing year column %q", yearStr)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if len(row) <= yearCol {
			continue
		}
		if strings.TrimSpace(row[idx[colPathway]]) != pathway {
			continue
		}
		if !strings.Contains(strings.ToLower(row[idx[colDataItem]]), peakDemandItem) {
			continue
		}
		if strings.TrimSpace(row[idx[colPeakKind]]) != "Peak" {
			continue
		}

		val, err := parseMW(row[yearCol])
		if err != nil {
			return 0, fmt.Errorf("peak demand value: %w", err)
		}
		switch strings.TrimSpace(row[idx[colUnit]]) {
		case "MW":
			return val, nil
		case "GW":
			return val * 1000, nil
		default:
			// Unit missing in some exports; FES reports this metric in GW.
			return val * 1000, nil
		}
	}
	return 0, fmt.Errorf("no peak demand row for pathway %q in %d", pathway, year)
}
