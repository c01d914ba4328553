package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Window marks a [Start, End) interval range and the cumulative energy
// deficit inside it. The worst such window over a year is the Dunkelflaute:
// the stretch a storage fleet actually has to survive.
type Window struct {
	Start      int
	End        int
	DeficitMWh float64
}

// WorstWindow finds the rolling window of windowDays with the highest
// cumulative positive net demand. Surplus intervals inside the window do not
// offset the deficit: surplus only helps if storage carries it, which is the
// engine's job to decide, not the window search's.
func WorstWindow(netMW []float64, intervalHours float64, windowDays int) (Window, error) {
	windows, err := rankWindows(netMW, intervalHours, windowDays, 1)
	if err != nil {
		return Window{}, err
	}
	return windows[0], nil
}

// RankWindows returns up to limit non-overlapping candidate windows, worst
// first. Useful for checking whether the second-worst event is close behind
// the headline one.
func RankWindows(netMW []float64, intervalHours float64, windowDays, limit int) ([]Window, error) {
	return rankWindows(netMW, intervalHours, windowDays, limit)
}

func rankWindows(netMW []float64, intervalHours float64, windowDays, limit int) ([]Window, error) {
	if len(netMW) == 0 {
		return nil, fmt.Errorf("empty net series")
	}
	if intervalHours <= 0 {
		return nil, fmt.Errorf("interval hours must be > 0, got %v", intervalHours)
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be > 0, got %d", windowDays)
	}
	if limit <= 0 {
		limit = 1
	}

	periods := int(math.Round(float64(windowDays) * 24 / intervalHours))
	if periods > len(netMW) {
		periods = len(netMW)
	}

	// Prefix sums of the deficit-only series make every rolling sum O(1).
	prefix := make([]float64, len(netMW)+1)
	for i, v := range netMW {
		d := 0.0
		if v > 0 {
			d = v
		}
		prefix[i+1] = prefix[i] + d
	}

	type candidate struct {
		start int
		sum   float64
	}
	cands := make([]candidate, 0, len(netMW)-periods+1)
	for start := 0; start+periods <= len(netMW); start++ {
		cands = append(cands, candidate{start: start, sum: prefix[start+periods] - prefix[start]})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].sum > cands[j].sum })

	var out []Window
	taken := make([]bool, len(netMW))
	for _, c := range cands {
		if len(out) >= limit {
			break
		}
		overlap := false
		for i := c.start; i < c.start+periods; i++ {
			if taken[i] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for i := c.start; i < c.start+periods; i++ {
			taken[i] = true
		}
		out = append(out, Window{Start: c.start, End: c.start + periods, DeficitMWh: c.sum * intervalHours})
	}
	return out, nil
}

// NetStats summarises a net-demand series.
type NetStats struct {
	MeanMW float64
	MinMW  float64
	MaxMW  float64
	P05MW  float64
	P95MW  float64

	DeficitMWh float64 // energy above zero (flexibility need)
	SurplusMWh float64 // energy below zero (pre-event clean surplus)
}

// ComputeNetStats computes distribution and energy totals for a net series.
func ComputeNetStats(netMW []float64, intervalHours float64) NetStats {
	s := NetStats{}
	if len(netMW) == 0 {
		return s
	}
	sorted := append([]float64(nil), netMW...)
	sort.Float64s(sorted)

	s.MeanMW = stat.Mean(sorted, nil)
	s.MinMW = sorted[0]
	s.MaxMW = sorted[len(sorted)-1]
	s.P05MW = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	s.P95MW = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	for _, v := range netMW {
		if v > 0 {
			s.DeficitMWh += v * intervalHours
		} else {
			s.SurplusMWh += -v * intervalHours
		}
	}
	return s
}
