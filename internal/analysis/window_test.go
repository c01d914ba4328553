package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNet makes a flat series with a deep deficit block at [at, at+width).
func buildNet(n, at, width int, depth float64) []float64 {
	net := make([]float64, n)
	for i := range net {
		net[i] = -100 // mild surplus elsewhere
	}
	for i := at; i < at+width; i++ {
		net[i] = depth
	}
	return net
}

func TestWorstWindow_FindsDeficitBlock(t *testing.T) {
	// 10 "days" of 4 intervals each (1h windows keep the math readable).
	net := buildNet(240, 100, 48, 5000)

	w, err := WorstWindow(net, 0.5, 1) // 1 day = 48 half-hours
	require.NoError(t, err)

	assert.Equal(t, 100, w.Start)
	assert.Equal(t, 148, w.End)
	assert.InDelta(t, 5000*48*0.5, w.DeficitMWh, 1e-6)
}

func TestWorstWindow_AllSurplusFallsBackToFirstWindow(t *testing.T) {
	net := make([]float64, 96)
	for i := range net {
		net[i] = -50
	}
	w, err := WorstWindow(net, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 48, w.End)
	assert.Zero(t, w.DeficitMWh)
}

func TestWorstWindow_ShortSeriesClampsToFullRange(t *testing.T) {
	net := []float64{10, 20, 30}
	w, err := WorstWindow(net, 0.5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 3, w.End)
	assert.InDelta(t, 30, w.DeficitMWh, 1e-9)
}

func TestRankWindows_NonOverlapping(t *testing.T) {
	net := buildNet(480, 100, 48, 5000)
	for i := 300; i < 348; i++ {
		net[i] = 2000 // second, smaller event
	}

	windows, err := RankWindows(net, 0.5, 1, 3)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(windows), 2)

	assert.Equal(t, 100, windows[0].Start)
	assert.Greater(t, windows[0].DeficitMWh, windows[1].DeficitMWh)
	for i := 1; i < len(windows); i++ {
		a, b := windows[i-1], windows[i]
		assert.True(t, b.End <= a.Start || b.Start >= a.End, "windows overlap: %+v %+v", a, b)
	}
}

func TestWorstWindow_Errors(t *testing.T) {
	_, err := WorstWindow(nil, 0.5, 1)
	require.Error(t, err)
	_, err = WorstWindow([]float64{1}, 0, 1)
	require.Error(t, err)
	_, err = WorstWindow([]float64{1}, 0.5, 0)
	require.Error(t, err)
}

func TestComputeNetStats(t *testing.T) {
	net := []float64{-100, 0, 100, 200, 300}
	s := ComputeNetStats(net, 0.5)

	assert.InDelta(t, 100, s.MeanMW, 1e-9)
	assert.InDelta(t, -100, s.MinMW, 1e-9)
	assert.InDelta(t, 300, s.MaxMW, 1e-9)
	assert.InDelta(t, (100+200+300)*0.5, s.DeficitMWh, 1e-9)
	assert.InDelta(t, 100*0.5, s.SurplusMWh, 1e-9)
	assert.LessOrEqual(t, s.P05MW, s.P95MW)
}
