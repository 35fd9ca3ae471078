package backend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var periods = []int{3, 4, 5, 6, 7, 14, 30}

func constant(c float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = c
	}
	return values
}

func TestMovingAverageWarmUp(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	got := Reference().MovingAverage(values, []int{3})
	require.Len(t, got, 1)

	expected := []float64{1, 1.5, 2, 3, 4, 5}
	assert.InDeltaSlice(t, expected, got[0], 1e-12)
}

func TestMovingAverageConstant(t *testing.T) {
	values := constant(3.3, 40)
	for i, seq := range Reference().MovingAverage(values, periods) {
		require.Len(t, seq, len(values), "period %d", periods[i])
		for j, v := range seq {
			assert.InDelta(t, 3.3, v, 1e-12, "period %d index %d", periods[i], j)
		}
	}
}

func TestMovingAverageShortSeries(t *testing.T) {
	values := []float64{2, 4}
	got := Reference().MovingAverage(values, []int{30})
	assert.Equal(t, []float64{2, 3}, got[0])
}

func TestSmoothingRecurrence(t *testing.T) {
	values := []float64{1, 2, 3}
	got := Reference().Smoothing(values, []int{3})[0]

	// level1 = .2*2 + .8*1 = 1.2, trend1 = .1*.2 = .02
	// level2 = .2*3 + .8*1.22 = 1.576, trend2 = .1*.376 + .9*.02 = .0556
	assert.InDeltaSlice(t, []float64{1, 1.22, 1.6316}, got, 1e-12)
}

func TestSmoothingConstant(t *testing.T) {
	values := constant(7.25, 50)
	for _, seq := range Reference().Smoothing(values, periods) {
		for j, v := range seq {
			assert.InDelta(t, 7.25, v, 1e-9, "index %d", j)
		}
	}
}

func TestSmoothingShortSeriesUnchanged(t *testing.T) {
	values := []float64{5, 1, 9}
	got := Reference().Smoothing(values, []int{4, 3})

	assert.Equal(t, values, got[0])
	assert.NotEqual(t, values, got[1])

	got[0][0] = 100
	assert.Equal(t, 5.0, values[0], "output must not alias input")
}

func TestSmoothingIgnoresPeriodOtherwise(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = math.Sin(float64(i) / 3)
	}
	got := Reference().Smoothing(values, periods)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[0], got[i], "period %d", periods[i])
	}
}

func TestSplitSeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name        string
		holdoutSize int
		base        int
	}{
		{"typical", 3, 7},
		{"none", 0, 10},
		{"all", 10, 0},
		{"negative", -2, 10},
		{"oversized", 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, holdout := Reference().SplitSeries(values, tt.holdoutSize)
			assert.Len(t, base, tt.base)
			assert.Equal(t, len(values), len(base)+len(holdout))
			assert.Equal(t, values, append(append([]float64{}, base...), holdout...))
		})
	}
}

func TestMeanSquaredError(t *testing.T) {
	b := Reference()
	x := []float64{1.5, -2, 3.25, 8}

	assert.Equal(t, 0.0, b.MeanSquaredError(x, x))
	assert.InDelta(t, 2.5, b.MeanSquaredError([]float64{1, 2}, []float64{2, 4}), 1e-12)
	// only the overlap counts
	assert.InDelta(t, 1.0, b.MeanSquaredError([]float64{1, 2, 100}, []float64{2}), 1e-12)
	assert.Equal(t, 0.0, b.MeanSquaredError(nil, x))
}

func TestBinarize(t *testing.T) {
	got := Reference().Binarize([]float64{5, 6, 6, 4, 7}, 3)
	assert.Equal(t, []int{0, 1, 0, 0, 1}, got)
	assert.Empty(t, Reference().Binarize(nil, 3))
}

func TestBayesUpProbability(t *testing.T) {
	b := Reference()

	tests := []struct {
		name      string
		binarized []int
		lookback  int
		expected  float64
	}{
		{"all up", []int{0, 1, 1, 1}, 3, 0.8},
		{"all down", []int{0, 0, 0, 0}, 3, 0.2},
		{"mixed", []int{0, 1, 0, 1, 1}, 4, 4.0 / 6.0},
		{"lookback clamped", []int{0, 1}, 10, 2.0 / 4.0},
		{"empty lookback", []int{1, 1, 1}, 0, 0.5},
		{"empty input", nil, 5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := b.BayesUpProbability(tt.binarized, tt.lookback)
			assert.InDelta(t, tt.expected, p, 1e-12)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		})
	}
}
