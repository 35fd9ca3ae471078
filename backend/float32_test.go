package backend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractTolerance = 1e-3

func wave(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 50 + 10*math.Sin(float64(i)/4) + float64(i%7)/3
	}
	return values
}

func TestFloat32MatchesReference(t *testing.T) {
	ref, single := Reference(), Float32()

	for _, n := range []int{1, 2, 5, 13, 29, 30, 31, 120} {
		values := wave(n)

		refMA, gotMA := ref.MovingAverage(values, periods), single.MovingAverage(values, periods)
		refSm, gotSm := ref.Smoothing(values, periods), single.Smoothing(values, periods)
		require.Len(t, gotMA, len(periods))
		require.Len(t, gotSm, len(periods))

		for i, p := range periods {
			require.Len(t, gotMA[i], n, "moving average n=%d period=%d", n, p)
			require.Len(t, gotSm[i], n, "smoothing n=%d period=%d", n, p)
			assert.InDeltaSlice(t, refMA[i], gotMA[i], contractTolerance, "moving average n=%d period=%d", n, p)
			assert.InDeltaSlice(t, refSm[i], gotSm[i], contractTolerance, "smoothing n=%d period=%d", n, p)
		}
	}
}

func TestFloat32ScalarsMatchReference(t *testing.T) {
	ref, single := Reference(), Float32()
	values := wave(60)

	refBase, refHold := ref.SplitSeries(values, 18)
	base, hold := single.SplitSeries(values, 18)
	require.Len(t, base, len(refBase))
	require.Len(t, hold, len(refHold))
	assert.InDeltaSlice(t, refHold, hold, contractTolerance)

	a, b := values[:30], values[30:]
	assert.InDelta(t, ref.MeanSquaredError(a, b), single.MeanSquaredError(a, b), contractTolerance)
	assert.Equal(t, 0.0, single.MeanSquaredError(a, a))

	refBin := ref.Binarize(values, 5)
	assert.Equal(t, refBin, single.Binarize(values, 5))
	assert.Equal(t, ref.BayesUpProbability(refBin, 5), single.BayesUpProbability(refBin, 5))
}

func TestFloat32SplitDoesNotAlias(t *testing.T) {
	base, holdout := Float32().SplitSeries([]float64{1, 2, 3, 4}, 2)
	base = append(base, 99)

	assert.Equal(t, []float64{3, 4}, holdout)
	assert.Equal(t, []float64{1, 2, 99}, base)
}

func TestFloat32MovingAverageWarmUp(t *testing.T) {
	got := Float32().MovingAverage([]float64{1, 2, 3, 4, 5, 6}, []int{3, 1})
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 3, 4, 5}, got[0], 1e-6)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4, 5, 6}, got[1], 1e-6)
}
