package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/trendcast/backend"
)

func TestSplitLengths(t *testing.T) {
	b := backend.Reference()
	for n := 1; n <= 60; n++ {
		values := make([]float64, n)
		base, holdout, err := Split(b, values, 0.3)
		require.NoError(t, err)

		assert.Equal(t, n, len(base)+len(holdout), "n=%d", n)
		assert.Equal(t, int(float64(n)*0.3), len(holdout), "n=%d", n)
	}

	_, _, err := Split(b, nil, 0.3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSelectTieBreaks(t *testing.T) {
	b := backend.Reference()
	holdout := []float64{10, 10}
	periods := []int{3, 4, 5}

	tests := []struct {
		name       string
		candidates Candidates
		restrict   Method
		want       Selection
	}{
		{
			name: "lowest error wins",
			candidates: Candidates{
				MovingAverages: map[int][]float64{3: {9, 9}, 4: {10, 10}, 5: {8, 8}},
				Smoothings:     map[int][]float64{3: {0, 0}, 4: {1, 1}, 5: {2, 2}},
			},
			restrict: Auto,
			want:     Selection{Method: MovingAverage, Period: 4},
		},
		{
			name: "smaller period on equal error",
			candidates: Candidates{
				MovingAverages: map[int][]float64{3: {0, 0}, 4: {11, 11}, 5: {9, 9}},
				Smoothings:     map[int][]float64{3: {0, 0}, 4: {0, 0}, 5: {0, 0}},
			},
			restrict: Auto,
			want:     Selection{Method: MovingAverage, Period: 4},
		},
		{
			name: "smoothing on equal error and period",
			candidates: Candidates{
				MovingAverages: map[int][]float64{3: {0, 0}, 4: {10, 10}, 5: {0, 0}},
				Smoothings:     map[int][]float64{3: {0, 0}, 4: {10, 10}, 5: {0, 0}},
			},
			restrict: Auto,
			want:     Selection{Method: Smoothing, Period: 4},
		},
		{
			name: "restricted to moving average",
			candidates: Candidates{
				MovingAverages: map[int][]float64{3: {0, 0}, 4: {5, 5}, 5: {7, 7}},
				Smoothings:     map[int][]float64{3: {10, 10}, 4: {10, 10}, 5: {10, 10}},
			},
			restrict: MovingAverage,
			want:     Selection{Method: MovingAverage, Period: 5},
		},
		{
			name:       "no candidates",
			candidates: Candidates{},
			restrict:   Smoothing,
			want:       Selection{Method: Smoothing, Period: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(b, holdout, tt.candidates, periods, tt.restrict)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectEmptyHoldout(t *testing.T) {
	b := backend.Reference()
	candidates := GenerateCandidates(b, []float64{3, 1, 4, 1, 5, 9, 2, 6}, CandidatePeriods)

	got := Select(b, nil, candidates, CandidatePeriods, Auto)
	assert.Equal(t, Selection{Method: Smoothing, Period: 3}, got)
}

func TestSelectComparesOverlapOnly(t *testing.T) {
	b := backend.Reference()
	candidates := Candidates{
		MovingAverages: map[int][]float64{3: {1, 2, 3, 1000}},
		Smoothings:     map[int][]float64{3: {0, 0, 0, 0}},
	}

	got := Select(b, []float64{1, 2, 3}, candidates, []int{3}, Auto)
	assert.Equal(t, Selection{Method: MovingAverage, Period: 3}, got)
}

func TestGenerateCandidatesShapes(t *testing.T) {
	values := []float64{2, 4, 6, 8, 10, 12, 14, 16, 18}
	c := GenerateCandidates(backend.Reference(), values, CandidatePeriods)

	for _, p := range CandidatePeriods {
		assert.Len(t, c.Of(MovingAverage, p), len(values))
		assert.Len(t, c.Of(Smoothing, p), len(values))
	}
	// shorter than the period: returned unchanged
	assert.Equal(t, values, c.Of(Smoothing, 14))
	assert.Equal(t, c.Of(Smoothing, 3), c.Of(Smoothing, 7))
	assert.Nil(t, c.Of(MovingAverage, 99))
}

func TestProjectClipsToHorizon(t *testing.T) {
	b := backend.Reference()
	values := []float64{1, 2, 3, 4, 5, 6}

	got := Project(b, values, Selection{Method: MovingAverage, Period: 3}, 4)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 3}, got, 1e-12)

	got = Project(b, values, Selection{Method: Smoothing, Period: 30}, 100)
	assert.Equal(t, values, got)
}

func TestIntervals(t *testing.T) {
	history := []float64{2, 4, 4, 4, 5, 5, 7, 9} // population std 2

	got := Intervals([]float64{10}, history, 0.95)
	assert.InDelta(t, 10-0.392, got[0].Lower, 1e-12)
	assert.InDelta(t, 10+0.392, got[0].Upper, 1e-12)

	got = Intervals([]float64{10}, history, 0.99)
	assert.InDelta(t, 10+0.516, got[0].Upper, 1e-12)

	assert.Empty(t, Intervals(nil, history, 0.95))
}

func TestHoldoutAccuracy(t *testing.T) {
	b := backend.Reference()

	got := HoldoutAccuracy(b, []float64{2, 4, 0}, []float64{1, 6, 1, 99})
	assert.Equal(t, 3, got.Points)
	assert.InDelta(t, 2.0, got.MSE, 1e-12)
	assert.InDelta(t, math.Sqrt2, got.RMSE, 1e-12)
	assert.InDelta(t, 4.0/3.0, got.MAE, 1e-12)
	assert.InDelta(t, 100.0/3.0, got.MAPE, 1e-9)

	assert.Equal(t, Accuracy{}, HoldoutAccuracy(b, nil, []float64{1}))
}

func TestSelectAllScoresOverflow(t *testing.T) {
	b := backend.Reference()
	candidates := Candidates{
		MovingAverages: map[int][]float64{3: {-1e200}, 4: {-1e200}},
		Smoothings:     map[int][]float64{3: {-1e200}, 4: {-1e200}},
	}

	got := Select(b, []float64{1e200}, candidates, []int{4, 3}, Auto)
	assert.Equal(t, Selection{Method: Smoothing, Period: 3}, got)
}
