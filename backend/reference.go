package backend

import (
	"gonum.org/v1/gonum/stat"
)

type reference struct{}

// Reference returns the portable float64 implementation.
func Reference() Backend {
	return reference{}
}

func (reference) Name() string { return ReferenceName }

func (reference) MovingAverage(values []float64, periods []int) [][]float64 {
	out := make([][]float64, len(periods))
	for i, p := range periods {
		out[i] = movingAverage(values, p)
	}
	return out
}

func (reference) Smoothing(values []float64, periods []int) [][]float64 {
	out := make([][]float64, len(periods))
	for i, p := range periods {
		out[i] = smooth(values, p)
	}
	return out
}

func (reference) SplitSeries(values []float64, holdoutSize int) (base, holdout []float64) {
	cut := splitIndex(len(values), holdoutSize)
	base = append([]float64{}, values[:cut]...)
	holdout = append([]float64{}, values[cut:]...)
	return base, holdout
}

func (reference) MeanSquaredError(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	sq := make([]float64, n)
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sq[i] = d * d
	}
	return stat.Mean(sq, nil)
}

func (reference) Binarize(values []float64, lookback int) []int {
	out := make([]int, len(values))
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			out[i] = 1
		}
	}
	return out
}

func (reference) BayesUpProbability(binarized []int, lookback int) float64 {
	return bayesUp(binarized, lookback)
}

// movingAverage averages the trailing window ending at each index, shrinking
// the window at the start of the series.
func movingAverage(values []float64, period int) []float64 {
	if period < 1 {
		period = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		start := max(i-period+1, 0)
		out[i] = stat.Mean(values[start:i+1], nil)
	}
	return out
}

// smooth runs the double exponential recurrence. period only gates the
// early return for short input.
func smooth(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) < period || len(values) == 0 {
		copy(out, values)
		return out
	}

	level, trend := values[0], 0.0
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		prior := level
		level = Alpha*values[i] + (1-Alpha)*(level+trend)
		trend = Beta*(level-prior) + (1-Beta)*trend
		out[i] = level + trend
	}
	return out
}

func splitIndex(n, holdoutSize int) int {
	holdoutSize = max(0, min(holdoutSize, n))
	return n - holdoutSize
}

func bayesUp(binarized []int, lookback int) float64 {
	lookback = max(0, min(lookback, len(binarized)))
	if lookback == 0 {
		return 0.5
	}
	increases := 0
	for _, b := range binarized[len(binarized)-lookback:] {
		increases += b
	}
	return float64(increases+1) / float64(lookback+2)
}
