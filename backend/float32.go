package backend

import (
	"context"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

// Float32Name is the registry name of the single-precision implementation.
const Float32Name = "float32"

func init() {
	Register(Float32Name, func(ctx context.Context) (Backend, error) {
		return Float32(), nil
	})
}

type single struct{}

// Float32 returns an implementation that computes in single precision, the
// way GPU kernels serving this contract do. Results stay within a small
// tolerance of Reference for well-scaled input.
func Float32() Backend {
	return single{}
}

func (single) Name() string { return Float32Name }

func (single) MovingAverage(values []float64, periods []int) [][]float64 {
	xs := toFloat32(values)
	out := make([][]float64, len(periods))
	for i, p := range periods {
		out[i] = movingAverage32(xs, p)
	}
	return out
}

func (single) Smoothing(values []float64, periods []int) [][]float64 {
	xs := toFloat32(values)
	out := make([][]float64, len(periods))
	for i, p := range periods {
		out[i] = smooth32(xs, p)
	}
	return out
}

func (single) SplitSeries(values []float64, holdoutSize int) (base, holdout []float64) {
	rounded := toFloat64(toFloat32(values))
	cut := splitIndex(len(rounded), holdoutSize)
	return rounded[:cut:cut], rounded[cut:]
}

func (single) MeanSquaredError(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := float64(float32(a[i])) - float64(float32(b[i]))
		sum += d * d
	}
	return sum / float64(n)
}

func (single) Binarize(values []float64, lookback int) []int {
	xs := toFloat32(values)
	out := make([]int, len(xs))
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[i-1] {
			out[i] = 1
		}
	}
	return out
}

func (single) BayesUpProbability(binarized []int, lookback int) float64 {
	return bayesUp(binarized, lookback)
}

// movingAverage32 fills full windows from the indicator SMA and the warm-up
// prefix with growing-window means.
func movingAverage32(xs []float32, period int) []float64 {
	if period < 1 {
		period = 1
	}
	out := make([]float64, len(xs))

	offset := len(xs)
	if len(xs) >= period {
		sma := trend.NewSmaWithPeriod[float32](period)
		full := helper.ChanToSlice(sma.Compute(helper.SliceToChan(xs)))
		offset = len(xs) - len(full)
		for j, v := range full {
			out[offset+j] = float64(v)
		}
	}

	var sum float32
	for i := 0; i < offset; i++ {
		sum += xs[i]
		start := max(i-period+1, 0)
		if start > 0 {
			sum -= xs[start-1]
		}
		out[i] = float64(sum / float32(i-start+1))
	}
	return out
}

func smooth32(xs []float32, period int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) < period || len(xs) == 0 {
		for i, v := range xs {
			out[i] = float64(v)
		}
		return out
	}

	const alpha, beta float32 = Alpha, Beta
	level, tr := xs[0], float32(0)
	out[0] = float64(xs[0])
	for i := 1; i < len(xs); i++ {
		prior := level
		level = alpha*xs[i] + (1-alpha)*(level+tr)
		tr = beta*(level-prior) + (1-beta)*tr
		out[i] = float64(level + tr)
	}
	return out
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
