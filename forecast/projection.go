package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/trendcast/backend"
)

// Project re-runs the selected method over the full series and returns its
// first horizon values, or the whole sequence when the series is shorter.
func Project(b backend.Backend, values []float64, sel Selection, horizon int) []float64 {
	periods := []int{sel.Period}

	var seqs [][]float64
	if sel.Method == Smoothing {
		seqs = b.Smoothing(values, periods)
	} else {
		seqs = b.MovingAverage(values, periods)
	}
	if len(seqs) == 0 {
		return []float64{}
	}

	seq := seqs[0]
	n := max(0, min(horizon, len(seq)))
	out := make([]float64, n)
	copy(out, seq[:n])
	return out
}

// ProbabilityUp binarizes the up moves of values and returns the Bayesian
// probability of the next move being up, looking back horizon steps.
func ProbabilityUp(b backend.Backend, values []float64, horizon int) float64 {
	binarized := b.Binarize(values, horizon)
	p := b.BayesUpProbability(binarized, horizon)
	return math.Max(0, math.Min(1, p))
}

// Interval bounds a projected value.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Intervals builds a symmetric band around each projected value whose half
// width is z * 0.1 * the population standard deviation of history. z is 1.96
// at the 0.95 level and 2.58 at any other level.
func Intervals(projection, history []float64, level float64) []Interval {
	z := 2.58
	if level == 0.95 {
		z = 1.96
	}

	spread := 0.0
	if len(history) > 0 {
		spread = z * stat.PopStdDev(history, nil) * 0.1
	}

	out := make([]Interval, len(projection))
	for i, p := range projection {
		out[i] = Interval{Lower: p - spread, Upper: p + spread}
	}
	return out
}
