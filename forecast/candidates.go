package forecast

import (
	"github.com/sartorproj/trendcast/backend"
)

// Candidates holds one sequence per period for each method, keyed by period.
type Candidates struct {
	MovingAverages map[int][]float64
	Smoothings     map[int][]float64
}

// Of returns the candidate sequence for method and period.
func (c Candidates) Of(method Method, period int) []float64 {
	seq, _ := lookup(c, method, period)
	return seq
}

// GenerateCandidates computes the moving-average and smoothing sequences of
// values for every period in one backend call per method.
//
// Smoothing does not depend on the period beyond returning short input
// unchanged, so periods no longer than the input yield identical sequences.
// They still compete separately during selection.
func GenerateCandidates(b backend.Backend, values []float64, periods []int) Candidates {
	return Candidates{
		MovingAverages: byPeriod(periods, b.MovingAverage(values, periods)),
		Smoothings:     byPeriod(periods, b.Smoothing(values, periods)),
	}
}

func byPeriod(periods []int, seqs [][]float64) map[int][]float64 {
	out := make(map[int][]float64, len(periods))
	for i, p := range periods {
		if i < len(seqs) {
			out[p] = seqs[i]
		}
	}
	return out
}
