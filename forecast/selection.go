package forecast

import (
	"math"

	"github.com/sartorproj/trendcast/backend"
)

// Selection is the winning method and period.
type Selection struct {
	Method Method
	Period int
}

type score struct {
	err    float64
	period int
	method Method
}

// less orders scores by error, then period, then method with Smoothing first.
func (s score) less(o score) bool {
	if s.err != o.err {
		return s.err < o.err
	}
	if s.period != o.period {
		return s.period < o.period
	}
	return s.method.rank() < o.method.rank()
}

// Select scores every candidate against holdout over their common length and
// returns the minimum. restrict limits the contest to a single method unless
// it is Auto.
//
// An empty holdout scores every candidate zero, which makes the smallest
// period win with Smoothing.
func Select(b backend.Backend, holdout []float64, candidates Candidates, periods []int, restrict Method) Selection {
	methods := []Method{Smoothing, MovingAverage}
	if restrict == Smoothing || restrict == MovingAverage {
		methods = []Method{restrict}
	}

	best := score{err: math.Inf(1)}
	found := false
	for _, period := range periods {
		for _, method := range methods {
			seq, ok := lookup(candidates, method, period)
			if !ok {
				continue
			}
			s := score{err: b.MeanSquaredError(holdout, seq), period: period, method: method}
			if math.IsNaN(s.err) {
				s.err = math.Inf(1)
			}
			if !found || s.less(best) {
				best, found = s, true
			}
		}
	}

	if !found {
		sel := Selection{Method: methods[0]}
		if len(periods) > 0 {
			sel.Period = periods[0]
		}
		return sel
	}
	return Selection{Method: best.method, Period: best.period}
}

func lookup(c Candidates, method Method, period int) ([]float64, bool) {
	if method == Smoothing {
		seq, ok := c.Smoothings[period]
		return seq, ok
	}
	seq, ok := c.MovingAverages[period]
	return seq, ok
}
