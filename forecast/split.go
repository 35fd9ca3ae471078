package forecast

import (
	"math"

	"github.com/sartorproj/trendcast/backend"
	"github.com/sartorproj/trendcast/timeseries"
)

// Split cuts values into a training prefix and a holdout suffix of
// floor(len(values)*holdoutFraction) elements. The cut is deterministic.
func Split(b backend.Backend, values []float64, holdoutFraction float64) (base, holdout []float64, err error) {
	if len(values) == 0 {
		return nil, nil, invalidSeries(timeseries.ErrEmptySeries)
	}
	holdoutSize := int(math.Floor(float64(len(values)) * holdoutFraction))
	base, holdout = b.SplitSeries(values, holdoutSize)
	return base, holdout, nil
}
