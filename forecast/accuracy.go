package forecast

import (
	"math"

	"github.com/sartorproj/trendcast/backend"
)

// Accuracy describes how well the selected candidate reproduced the holdout.
// All measures cover the overlap of the candidate and the holdout only.
type Accuracy struct {
	Points int     `json:"points"`
	MSE    float64 `json:"mse"`
	RMSE   float64 `json:"rmse"`
	MAE    float64 `json:"mae"`
	MAPE   float64 `json:"mape"` // percent; zero actuals are skipped
}

// HoldoutAccuracy scores predicted against actual. MSE comes from the backend
// so it matches the score Select used.
func HoldoutAccuracy(b backend.Backend, actual, predicted []float64) Accuracy {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return Accuracy{}
	}

	var mae, mape float64
	for i := 0; i < n; i++ {
		d := math.Abs(actual[i] - predicted[i])
		mae += d
		if actual[i] != 0 {
			mape += d / math.Abs(actual[i]) * 100
		}
	}

	mse := b.MeanSquaredError(actual[:n], predicted[:n])
	return Accuracy{
		Points: n,
		MSE:    mse,
		RMSE:   math.Sqrt(mse),
		MAE:    mae / float64(n),
		MAPE:   mape / float64(n),
	}
}
