package forecast

import (
	"errors"
	"fmt"

	"github.com/sartorproj/trendcast/timeseries"
)

// ErrInvalidInput is matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports input rejected before any stage runs.
type InvalidInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidSeries(err error) *InvalidInputError {
	var nf *timeseries.NonFiniteError
	if errors.As(err, &nf) {
		return &InvalidInputError{Field: "series", Reason: nf.Error(), Err: err}
	}
	return &InvalidInputError{Field: "series", Reason: err.Error(), Err: err}
}

// rejection reasons used as metric labels
func rejectReason(err *InvalidInputError) string {
	var nf *timeseries.NonFiniteError
	switch {
	case errors.As(err.Err, &nf):
		return "non_finite"
	case errors.Is(err.Err, timeseries.ErrEmptySeries):
		return "empty"
	default:
		return err.Field
	}
}
