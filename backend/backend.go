// Package backend defines the numeric contract behind the forecasting pipeline.
package backend

import (
	"errors"
	"fmt"
)

// Smoothing constants for the level/trend recurrence. They are fixed, not fitted.
const (
	Alpha = 0.2
	Beta  = 0.1
)

// ReferenceName is the name reported by the reference implementation.
const ReferenceName = "reference"

// Backend is the set of numeric primitives the pipeline is written against.
//
// Implementations hold no state between calls. Per-period outputs are owned by
// the caller, returned in the order of the requested periods, and have the
// same length as the input values.
type Backend interface {
	// Name identifies the execution substrate.
	Name() string

	// MovingAverage returns one trailing-window average per period. Entries
	// before the first full window average the values seen so far.
	MovingAverage(values []float64, periods []int) [][]float64

	// Smoothing returns one level+trend smoothed sequence per period. A
	// sequence shorter than the period is returned unchanged.
	Smoothing(values []float64, periods []int) [][]float64

	// SplitSeries cuts values into a prefix and a suffix of holdoutSize elements.
	SplitSeries(values []float64, holdoutSize int) (base, holdout []float64)

	// MeanSquaredError compares a and b over their common length. An empty
	// overlap scores zero.
	MeanSquaredError(a, b []float64) float64

	// Binarize marks each step that rose above its predecessor with 1. The
	// first element is always 0.
	Binarize(values []float64, lookback int) []int

	// BayesUpProbability returns the Beta(1,1) posterior mean of the share of
	// ones among the last lookback elements.
	BayesUpProbability(binarized []int, lookback int) float64
}

// ErrBackendUnavailable is matched by every UnavailableError.
var ErrBackendUnavailable = errors.New("backend unavailable")

// UnavailableError reports an accelerator that could not be brought up.
type UnavailableError struct {
	Name string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("backend %q unavailable", e.Name)
	}
	return fmt.Sprintf("backend %q unavailable: %v", e.Name, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrBackendUnavailable }
