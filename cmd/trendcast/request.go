package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/sartorproj/trendcast/config"
	"github.com/sartorproj/trendcast/timeseries"
)

// Request is one forecast call as the command line describes it.
type Request struct {
	Name            string    `json:"name"`
	Values          []float64 `json:"values" validate:"required"`
	Horizon         int       `json:"horizon" default:"5" validate:"gte=1"`
	Method          string    `json:"method" default:"auto" validate:"oneof=auto smoothing moving_average holt_winters hw ma"`
	ConfidenceLevel float64   `json:"confidence_level" default:"0.95" validate:"gte=0.5,lte=0.99"`
}

var validate = validator.New()

// LimitError reports a request outside the configured limits.
type LimitError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// ReadAndValidateRequest fills unset request fields from defaults, then checks
// the request against its tags and the configured limits.
func ReadAndValidateRequest(req *Request, limits config.LimitsConfig) error {
	if err := defaults.Set(req); err != nil {
		return fmt.Errorf("failed to apply request defaults: %w", err)
	}
	req.Method = strings.ToLower(strings.TrimSpace(req.Method))

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("invalid request: field %s failed %q (%v)", e.Field(), e.Tag(), e.Value())
		}
		return fmt.Errorf("invalid request: %w", err)
	}

	if n := len(req.Values); n < limits.MinPoints || n > limits.MaxPoints {
		return &LimitError{Field: "values", Value: n, Min: limits.MinPoints, Max: limits.MaxPoints}
	}
	if req.Horizon > limits.MaxHorizon {
		return &LimitError{Field: "horizon", Value: req.Horizon, Min: 1, Max: limits.MaxHorizon}
	}
	return nil
}

// ParseValues reads a comma separated list of numbers.
func ParseValues(s string) ([]float64, error) {
	var values []float64
	for i, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: invalid number %q", i+1, field)
		}
		values = append(values, v)
	}
	return values, nil
}

// loadSeries reads the series from a CSV file when path is set, otherwise
// from the inline list.
func loadSeries(path, column, inline string) (*timeseries.Series, error) {
	switch {
	case path != "" && inline != "":
		return nil, errors.New("--csv and --values are mutually exclusive")
	case path != "":
		return timeseries.LoadCSVColumn(path, column)
	case inline != "":
		values, err := ParseValues(inline)
		if err != nil {
			return nil, err
		}
		return timeseries.New(values), nil
	}
	return nil, errors.New("no input: pass --csv or --values")
}
