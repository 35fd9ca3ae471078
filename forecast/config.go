package forecast

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidatePeriods is the fixed set of window sizes every forecast competes over.
var CandidatePeriods = []int{3, 4, 5, 6, 7, 14, 30}

// Method names a candidate family.
type Method string

const (
	Auto          Method = "auto"
	Smoothing     Method = "smoothing"
	MovingAverage Method = "moving_average"
)

// rank orders methods when score and period tie.
func (m Method) rank() int {
	if m == Smoothing {
		return 0
	}
	return 1
}

// ParseMethod accepts the canonical names and the "holt_winters" alias.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "smoothing", "holt_winters", "hw":
		return Smoothing, nil
	case "moving_average", "ma":
		return MovingAverage, nil
	}
	return "", &InvalidInputError{Field: "method", Reason: fmt.Sprintf("unknown method %q", s)}
}

// Config holds configuration for the forecasting engine.
type Config struct {
	HoldoutFraction float64 `validate:"gt=0,lt=1"`                             // Share of the series withheld for scoring (default: 0.3)
	Method          Method  `validate:"oneof=auto smoothing moving_average"` // Restrict the contest to one method (default: auto)
	ConfidenceLevel float64 `validate:"gt=0,lt=1"`                             // Level of the projection band (default: 0.95)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		HoldoutFraction: 0.3,
		Method:          Auto,
		ConfidenceLevel: 0.95,
	}
}

var validate = validator.New()

func (c *Config) check() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid forecast config: %w", err)
	}
	return nil
}
