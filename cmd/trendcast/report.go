package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/trendcast/forecast"
	"github.com/sartorproj/trendcast/timeseries"
)

// Report is the printed outcome of one run.
type Report struct {
	ID              string                       `json:"id" yaml:"id"`
	Series          string                       `json:"series,omitempty" yaml:"series,omitempty"`
	Backend         string                       `json:"backend" yaml:"backend"`
	Method          string                       `json:"method" yaml:"method"`
	Period          int                          `json:"period" yaml:"period"`
	Points          int                          `json:"points" yaml:"points"`
	Horizon         int                          `json:"horizon" yaml:"horizon"`
	ProbabilityUp   float64                      `json:"probability_up" yaml:"probability_up"`
	ConfidenceLevel float64                      `json:"confidence_level" yaml:"confidence_level"`
	Projection      []float64                    `json:"projection" yaml:"projection"`
	Intervals       []IntervalReport             `json:"intervals" yaml:"intervals"`
	Holdout         AccuracyReport               `json:"holdout" yaml:"holdout"`
	Summary         SummaryReport                `json:"summary" yaml:"summary"`
	Candidates      map[string][]CandidateReport `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// IntervalReport is a rounded confidence band around one projected value.
type IntervalReport struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// AccuracyReport holds the rounded holdout errors of the winning candidate.
type AccuracyReport struct {
	Points int     `json:"points" yaml:"points"`
	MSE    float64 `json:"mse" yaml:"mse"`
	RMSE   float64 `json:"rmse" yaml:"rmse"`
	MAE    float64 `json:"mae" yaml:"mae"`
	MAPE   float64 `json:"mape" yaml:"mape"`
}

// SummaryReport describes the input series.
type SummaryReport struct {
	Start string  `json:"start,omitempty" yaml:"start,omitempty"`
	End   string  `json:"end,omitempty" yaml:"end,omitempty"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Std   float64 `json:"std" yaml:"std"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// CandidateReport is one rounded candidate sequence of the training prefix.
type CandidateReport struct {
	Period int       `json:"period" yaml:"period"`
	Values []float64 `json:"values" yaml:"values"`
}

// ErrNonFinite is returned when a value to report overflowed to an infinity
// or NaN. Neither decimal nor JSON can represent it.
var ErrNonFinite = errors.New("value is not finite")

// NewReport rounds result and the series summary to precision decimal places.
// It fails with ErrNonFinite when any reported value is not finite.
func NewReport(id uuid.UUID, req *Request, series *timeseries.Series, result *forecast.Result, precision int32) (*Report, error) {
	var bad string
	round := func(field string, v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if bad == "" {
				bad = field
			}
			return v
		}
		return decimal.NewFromFloat(v).Round(precision).InexactFloat64()
	}
	roundAll := func(field string, values []float64) []float64 {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = round(field, v)
		}
		return out
	}

	report := &Report{
		ID:              id.String(),
		Series:          req.Name,
		Backend:         result.Backend,
		Method:          string(result.Method),
		Period:          result.Period,
		Points:          len(req.Values),
		Horizon:         req.Horizon,
		ProbabilityUp:   round("probability_up", result.ProbabilityUp),
		ConfidenceLevel: req.ConfidenceLevel,
		Projection:      roundAll("projection", result.Projection),
		Intervals:       make([]IntervalReport, len(result.Intervals)),
		Holdout: AccuracyReport{
			Points: result.Accuracy.Points,
			MSE:    round("holdout.mse", result.Accuracy.MSE),
			RMSE:   round("holdout.rmse", result.Accuracy.RMSE),
			MAE:    round("holdout.mae", result.Accuracy.MAE),
			MAPE:   round("holdout.mape", result.Accuracy.MAPE),
		},
		Summary: SummaryReport{
			Mean: round("summary.mean", series.Mean()),
			Std:  round("summary.std", series.Std()),
			Min:  round("summary.min", series.Min()),
			Max:  round("summary.max", series.Max()),
		},
		Candidates: map[string][]CandidateReport{},
	}
	if n := len(series.Timestamps); n > 0 {
		report.Summary.Start = series.Timestamps[0].Format(time.DateOnly)
		report.Summary.End = series.Timestamps[n-1].Format(time.DateOnly)
	}
	for i, iv := range result.Intervals {
		report.Intervals[i] = IntervalReport{Lower: round("intervals", iv.Lower), Upper: round("intervals", iv.Upper)}
	}

	for method, byPeriod := range map[forecast.Method]map[int][]float64{
		forecast.MovingAverage: result.MovingAverages,
		forecast.Smoothing:     result.Smoothings,
	} {
		periods := make([]int, 0, len(byPeriod))
		for p := range byPeriod {
			periods = append(periods, p)
		}
		sort.Ints(periods)
		for _, p := range periods {
			report.Candidates[string(method)] = append(report.Candidates[string(method)],
				CandidateReport{Period: p, Values: roundAll("candidates."+string(method), byPeriod[p])})
		}
	}

	if bad != "" {
		return nil, fmt.Errorf("cannot report %s: %w", bad, ErrNonFinite)
	}
	return report, nil
}

// Encode writes the report to w as json or yaml.
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
