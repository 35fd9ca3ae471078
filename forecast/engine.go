package forecast

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sartorproj/trendcast/backend"
	"github.com/sartorproj/trendcast/logging"
	"github.com/sartorproj/trendcast/timeseries"
)

// Recorder receives one observation per forecast call.
type Recorder interface {
	ObserveForecast(backend, method string, period int, elapsed time.Duration)
	ObserveRejected(reason string)
}

// Result represents the outcome of a forecast.
type Result struct {
	// Projection holds the first horizon values of the selected method re-run
	// over the full series.
	Projection []float64
	Intervals  []Interval

	// Candidates computed over the training prefix, keyed by period.
	MovingAverages map[int][]float64
	Smoothings     map[int][]float64

	ProbabilityUp float64

	// Accuracy of the winning candidate on the holdout.
	Accuracy Accuracy

	Method  Method
	Period  int
	Backend string
}

// Engine runs forecasts against a backend chosen at construction time.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	backend  backend.Backend
	config   Config
	logger   *logrus.Logger
	recorder Recorder
}

// NewEngine creates an engine. A nil backend selects backend.Reference, a nil
// config DefaultConfig and a nil logger discards output. rec may be nil.
func NewEngine(b backend.Backend, config *Config, logger *logrus.Logger, rec Recorder) (*Engine, error) {
	if b == nil {
		b = backend.Reference()
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.check(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Engine{
		backend:  b,
		config:   *config,
		logger:   logger,
		recorder: rec,
	}, nil
}

// Backend returns the backend the engine computes with.
func (e *Engine) Backend() backend.Backend {
	return e.backend
}

// Forecast projects series horizon steps using the candidate that best
// reproduces the holdout suffix.
//
// It fails with an InvalidInputError for an empty series, a non-finite value
// or a horizon below one. Every other input is handled without error.
func (e *Engine) Forecast(series *timeseries.Series, horizon int) (*Result, error) {
	start := time.Now()

	if err := e.check(series, horizon); err != nil {
		e.logger.WithError(err).WithField("horizon", horizon).Warn("forecast input rejected")
		if e.recorder != nil {
			e.recorder.ObserveRejected(rejectReason(err))
		}
		return nil, err
	}

	values := series.Copy().Values

	base, holdout, err := Split(e.backend, values, e.config.HoldoutFraction)
	if err != nil {
		return nil, err
	}

	candidates := GenerateCandidates(e.backend, base, CandidatePeriods)
	sel := Select(e.backend, holdout, candidates, CandidatePeriods, e.config.Method)
	projection := Project(e.backend, values, sel, horizon)

	result := &Result{
		Projection:     projection,
		Intervals:      Intervals(projection, values, e.config.ConfidenceLevel),
		MovingAverages: candidates.MovingAverages,
		Smoothings:     candidates.Smoothings,
		ProbabilityUp:  ProbabilityUp(e.backend, values, horizon),
		Accuracy:       HoldoutAccuracy(e.backend, holdout, candidates.Of(sel.Method, sel.Period)),
		Method:         sel.Method,
		Period:         sel.Period,
		Backend:        e.backend.Name(),
	}

	elapsed := time.Since(start)
	e.logger.WithFields(logrus.Fields{
		"backend": result.Backend,
		"method":  result.Method,
		"period":  result.Period,
		"horizon": horizon,
		"points":  len(values),
		"elapsed": elapsed,
	}).Debug("forecast complete")
	if e.recorder != nil {
		e.recorder.ObserveForecast(result.Backend, string(result.Method), result.Period, elapsed)
	}

	return result, nil
}

func (e *Engine) check(series *timeseries.Series, horizon int) *InvalidInputError {
	if err := series.Validate(); err != nil {
		return invalidSeries(err)
	}
	if horizon < 1 {
		return &InvalidInputError{Field: "horizon", Reason: fmt.Sprintf("must be at least 1, got %d", horizon)}
	}
	return nil
}

// Forecast runs values through an engine on the reference backend with the
// default configuration.
func Forecast(values []float64, horizon int) (*Result, error) {
	engine, err := NewEngine(backend.Reference(), DefaultConfig(), nil, nil)
	if err != nil {
		return nil, err
	}
	return engine.Forecast(timeseries.New(values), horizon)
}
