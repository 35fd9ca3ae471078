// Package metrics exposes forecast activity as prometheus metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements forecast.Recorder using prometheus.
type Recorder struct {
	forecasts *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	periods   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	backend   *prometheus.GaugeVec
}

// New creates a recorder whose collectors are registered with reg. A nil reg
// uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		forecasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendcast_forecasts_total",
				Help: "Total number of completed forecasts",
			},
			[]string{"backend", "method"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendcast_forecast_duration_seconds",
				Help:    "Duration of forecast calls in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"backend"},
		),
		periods: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendcast_selected_period_total",
				Help: "Number of times each window period won the selection",
			},
			[]string{"period"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendcast_rejected_total",
				Help: "Forecast calls rejected before running",
			},
			[]string{"reason"},
		),
		backend: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trendcast_backend_info",
				Help: "Backend resolved at startup (1 for the active backend)",
			},
			[]string{"backend"},
		),
	}
}

// ObserveForecast records a completed forecast.
func (r *Recorder) ObserveForecast(backend, method string, period int, elapsed time.Duration) {
	r.forecasts.WithLabelValues(backend, method).Inc()
	r.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
	r.periods.WithLabelValues(strconv.Itoa(period)).Inc()
}

// ObserveRejected records a forecast rejected for reason.
func (r *Recorder) ObserveRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

// SetBackend marks name as the active backend.
func (r *Recorder) SetBackend(name string) {
	r.backend.Reset()
	r.backend.WithLabelValues(name).Set(1)
}
