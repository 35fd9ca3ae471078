package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/trendcast/backend"
	"github.com/sartorproj/trendcast/forecast"
	"github.com/sartorproj/trendcast/timeseries"
)

var _ forecast.Recorder = (*Recorder)(nil)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	rec.ObserveForecast("reference", "smoothing", 14, 3*time.Millisecond)
	rec.ObserveForecast("reference", "smoothing", 3, time.Millisecond)
	rec.ObserveRejected("empty")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.forecasts.WithLabelValues("reference", "smoothing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.periods.WithLabelValues("14")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejected.WithLabelValues("empty")))
	// one label series holding both observations
	assert.Equal(t, 1, testutil.CollectAndCount(rec.duration))
	assert.Equal(t, uint64(2), histogramCount(t, reg, "trendcast_forecast_duration_seconds"))
}

func histogramCount(t *testing.T, reg prometheus.Gatherer, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var count uint64
		for _, m := range mf.GetMetric() {
			count += m.GetHistogram().GetSampleCount()
		}
		return count
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestSetBackendKeepsSingleSeries(t *testing.T) {
	rec := New(prometheus.NewRegistry())

	rec.SetBackend("float32")
	rec.SetBackend("reference")

	assert.Equal(t, 1, testutil.CollectAndCount(rec.backend))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.backend.WithLabelValues("reference")))
}

func TestRecorderWiredIntoEngine(t *testing.T) {
	rec := New(prometheus.NewRegistry())
	engine, err := forecast.NewEngine(backend.Reference(), nil, nil, rec)
	require.NoError(t, err)

	_, err = engine.Forecast(timeseries.New([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}), 3)
	require.NoError(t, err)
	_, err = engine.Forecast(timeseries.New(nil), 3)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.forecasts.WithLabelValues("reference", "smoothing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.periods.WithLabelValues("14")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejected.WithLabelValues("empty")))
}
