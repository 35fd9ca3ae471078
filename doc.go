// Package trendcast forecasts short numeric series by letting simple smoothers
// compete on a holdout.
//
// Every forecast splits the series, builds moving averages and double
// exponential smoothings of the training prefix for a fixed set of window
// periods, keeps the candidate with the lowest mean squared error against the
// holdout and re-runs it over the full series. A Beta(1,1) posterior over the
// recent up moves gives the probability that the series keeps rising.
//
// # Packages
//
//   - timeseries: the Series type and CSV loading
//   - backend: the numeric primitives, a float64 reference and a float32
//     accelerator, and startup resolution with fallback
//   - forecast: candidate generation, selection, projection and the Engine
//   - config: viper configuration with environment overrides
//   - logging: logrus setup
//   - metrics: prometheus recorder for forecast activity
//
// # Quick Start
//
//	result, err := forecast.Forecast(values, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Method, result.Period, result.Projection, result.ProbabilityUp)
//
// With configuration, a resolved backend and metrics:
//
//	cfg, _ := config.Load("")
//	logger, _ := logging.New(cfg.LogLevel, cfg.LogFormat)
//	b := backend.Resolve(ctx, cfg.Backend.Accelerator, logger)
//	engine, _ := forecast.NewEngine(b, cfg.Engine(), logger, metrics.New(nil))
//	result, _ := engine.Forecast(series, 12)
//
// The trendcast command in cmd/trendcast wraps the same flow for CSV files and
// inline lists.
package trendcast
