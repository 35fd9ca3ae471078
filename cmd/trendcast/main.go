// Command trendcast forecasts a numeric series from a CSV file or an inline
// list and prints the selected method, projection and up-move probability.
//
// Usage:
//
//	trendcast --csv data/hsales.csv --column y --horizon 12
//	trendcast --values 1,2,3,4,5,6,7,8,9,10 --horizon 3 --format yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"

	"github.com/sartorproj/trendcast/backend"
	"github.com/sartorproj/trendcast/config"
	"github.com/sartorproj/trendcast/forecast"
	"github.com/sartorproj/trendcast/logging"
	"github.com/sartorproj/trendcast/metrics"
)

type options struct {
	configPath  string
	envFile     string
	csvPath     string
	column      string
	values      string
	horizon     int
	method      string
	confidence  float64
	format      string
	accelerator string
	last        int
	metrics     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "trendcast: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("trendcast", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.StringVar(&opts.csvPath, "csv", "", "CSV file holding the series")
	flags.StringVar(&opts.column, "column", "y", "CSV column holding the values")
	flags.StringVar(&opts.values, "values", "", "comma separated series values")
	flags.IntVar(&opts.horizon, "horizon", 5, "number of projected values")
	flags.StringVar(&opts.method, "method", "", "auto, smoothing or moving_average (default from config)")
	flags.Float64Var(&opts.confidence, "confidence", 0, "confidence level of the intervals (default from config)")
	flags.StringVar(&opts.format, "format", "", "output format, json or yaml (default from config)")
	flags.StringVar(&opts.accelerator, "accelerator", "", "accelerator backend to probe (default from config)")
	flags.IntVar(&opts.last, "last", 0, "forecast only the last n observations (0 = all)")
	flags.BoolVar(&opts.metrics, "metrics", false, "print collected metrics to stderr on exit")

	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, flags, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", opts.envFile, err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if flags.Changed("accelerator") {
		cfg.Backend.Accelerator = opts.accelerator
	}
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(opts.format)
	}

	logger, err := logging.NewWithOutput(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}

	runID := uuid.New()
	log := logger.WithField("run_id", runID.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.ProbeTimeout)
	b := backend.Resolve(ctx, cfg.Backend.Accelerator, logger)
	cancel()

	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)
	recorder.SetBackend(b.Name())
	if opts.metrics {
		defer dumpMetrics(registry, stderr)
	}

	if opts.horizon < 1 {
		return &LimitError{Field: "horizon", Value: opts.horizon, Min: 1, Max: cfg.Limits.MaxHorizon}
	}

	series, err := loadSeries(opts.csvPath, opts.column, opts.values)
	if err != nil {
		return err
	}
	if opts.last > 0 {
		series = series.Tail(opts.last)
	}

	req := &Request{
		Name:            series.Name,
		Values:          series.Values,
		Horizon:         opts.horizon,
		Method:          cfg.Forecast.Method,
		ConfidenceLevel: cfg.Forecast.ConfidenceLevel,
	}
	if flags.Changed("method") {
		req.Method = opts.method
	}
	if flags.Changed("confidence") {
		if opts.confidence <= 0 {
			return fmt.Errorf("invalid request: --confidence must be between 0.5 and 0.99, got %v", opts.confidence)
		}
		req.ConfidenceLevel = opts.confidence
	}
	if err := ReadAndValidateRequest(req, cfg.Limits); err != nil {
		recorder.ObserveRejected("limits")
		return err
	}

	engineConfig := cfg.Engine()
	engineConfig.ConfidenceLevel = req.ConfidenceLevel
	if engineConfig.Method, err = forecast.ParseMethod(req.Method); err != nil {
		return err
	}

	engine, err := forecast.NewEngine(b, engineConfig, logger, recorder)
	if err != nil {
		return err
	}

	result, err := engine.Forecast(series, req.Horizon)
	if err != nil {
		return err
	}
	log.WithField("method", result.Method).WithField("period", result.Period).Info("forecast ready")

	report, err := NewReport(runID, req, series, result, cfg.Output.Precision)
	if err != nil {
		return err
	}
	return report.Encode(stdout, cfg.Output.Format)
}

func dumpMetrics(gatherer prometheus.Gatherer, w io.Writer) {
	families, err := gatherer.Gather()
	if err != nil {
		fmt.Fprintf(w, "trendcast: gather metrics: %v\n", err)
		return
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			fmt.Fprintf(w, "trendcast: encode metrics: %v\n", err)
			return
		}
	}
}
