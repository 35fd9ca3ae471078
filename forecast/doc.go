// Package forecast selects a smoothing method on a holdout, projects the series
// with it and estimates the probability of the next move being up.
//
// # Basic Usage
//
// Forecast with the reference backend and default settings:
//
//	result, err := forecast.Forecast(values, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s(%d): %v, P(up)=%.2f\n",
//	    result.Method, result.Period, result.Projection, result.ProbabilityUp)
//
// With an explicit backend, configuration and logger:
//
//	engine, err := forecast.NewEngine(b, forecast.DefaultConfig(), logger, recorder)
//	result, err := engine.Forecast(series, 5)
//
// # Pipeline
//
// A forecast runs these stages in order:
//
//  1. Split: the last 30% of the series is held out.
//  2. GenerateCandidates: moving averages and smoothings of the training
//     prefix for every period in CandidatePeriods.
//  3. Select: the candidate with the lowest mean squared error against the
//     holdout wins. Ties go to the smaller period, then to Smoothing.
//  4. Project: the winning method and period are re-run over the full series
//     and the first horizon values are returned.
//  5. ProbabilityUp: the Beta(1,1) posterior mean of the share of up moves in
//     the last horizon steps.
//
// The winner's errors on the holdout are reported in Result.Accuracy.
//
// Smoothing uses fixed constants (alpha 0.2, beta 0.1) and ignores the period
// except to return inputs shorter than the period unchanged. Smoothing
// candidates of different periods are therefore often identical and are
// separated only by the period tie-break.
//
// A NaN score counts as +Inf. When every candidate's error overflows to +Inf,
// all scores tie and the smallest period wins with Smoothing.
//
// # Errors
//
// Empty series, NaN or infinite values and horizons below one fail with an
// *InvalidInputError matching ErrInvalidInput:
//
//	if errors.Is(err, forecast.ErrInvalidInput) {
//	    // reject the request
//	}
package forecast
