// Package timeseries provides the series type consumed by the forecasting engine.
//
// # Creating Series
//
// Create a series from values:
//
//	values := []float64{100, 102, 101, 105, 108, 107, 110}
//	series := timeseries.New(values)
//
// With explicit timestamps:
//
//	series, err := timeseries.NewWithTimestamps(timestamps, values)
//
// # Validation
//
// The engine rejects empty series and series holding NaN or infinite values.
// Callers can check ahead of time:
//
//	if err := series.Validate(); err != nil {
//	    var nf *timeseries.NonFiniteError
//	    if errors.As(err, &nf) {
//	        log.Printf("bad observation at %d", nf.Index)
//	    }
//	}
//
// # Loading From CSV
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "close"
//	series, err := timeseries.LoadCSV("prices.csv", opts)
//
// Empty and NA cells are skipped; any other cell that is not a number is an
// error reporting the offending line.
package timeseries
