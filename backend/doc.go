// Package backend defines the numeric contract behind the forecasting pipeline.
//
// Every primitive the pipeline needs (moving average, smoothing, split, mean
// squared error, binarization and the Bayesian up-probability) sits behind the
// Backend interface. Two implementations ship with the package:
//
//   - Reference: float64, the behaviour every other backend is measured against
//   - Float32: the same contract computed in single precision
//
// # Selecting a Backend
//
// Accelerators register a Probe under a name, usually from init:
//
//	func init() {
//	    backend.Register("cuda", func(ctx context.Context) (backend.Backend, error) {
//	        return openDevice(ctx)
//	    })
//	}
//
// The process resolves its backend once at startup and injects it into the
// forecasting engine:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
//	defer cancel()
//	b := backend.Resolve(ctx, cfg.Backend.Accelerator, logger)
//	engine, err := forecast.NewEngine(b, forecast.DefaultConfig(), logger, nil)
//
// Resolve never fails. An accelerator that is not registered, or whose probe
// returns an error, is logged as a warning and Reference is used instead.
//
// # Precision
//
// Accelerated backends may compute in single precision. For identical input
// their per-period sequences must match Reference within 1e-3 absolute for
// well-scaled data, with the same shapes and element counts.
package backend
