// Package observable provides wrapper components for instrumenting command and query handlers
// with metrics, tracing and logging while keeping the handlers free of observability code.
//
// # Core Principle: External Wrapping
//
// The wrappers are applied at wiring time, not hidden inside handler constructors:
//
//	// 1. Create the plain handler
//	coreHandler := createloan.NewCommandHandler(store)
//
//	// 2. Wrap it
//	handler, err := observable.NewCommandWrapper[createloan.Command](
//		coreHandler,
//		observable.WithCommandMetrics[createloan.Command](metricsCollector),
//		observable.WithCommandTracing[createloan.Command](tracingCollector),
//		observable.WithCommandContextualLogging[createloan.Command](contextualLogger),
//	)
//
//	// 3. Use the wrapped handler
//	result, err := handler.Handle(ctx, command)
//
// Every option is optional. For unit tests of business behavior use the plain handlers.
//
// Business rule rejections (not found, conflict, validation) are recorded with status
// "rejected" and logged at INFO level, technical failures with status "error" at ERROR level.
// A successful command whose result carries a warning is logged at WARN level.
package observable
