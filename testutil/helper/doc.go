// Package helper provides test doubles and fixtures shared by the lending store and library tests.
//
// The spies record what the store and the handlers report to their logger, metrics and tracing
// collectors, so tests can assert on observability output without a real backend.
package helper
