// Package metrics provides observability hooks for postprocessing runs.
//
// The package implements the Null Object pattern: components receive a
// Recorder through dependency injection and default to NoopRecorder, so no
// call site needs a nil check and disabled metrics cost nothing. Swapping in
// NewPrometheusRecorder activates real collection without code changes.
package metrics
