package metrics

import "time"

// ResultLabel enumerates per-document result categories for counters.
type ResultLabel string

const (
	ResultClean   ResultLabel = "clean"   // no fixer touched the document
	ResultFixed   ResultLabel = "fixed"   // document changed and was written back
	ResultFailed  ResultLabel = "failed"  // a fixer or the flush reported an error
	ResultSkipped ResultLabel = "skipped" // run aborted before this document started
)

// Recorder defines observability hooks for postprocessing runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveFixerDuration(fixer string, d time.Duration)
	ObserveDocumentDuration(d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncFixerFired(fixer string)
	IncDocumentResult(result ResultLabel)
	SetWorkerCount(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFixerDuration(string, time.Duration) {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration)      {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncFixerFired(string)                       {}
func (NoopRecorder) IncDocumentResult(ResultLabel)              {}
func (NoopRecorder) SetWorkerCount(int)                         {}
