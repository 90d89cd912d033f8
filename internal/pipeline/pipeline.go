// Package pipeline drives the fixer sequence over the generated HTML output.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/fixers"
	"git.home.luguber.info/inful/doxfix/internal/metrics"
)

// StageErrorKind enumerates structured per-document error categories.
type StageErrorKind string

const (
	StageErrorLoad     StageErrorKind = "load"     // document could not be parsed
	StageErrorFix      StageErrorKind = "fix"      // a fixer reported an error
	StageErrorFlush    StageErrorKind = "flush"    // writing the document back failed
	StageErrorCanceled StageErrorKind = "canceled" // context cancellation
)

// StageError is a structured error carrying category, document and cause.
type StageError struct {
	Kind     StageErrorKind
	Document string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Document, e.Err)
}
func (e *StageError) Unwrap() error { return e.Err }

func newStageError(kind StageErrorKind, document string, err error) *StageError {
	return &StageError{Kind: kind, Document: document, Err: err}
}

// maxPasses bounds the fixer fixpoint loop. A correctly behaving fixer set
// converges in a handful of passes; hitting the bound means a fixer reports
// changes it does not actually make.
const maxPasses = 16

// Pipeline applies the fixer sequence to one document until a full pass
// leaves it unchanged.
type Pipeline struct {
	fixers   []fixers.Fixer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New returns a pipeline over the given fixer sequence.
func New(seq []fixers.Fixer, recorder metrics.Recorder, logger *slog.Logger) *Pipeline {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{fixers: seq, recorder: recorder, logger: logger}
}

// Run repeats the full fixer sequence until a pass changes nothing, and
// reports whether the document changed at all.
func (p *Pipeline) Run(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	for pass := 0; ; pass++ {
		if pass == maxPasses {
			p.logger.Warn("fixer sequence did not converge", "document", filename, "passes", pass)
			return changed, nil
		}
		passChanged := false
		for _, f := range p.fixers {
			t0 := time.Now()
			did, err := f.Apply(dir, filename, doc)
			p.recorder.ObserveFixerDuration(f.Name(), time.Since(t0))
			if err != nil {
				return changed, newStageError(StageErrorFix, filename, fmt.Errorf("fixer %s: %w", f.Name(), err))
			}
			if did {
				p.recorder.IncFixerFired(f.Name())
				doc.Coalesce()
				passChanged = true
			}
		}
		if !passChanged {
			return changed, nil
		}
		changed = true
	}
}
