package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/metrics"
)

// maxWorkers caps the pool regardless of configuration.
const maxWorkers = 64

// Processor fans the pipeline out over every document in the output
// directory. The first failure flips the abort flag; workers already past
// the flag check finish their document, everything not yet started is
// skipped.
type Processor struct {
	pipeline *Pipeline
	workers  int
	recorder metrics.Recorder
	logger   *slog.Logger
	abort    atomic.Bool
}

// NewProcessor returns a processor running at most workers documents in
// parallel.
func NewProcessor(p *Pipeline, workers int, recorder metrics.Recorder, logger *slog.Logger) *Processor {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{pipeline: p, workers: workers, recorder: recorder, logger: logger}
}

// Run processes every HTML document directly under dir and returns the
// first error encountered.
func (p *Processor) Run(ctx context.Context, dir string) error {
	files, err := listDocuments(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		p.logger.Info("no documents to process", "dir", dir)
		return nil
	}

	workers := p.workers
	if workers < 1 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	p.recorder.SetWorkerCount(workers)

	logger := p.logger.With("run", uuid.NewString())
	logger.Info("processing documents", "count", len(files), "workers", workers)

	t0 := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, file := range files {
		g.Go(func() error {
			if p.abort.Load() {
				p.recorder.IncDocumentResult(metrics.ResultSkipped)
				return nil
			}
			select {
			case <-ctx.Done():
				p.recorder.IncDocumentResult(metrics.ResultSkipped)
				return newStageError(StageErrorCanceled, file, ctx.Err())
			default:
			}
			if err := p.processDocument(dir, file, logger); err != nil {
				p.abort.Store(true)
				p.recorder.IncDocumentResult(metrics.ResultFailed)
				return err
			}
			return nil
		})
	}
	err = g.Wait()
	p.recorder.ObserveRunDuration(time.Since(t0))
	return err
}

// processDocument runs the full pipeline on one document and writes it back
// only when every fixer succeeded and something changed.
func (p *Processor) processDocument(dir, file string, logger *slog.Logger) error {
	t0 := time.Now()
	doc, err := docmodel.Load(filepath.Join(dir, file))
	if err != nil {
		return newStageError(StageErrorLoad, file, err)
	}
	// fixers match on the lowercased name, the file on disk keeps its case
	changed, err := p.pipeline.Run(dir, strings.ToLower(file), doc)
	if err != nil {
		return err
	}
	if changed {
		if err := doc.Flush(); err != nil {
			return newStageError(StageErrorFlush, file, err)
		}
		p.recorder.IncDocumentResult(metrics.ResultFixed)
	} else {
		p.recorder.IncDocumentResult(metrics.ResultClean)
	}
	p.recorder.ObserveDocumentDuration(time.Since(t0))
	logger.Info("finished processing", "document", file, "changed", changed)
	return nil
}

// listDocuments returns the HTML files directly under dir, sorted by name.
func listDocuments(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.html", "*.htm"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing documents in %s: %w", dir, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Base(m))
		}
	}
	sort.Strings(files)
	return files, nil
}
