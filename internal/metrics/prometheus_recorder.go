package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	fixerDuration    *prom.HistogramVec
	documentDuration prom.Histogram
	runDuration      prom.Histogram
	fixerFired       *prom.CounterVec
	documentResults  *prom.CounterVec
	workerCount      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.fixerDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "doxfix",
			Name:      "fixer_duration_seconds",
			Help:      "Duration of individual fixer applications",
			Buckets:   prom.DefBuckets,
		}, []string{"fixer"})
		pr.documentDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doxfix",
			Name:      "document_duration_seconds",
			Help:      "Total per-document postprocessing duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doxfix",
			Name:      "run_duration_seconds",
			Help:      "Total postprocessing run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.fixerFired = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doxfix",
			Name:      "fixer_fired_total",
			Help:      "Count of fixer applications that changed a document",
		}, []string{"fixer"})
		pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doxfix",
			Name:      "document_results_total",
			Help:      "Document results by outcome",
		}, []string{"result"})
		pr.workerCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: "doxfix",
			Name:      "worker_count",
			Help:      "Worker pool size for the last postprocessing run",
		})
		reg.MustRegister(pr.fixerDuration, pr.documentDuration, pr.runDuration, pr.fixerFired, pr.documentResults, pr.workerCount)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveFixerDuration(fixer string, d time.Duration) {
	if p == nil || p.fixerDuration == nil {
		return
	}
	p.fixerDuration.WithLabelValues(fixer).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFixerFired(fixer string) {
	if p == nil || p.fixerFired == nil {
		return
	}
	p.fixerFired.WithLabelValues(fixer).Inc()
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetWorkerCount(n int) {
	if p == nil || p.workerCount == nil {
		return
	}
	p.workerCount.Set(float64(n))
}
