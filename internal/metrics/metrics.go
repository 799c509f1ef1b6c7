package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the markup and verdict engine. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Verdict transitions by stage and resulting status
	VerdictTransitions *prometheus.CounterVec

	// Evidence uploads by result: "ok", "failed", "compensated"
	EvidenceUploads *prometheus.CounterVec

	EvidenceUploadLatency prometheus.Histogram

	// Committed strokes by kind
	StrokesCommitted *prometheus.CounterVec

	StrokesErased prometheus.Counter

	PageRenderLatency prometheus.Histogram
}

// New registers every engine metric on a private registry so several
// instances can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		VerdictTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qi_verdict_transitions_total",
			Help: "Total persisted verdict transitions by stage and status",
		}, []string{"stage", "status"}),

		EvidenceUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qi_evidence_uploads_total",
			Help: "Total evidence uploads by result",
		}, []string{"result"}),

		EvidenceUploadLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "qi_evidence_upload_duration_seconds",
			Help:    "Duration of single evidence uploads",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		StrokesCommitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qi_strokes_committed_total",
			Help: "Total strokes committed to an annotation set by kind",
		}, []string{"kind"}),

		StrokesErased: factory.NewCounter(prometheus.CounterOpts{
			Name: "qi_strokes_erased_total",
			Help: "Total strokes removed by the eraser",
		}),

		PageRenderLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "qi_page_render_duration_seconds",
			Help:    "Duration of page bitmap rendering, cache misses only",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncrementVerdictTransition(stage, status string) {
	if m != nil {
		m.VerdictTransitions.WithLabelValues(stage, status).Inc()
	}
}

func (m *Metrics) IncrementEvidenceUpload(result string) {
	if m != nil {
		m.EvidenceUploads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveEvidenceUploadLatency(d time.Duration) {
	if m != nil {
		m.EvidenceUploadLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementStrokesCommitted(kind string) {
	if m != nil {
		m.StrokesCommitted.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementStrokesErased() {
	if m != nil {
		m.StrokesErased.Inc()
	}
}

func (m *Metrics) ObservePageRenderLatency(d time.Duration) {
	if m != nil {
		m.PageRenderLatency.Observe(d.Seconds())
	}
}

// Gatherer exposes the private registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// WriteTextfile dumps the current values in the node_exporter textfile
// format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
