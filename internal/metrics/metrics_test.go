package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementVerdictTransition("documental", "approved")
		m.IncrementEvidenceUpload("ok")
		m.ObserveEvidenceUploadLatency(time.Second)
		m.IncrementStrokesCommitted("pencil")
		m.IncrementStrokesErased()
		m.ObservePageRenderLatency(time.Second)
	})
	require.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "qi.prom")))
}

func TestCountersAccumulate(t *testing.T) {
	t.Parallel()

	m := New()
	m.IncrementVerdictTransition("physical", "rejected")
	m.IncrementVerdictTransition("physical", "rejected")
	m.IncrementStrokesCommitted("highlight")
	m.IncrementStrokesErased()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VerdictTransitions.WithLabelValues("physical", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StrokesCommitted.WithLabelValues("highlight")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StrokesErased))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.IncrementEvidenceUpload("ok")

	path := filepath.Join(t.TempDir(), "qi.prom")
	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `qi_evidence_uploads_total{result="ok"} 1`)
}
