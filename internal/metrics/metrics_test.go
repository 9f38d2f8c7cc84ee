package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbportal/internal/domain"
)

func TestObserveOperationOutcomes(t *testing.T) {
	m := New(nil)

	m.ObserveOperation("rename", nil)
	m.ObserveOperation("rename", &domain.ValidationError{Message: "blank", Missing: true})
	m.ObserveOperation("delete", &domain.NotFoundError{Message: "gone"})
	m.ObserveOperation("ingest", &domain.InvalidOperationError{Message: "busy"})
	m.ObserveOperation("ingest", errors.New("disk full"))

	body := scrape(t, m)
	for _, line := range []string{
		`kbportal_operations_total{operation="rename",outcome="ok"} 1`,
		`kbportal_operations_total{operation="rename",outcome="validation"} 1`,
		`kbportal_operations_total{operation="delete",outcome="not_found"} 1`,
		`kbportal_operations_total{operation="ingest",outcome="invalid"} 1`,
		`kbportal_operations_total{operation="ingest",outcome="error"} 1`,
	} {
		assert.Contains(t, body, line)
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(func() int { return 7 })
	m.ObserveIngested()
	m.ObservePersist(3*time.Millisecond, nil)

	body := scrape(t, m)
	assert.Contains(t, body, "kbportal_nodes 7")
	assert.Contains(t, body, "kbportal_ingested_files_total 1")
	assert.Contains(t, body, `kbportal_persist_duration_seconds_count{outcome="ok"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("rename", nil)
		m.ObservePersist(time.Second, nil)
		m.ObserveIngested()
	})
}
