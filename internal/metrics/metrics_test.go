package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMutationCounter(t *testing.T) {
	m := New()

	m.Mutation("create", OutcomeSuccess)
	m.Mutation("create", OutcomeSuccess)
	m.Mutation("eaten", OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("eaten", OutcomeNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.mutations.WithLabelValues("delete", OutcomeError)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Mutation("create", OutcomeSuccess)
	m.ListDuration("people", time.Second)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ListDuration("people", 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "zombies_list_duration_seconds")
}
