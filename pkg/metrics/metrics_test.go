package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("slotpicker-test")

	m.ObserveFetch(FetchOutcomeSuccess)
	m.ObserveFetch(FetchOutcomeDiscarded)
	m.ObserveFetch(FetchOutcomeDiscarded)
	m.ObserveSelection("date")
	m.SetActiveSessions(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityFetchesTotal.WithLabelValues(FetchOutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AvailabilityFetchesTotal.WithLabelValues(FetchOutcomeDiscarded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SelectionEventsTotal.WithLabelValues("date")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestMetrics_NewIsIsolated(t *testing.T) {
	// Каждый экземпляр использует свой registry, повторное создание не паникует
	first := New("a")
	second := New("b")

	first.ObserveFetch(FetchOutcomeFailure)
	assert.Equal(t, 0.0, testutil.ToFloat64(second.AvailabilityFetchesTotal.WithLabelValues(FetchOutcomeFailure)))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("slotpicker-test")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/sessions/{sessionId}", "200", 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `service="slotpicker-test"`)
}
