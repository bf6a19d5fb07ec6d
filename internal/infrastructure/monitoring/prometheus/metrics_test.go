package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voracio/sheetsense/internal/domain/attribute"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveResolution(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveResolution(attribute.StrategyTable, true, 3*time.Millisecond)
	m.ObserveResolution(attribute.StrategyNone, false, time.Millisecond)
	m.ObserveResolution(attribute.StrategyTable, true, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `sheetsense_resolutions_total{found="true",strategy="table"} 2`)
	assert.Contains(t, body, `sheetsense_resolutions_total{found="false",strategy="none"} 1`)
	assert.Contains(t, body, `sheetsense_resolution_duration_seconds_count{strategy="table"} 2`)
}

func TestObserveFallbackFailure(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveFallbackFailure()
	m.ObserveFallbackFailure()

	assert.Contains(t, scrape(t, m), "sheetsense_fallback_failures_total 2")
}

func TestObserveHTTPRequest(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/resolve", http.StatusOK, 10*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `sheetsense_http_requests_total{method="POST",path="/api/v1/resolve",status="200"} 1`)
}

func TestIndependentRegistries(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.ObserveResolution(attribute.StrategyLine, true, time.Millisecond)

	assert.Contains(t, scrape(t, a), "sheetsense_resolutions_total")
	assert.NotContains(t, scrape(t, b), `strategy="line"`)
}
