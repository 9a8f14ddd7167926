package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveClaim(ClaimOutcomeSuccess)
	m.ObserveClaim(ClaimOutcomeSuccess)
	m.ObserveClaim(ClaimOutcomeExpired)
	m.ObserveClaimCodeIssued()
	m.ObserveRequest(http.MethodGet, "/members/", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.claims.WithLabelValues(ClaimOutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.claims.WithLabelValues(ClaimOutcomeExpired)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.claimCodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/members/", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveClaim(ClaimOutcomeError)
		m.ObserveClaimCodeIssued()
		m.ObserveRequest("GET", "/", 200, time.Second)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveClaim(ClaimOutcomeInvalid)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `parish_claim_attempts_total{outcome="invalid_code"} 1`)
}
