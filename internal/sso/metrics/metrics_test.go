package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sso/internal/sso/metrics"
)

func TestTokenOpAndHandler(t *testing.T) {
	m := metrics.New()
	m.TokenOp(metrics.OpRevoke, metrics.OutcomeNoop)
	m.TokenOp(metrics.OpRevoke, metrics.OutcomeNoop)
	m.TokenOp(metrics.OpRefresh, metrics.OutcomeOK)

	expected := `
# HELP sso_token_operations_total Token lifecycle operations by outcome.
# TYPE sso_token_operations_total counter
sso_token_operations_total{operation="refresh",outcome="ok"} 1
sso_token_operations_total{operation="revoke",outcome="noop"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"sso_token_operations_total"))

	h := m.Instrument("/v1/oauth2/revoke")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/oauth2/revoke", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(body), `sso_http_request_duration_seconds_count{code="401",method="POST",route="/v1/oauth2/revoke"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.TokenOp(metrics.OpRefresh, metrics.OutcomeOK)

	called := false
	h := m.Instrument("/x")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	require.True(t, called)
}
