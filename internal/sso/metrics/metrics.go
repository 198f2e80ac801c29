// Package metrics owns the Prometheus collectors for the sso service. All
// methods are safe on a nil *Metrics so handlers can be built without them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/sso/pkg/httpx"
)

// Token operations.
const (
	OpRefresh  = "refresh"
	OpRevoke   = "revoke"
	OpUserInfo = "userinfo"
	OpIssue    = "issue"
)

// Outcomes, matching the OAuth2 error code where there is one.
const (
	OutcomeOK            = "ok"
	OutcomeNoop          = "noop"
	OutcomeInvalidReq    = "invalid_request"
	OutcomeInvalidClient = "invalid_client"
	OutcomeInvalidToken  = "invalid_token"
	OutcomeServerError   = "server_error"
)

type Metrics struct {
	registry *prometheus.Registry
	tokenOps *prometheus.CounterVec
	requests *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokenOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sso",
			Name:      "token_operations_total",
			Help:      "Token lifecycle operations by outcome.",
		}, []string{"operation", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sso",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}

	m.registry.MustRegister(
		m.tokenOps,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// TokenOp counts one token operation.
func (m *Metrics) TokenOp(op, outcome string) {
	if m == nil {
		return
	}
	m.tokenOps.WithLabelValues(op, outcome).Inc()
}

// Instrument records latency for requests served under route. The route is a
// fixed label, never the raw path, to keep cardinality bounded.
func (m *Metrics) Instrument(route string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)
			m.requests.
				WithLabelValues(route, r.Method, strconv.Itoa(sw.code)).
				Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type statusWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.code = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
