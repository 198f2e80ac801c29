package httpx

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CORSConfig describes the permissive cross-origin policy applied to the
// public token endpoints. Any origin may call them; they are authenticated
// by credentials in the request, never by cookies.
type CORSConfig struct {
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         time.Duration
}

// DefaultCORS is used by the refresh, revoke and userinfo endpoints.
var DefaultCORS = CORSConfig{
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	ExposedHeaders: []string{"WWW-Authenticate", "X-Request-ID", "Retry-After"},
	MaxAge:         10 * time.Minute,
}

// CORS sets the cross-origin headers, Max-Age included, before the wrapped
// handler runs, so they are present on error responses too. Preflight requests are answered
// with 204 directly. Methods outside allowed (OPTIONS is always accepted)
// get a 405 with an OAuth2-shaped body.
func CORS(cfg CORSConfig, allowed ...string) Middleware {
	methods := strings.Join(append(slices.Clone(allowed), http.MethodOptions), ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", maxAge)
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions {
				WriteEmpty(w, http.StatusNoContent)
				return
			}

			if !slices.Contains(allowed, r.Method) {
				h.Set("Allow", methods)
				writeError(w, http.StatusMethodNotAllowed, "invalid_request", "method not allowed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
