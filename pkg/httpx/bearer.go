package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/sso/pkg/cryptox"
)

// BearerPrefix is matched case-sensitively.
const BearerPrefix = "Bearer "

// BearerToken extracts the credential from an Authorization header. It
// reports false when the header is missing, uses any other scheme or
// capitalisation, or carries an empty token.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(authz[len(BearerPrefix):])
	return token, token != ""
}

// SetBearerChallenge sets the RFC 6750 challenge that must accompany every
// 401 from a bearer protected endpoint.
func SetBearerChallenge(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="`+realm+`"`)
}

// RequireAdminToken guards the administrative API with a static bearer token.
// An empty configured token disables the API entirely.
func RequireAdminToken(token, realm string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				writeError(w, http.StatusNotFound, "not_found", "")
				return
			}

			presented, ok := BearerToken(r)
			if !ok || !cryptox.EqualTokens(presented, token) {
				SetBearerChallenge(w, realm)
				writeError(w, http.StatusUnauthorized, "invalid_token", "admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
