package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code and
// disables caching; every body this service returns is credential-adjacent.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteEmpty writes a status code with no body, still uncached.
func WriteEmpty(w http.ResponseWriter, code int) {
	NoCache(w)
	w.WriteHeader(code)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// writeError is the minimal OAuth2-shaped error body for middleware that
// cannot depend on the SDK error types.
func writeError(w http.ResponseWriter, code int, errCode, desc string) {
	body := map[string]string{"error": errCode}
	if desc != "" {
		body["error_description"] = desc
	}
	WriteJSON(w, code, body)
}
