package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
)

// Pinger is satisfied by the identity store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe reporting whether the identity store is reachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Truncate(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
