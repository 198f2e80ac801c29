package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process serves requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Truncate(time.Second).String(),
			Version: version,
		})
	}
}
