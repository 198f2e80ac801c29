package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// SessionRefresher rotates a refresh token into a new pair.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (service.Session, error)
}

// RefreshHandler serves POST /v1/oauth2/refresh.
type RefreshHandler struct {
	Tokens  SessionRefresher
	Metrics *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Refresh a session
//	@Description	Exchanges a refresh token for a new access and refresh token pair.
//	@Description	The presented refresh token stops working once it has been used.
//	@Tags			OAuth2
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.RefreshResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"missing refresh_token or unreadable body"
//	@Failure		401		{object}	authsdk.ErrorResponse	"refresh token unknown, expired or already used"
//	@Failure		405		{object}	authsdk.ErrorResponse
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/v1/oauth2/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	params, err := readParams(w, r)
	if err != nil {
		log.Debug("unreadable refresh body", "err", err)
		h.Metrics.TokenOp(metrics.OpRefresh, metrics.OutcomeInvalidReq)
		paramsError(err).WriteError(w)
		return
	}

	refreshToken := strings.TrimSpace(params.Get("refresh_token"))
	if refreshToken == "" {
		h.Metrics.TokenOp(metrics.OpRefresh, metrics.OutcomeInvalidReq)
		authsdk.ErrMissingRefreshToken.WriteError(w)
		return
	}

	sess, err := h.Tokens.RefreshSession(ctx, refreshToken)
	switch {
	case errors.Is(err, service.ErrInvalidRefresh):
		log.Info("refresh rejected", "err", err, slogx.Token("refresh_token", refreshToken))
		h.Metrics.TokenOp(metrics.OpRefresh, metrics.OutcomeInvalidToken)
		authsdk.ErrInvalidToken.WriteError(w)
		return
	case err != nil:
		log.Error("refresh failed", "err", err)
		h.Metrics.TokenOp(metrics.OpRefresh, metrics.OutcomeServerError)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	h.Metrics.TokenOp(metrics.OpRefresh, metrics.OutcomeOK)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}
