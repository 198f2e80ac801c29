package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// bearerRealm is sent in every authentication challenge.
const bearerRealm = "oauth"

// AccessTokenValidator resolves a bearer token to the user it was issued for.
type AccessTokenValidator interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (domain.User, error)
}

type UserInfoHandler struct {
	Tokens  AccessTokenValidator
	Metrics *metrics.Metrics
}

// ServeHTTP handles the OAuth2 UserInfo endpoint.
//
//	@Summary		Get user information
//	@Description	Returns OIDC standard claims for the user the bearer token was issued to.
//	@Description	Claims with no value are omitted.
//	@Tags			OAuth2
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfoResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, unknown or expired access token"
//	@Failure		405	{object}	authsdk.ErrorResponse
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Header			401	{string}	WWW-Authenticate	"Bearer realm=\"oauth\""
//	@Router			/v1/oauth2/userinfo [get]
//	@Router			/v1/oauth2/userinfo [post].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := httpx.BearerToken(r)
	if !ok {
		h.Metrics.TokenOp(metrics.OpUserInfo, metrics.OutcomeInvalidReq)
		httpx.SetBearerChallenge(w, bearerRealm)
		authsdk.ErrMissingBearer.WriteError(w)
		return
	}

	user, err := h.Tokens.ValidateAccessToken(ctx, token)
	switch {
	case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenExpired):
		h.Metrics.TokenOp(metrics.OpUserInfo, metrics.OutcomeInvalidToken)
		httpx.SetBearerChallenge(w, bearerRealm)
		authsdk.ErrInvalidToken.WithDescription(err.Error()).WriteError(w)
		return
	case err != nil:
		log.Error("userinfo lookup failed", "err", err)
		h.Metrics.TokenOp(metrics.OpUserInfo, metrics.OutcomeServerError)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	h.Metrics.TokenOp(metrics.OpUserInfo, metrics.OutcomeOK)
	httpx.WriteJSON(w, http.StatusOK, userInfoClaims(user))
}
