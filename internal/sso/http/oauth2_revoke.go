package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// ClientValidator authenticates a confidential client.
type ClientValidator interface {
	Validate(ctx context.Context, clientID, clientSecret string) (domain.Client, error)
}

// TokenRevoker deletes a token owned by a client.
type TokenRevoker interface {
	Revoke(ctx context.Context, clientID, token, hint string) (int64, error)
}

// revokeRequest is the normalised revocation input, whichever encoding the
// caller used.
type revokeRequest struct {
	Token         string
	TokenTypeHint string
	ClientID      string
	ClientSecret  string
	basicAuth     bool
}

func parseRevokeRequest(w http.ResponseWriter, r *http.Request) (revokeRequest, error) {
	params, err := readParams(w, r)
	if err != nil {
		return revokeRequest{}, err
	}

	req := revokeRequest{
		Token:         strings.TrimSpace(params.Get("token")),
		TokenTypeHint: params.Get("token_type_hint"),
		ClientID:      params.Get("client_id"),
		ClientSecret:  params.Get("client_secret"),
	}

	// RFC 7009 §2.1: credentials may travel in the Authorization header.
	if id, secret, ok := r.BasicAuth(); ok {
		req.ClientID, req.ClientSecret, req.basicAuth = id, secret, true
	}
	return req, nil
}

// RevokeHandler serves POST /v1/oauth2/revoke following RFC 7009. The token
// is revoked only for the authenticated client, and the answer is 200 with
// an empty body whether or not anything matched.
type RevokeHandler struct {
	Clients ClientValidator
	Tokens  TokenRevoker
	Metrics *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Revocation Endpoint
//	@Description	Revokes an access or refresh token issued to the calling client (RFC 7009).
//	@Description	The token is tried as an access token first and as a refresh token only when nothing matched;
//	@Description	token_type_hint=refresh_token reverses the order. Unknown tokens still answer 200.
//	@Tags			OAuth2
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	authsdk.RevokeRequest	true	"Token and client credentials"
//	@Success		200		"Token revoked (or was already unknown)"
//	@Failure		400		{object}	authsdk.ErrorResponse	"missing token or client credentials"
//	@Failure		401		{object}	authsdk.ErrorResponse	"client authentication failed"
//	@Failure		405		{object}	authsdk.ErrorResponse
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/v1/oauth2/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req, err := parseRevokeRequest(w, r)
	if err != nil {
		log.Debug("unreadable revoke body", "err", err)
		h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeInvalidReq)
		paramsError(err).WriteError(w)
		return
	}

	if req.Token == "" {
		h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeInvalidReq)
		authsdk.ErrMissingToken.WriteError(w)
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeInvalidReq)
		authsdk.ErrMissingClientCredentials.WriteError(w)
		return
	}

	if _, err := h.Clients.Validate(ctx, req.ClientID, req.ClientSecret); err != nil {
		if errors.Is(err, service.ErrInvalidClient) {
			log.Warn("revoke client authentication failed", "client_id", req.ClientID)
			h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeInvalidClient)
			if req.basicAuth {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+bearerRealm+`"`)
			}
			authsdk.ErrInvalidClient.WriteError(w)
			return
		}
		log.Error("revoke client lookup failed", "client_id", req.ClientID, "err", err)
		h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeServerError)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	n, err := h.Tokens.Revoke(ctx, req.ClientID, req.Token, req.TokenTypeHint)
	if err != nil {
		log.Error("revoke failed", "client_id", req.ClientID, "err", err)
		h.Metrics.TokenOp(metrics.OpRevoke, metrics.OutcomeServerError)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	outcome := metrics.OutcomeOK
	if n == 0 {
		outcome = metrics.OutcomeNoop
	}
	h.Metrics.TokenOp(metrics.OpRevoke, outcome)
	log.Info("token revoked",
		"client_id", req.ClientID,
		"hint", req.TokenTypeHint,
		"rows", n,
		slogx.Token("token", req.Token),
	)

	httpx.WriteEmpty(w, http.StatusOK)
}
