package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// SessionIssuer opens a session for an authenticated user at a client.
type SessionIssuer interface {
	IssueSession(ctx context.Context, userID, clientID string) (service.Session, error)
}

// SessionsHandler is where the login front end hands over a successful
// authentication and gets the first token pair back.
type SessionsHandler struct {
	Tokens  SessionIssuer
	Metrics *metrics.Metrics
}

// HandleCreate handles POST /v1/sessions
//
//	@Summary		Open a session
//	@Description	Mints the first access and refresh token pair for a user at a client.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		authsdk.CreateSessionRequest	true	"User and client"
//	@Success		201		{object}	authsdk.RefreshResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"unknown user or client"
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/v1/sessions [post].
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CreateSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeInvalidReq)
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}
	if req.UserID == "" || req.ClientID == "" {
		h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeInvalidReq)
		authsdk.ErrInvalidRequest.WithDescription("user_id and client_id are required").WriteError(w)
		return
	}

	sess, err := h.Tokens.IssueSession(ctx, req.UserID, req.ClientID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeInvalidReq)
		authsdk.ErrNotFound.WithDescription("user not found").WriteError(w)
		return
	case errors.Is(err, service.ErrClientNotFound):
		h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeInvalidReq)
		authsdk.ErrNotFound.WithDescription("client not found").WriteError(w)
		return
	case err != nil:
		log.Error("failed to issue session", "error", err)
		h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeServerError)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	h.Metrics.TokenOp(metrics.OpIssue, metrics.OutcomeOK)
	httpx.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}
