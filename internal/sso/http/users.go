package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// UsersHandler lets the login front end record the people it authenticated.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Create a user
//	@Description	Records a user profile. Every field is optional; email must be unique when given.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		authsdk.CreateUserRequest	true	"User profile"
//	@Success		201		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		409		{object}	authsdk.ErrorResponse	"email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CreateUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	user, err := h.UserService.CreateUser(ctx, domain.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		GivenName:   req.GivenName,
		FamilyName:  req.FamilyName,
		AvatarURL:   req.AvatarURL,
	})
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		authsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	case errors.Is(err, service.ErrUserExists):
		authsdk.ErrConflict.WithDescription("user already exists").WriteError(w)
		return
	case err != nil:
		log.Error("failed to create user", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse(user))
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Get a user
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminToken
//	@Param			id	path		string	true	"User ID (ULID)"
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Failure		500	{object}	authsdk.ErrorResponse
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.ErrNotFound.WithDescription("user not found").WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to load user", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}
