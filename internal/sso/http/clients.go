package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// ClientsHandler handles the client registration endpoints of the admin API.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Register a client
//	@Description	Registers an application that shares sessions through this service.
//	@Description	Confidential clients get a secret, returned once, that authenticates revocation calls.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		authsdk.CreateClientRequest		true	"Client creation request"
//	@Success		201		{object}	authsdk.CreateClientResponse	"client_id and client_secret (if confidential)"
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CreateClientRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		authsdk.ErrInvalidRequest.WithDescription("client name is required").WriteError(w)
		return
	}

	client, secret, err := h.ClientService.CreateClient(ctx, req.Name, req.Confidential, req.Protected)
	if err != nil {
		log.Error("failed to create client", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	// The secret is only ever returned here.
	httpx.WriteJSON(w, http.StatusCreated, authsdk.CreateClientResponse{
		ClientID:     client.ID,
		ClientSecret: secret,
	})
}

// HandleList handles GET /v1/clients
//
//	@Summary		List clients
//	@Description	Returns all registered clients. Protected clients are flagged.
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{object}	authsdk.ListClientsResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		500	{object}	authsdk.ErrorResponse
//	@Router			/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clients, err := h.ClientService.ListClients(ctx)
	if err != nil {
		log.Error("failed to list clients", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	resp := authsdk.ListClientsResponse{Clients: make([]authsdk.ClientInfo, len(clients))}
	for i, c := range clients {
		resp.Clients[i] = clientInfo(c)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary		Delete a client
//	@Description	Deletes a client and every token issued to it. Protected clients cannot be deleted.
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminToken
//	@Param			id	path	string	true	"Client ID (ULID)"
//	@Success		204	"Client deleted"
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		403	{object}	authsdk.ErrorResponse	"client is protected"
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Failure		500	{object}	authsdk.ErrorResponse
//	@Router			/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clientID := r.PathValue("id")

	err := h.ClientService.DeleteClient(ctx, clientID)
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		authsdk.ErrNotFound.WithDescription("client not found").WriteError(w)
		return
	case errors.Is(err, service.ErrClientProtected):
		httpx.WriteJSON(w, http.StatusForbidden, authsdk.ErrorResponse{
			Error:            "client_protected",
			ErrorDescription: "cannot delete protected client",
		})
		return
	case err != nil:
		log.Error("failed to delete client", "error", err, "client_id", clientID)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteEmpty(w, http.StatusNoContent)
}
