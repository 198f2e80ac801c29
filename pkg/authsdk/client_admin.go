package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// AdminClient calls the admin API, authenticating every request with the
// service's admin token.
type AdminClient struct {
	client *SDKClient
	token  string
}

// Admin returns an AdminClient sharing c's transport.
func (c *SDKClient) Admin(token string) *AdminClient {
	return &AdminClient{client: c, token: token}
}

func (a *AdminClient) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.token}
}

// CreateClient registers a client. The secret in the response is only ever
// returned here.
func (a *AdminClient) CreateClient(ctx context.Context, req CreateClientRequest) (*CreateClientResponse, error) {
	resp, err := a.client.doJSON(ctx, http.MethodPost, "/v1/clients", req, a.headers())
	if err != nil {
		return nil, err
	}

	var out CreateClientResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClients returns every registered client.
func (a *AdminClient) ListClients(ctx context.Context) ([]ClientInfo, error) {
	resp, err := a.client.doRequest(ctx, http.MethodGet, "/v1/clients", nil, a.headers())
	if err != nil {
		return nil, err
	}

	var out ListClientsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

// DeleteClient removes a client and every token issued to it.
func (a *AdminClient) DeleteClient(ctx context.Context, clientID string) error {
	resp, err := a.client.doRequest(ctx, http.MethodDelete, "/v1/clients/"+url.PathEscape(clientID), nil, a.headers())
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// CreateUser creates a user profile.
func (a *AdminClient) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	resp, err := a.client.doJSON(ctx, http.MethodPost, "/v1/users", req, a.headers())
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a user profile by id.
func (a *AdminClient) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	resp, err := a.client.doRequest(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, a.headers())
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession mints a fresh token pair for userID on clientID.
func (a *AdminClient) CreateSession(ctx context.Context, userID, clientID string) (*RefreshResponse, error) {
	resp, err := a.client.doJSON(ctx, http.MethodPost, "/v1/sessions", CreateSessionRequest{
		UserID:   userID,
		ClientID: clientID,
	}, a.headers())
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
