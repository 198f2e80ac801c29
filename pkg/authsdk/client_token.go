package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token is invalidated by the server.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/oauth2/refresh", RefreshRequest{
		RefreshToken: refreshToken,
	}, nil)
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// RevokeToken revokes an access or refresh token belonging to clientID.
// hint may be "access_token", "refresh_token" or empty. The server answers
// 200 whether or not the token existed.
func (c *SDKClient) RevokeToken(ctx context.Context, clientID, clientSecret, token, hint string) error {
	data := url.Values{
		"token":         {token},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}
	if hint != "" {
		data.Set("token_type_hint", hint)
	}

	resp, err := c.doForm(ctx, "/v1/oauth2/revoke", data)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// GetUserInfo returns the identity claims of the user owning accessToken.
func (c *SDKClient) GetUserInfo(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/oauth2/userinfo", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, err
	}

	var info UserInfoResponse
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}

	return &info, nil
}
