package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"

	"k8s.io/utils/clock"
)

// SDKClient is a client for the sso token service.
// It provides access to the public token endpoints and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Clock drives session expiry and polling sources. Tests swap in a
	// fake clock; nil means the real clock.
	Clock clock.WithTicker
}

// NewSDKClient creates a new sso service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Clock: clock.RealClock{},
	}
}

func (c *SDKClient) clock() clock.WithTicker {
	if c.Clock == nil {
		return clock.RealClock{}
	}
	return c.Clock
}

// AuthenticateWithRefreshToken creates an authenticated session from an existing refresh token.
// The refresh token is rotated by the server, so the one passed in stops working.
func (c *SDKClient) AuthenticateWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	resp, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return c.NewSession(resp), nil
}

// NewSession wraps a refresh response (or one returned by the admin session
// endpoint) in an auto-refreshing Session.
func (c *SDKClient) NewSession(resp *RefreshResponse) *Session {
	return newSession(c, resp)
}

// NewSessionFromTokens creates an authenticated session from existing tokens.
// This is useful when you already have tokens from a previous authentication
// (e.g., stored in a database or passed from another system).
// The session will still perform auto-refresh when the access token expires.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &RefreshResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		RefreshToken: refreshToken,
	})
}
