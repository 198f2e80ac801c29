package authsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// refreshBuffer is subtracted from expires_in so the access token is
// refreshed before the server would reject it.
const refreshBuffer = 30 * time.Second

// ErrNoRefreshToken is returned when a session needs a refresh token it does not hold.
var ErrNoRefreshToken = errors.New("no refresh token available")

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when needed.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         RefreshUser
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, resp *RefreshResponse) *Session {
	s := &Session{client: client}
	s.apply(resp)
	return s
}

// apply stores the tokens of resp. Callers hold s.mu or own s exclusively.
func (s *Session) apply(resp *RefreshResponse) {
	s.accessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		s.refreshToken = resp.RefreshToken
	}
	s.expiresAt = s.client.clock().Now().Add(time.Duration(resp.ExpiresIn)*time.Second - refreshBuffer)
	if resp.User.ID != "" {
		s.user = resp.User
	}
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.client.clock().Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	// Token expired, need to refresh
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if s.client.clock().Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired: %w", ErrNoRefreshToken)
	}

	resp, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.apply(resp)

	return s.accessToken, nil
}

// GetUserInfo returns the claims of the session's user, refreshing the
// access token first when it is about to expire.
func (s *Session) GetUserInfo(ctx context.Context) (*UserInfoResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.GetUserInfo(ctx, token)
}

// Revoke revokes the current refresh token, invalidating this session.
// Only the client the session was issued to can revoke it.
func (s *Session) Revoke(ctx context.Context, clientID, clientSecret string) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	return s.client.RevokeToken(ctx, clientID, clientSecret, refreshToken, "refresh_token")
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the user summary from the most recent token response.
func (s *Session) User() RefreshUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ExpiresAt is the instant after which the next call refreshes the access token.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}
