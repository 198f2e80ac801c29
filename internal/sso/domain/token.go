package domain

import "time"

// TokenPair is what the refresh and session endpoints hand back: an opaque
// access token and the opaque refresh token that can replace it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string        // typically "Bearer"
	ExpiresIn    time.Duration // access token lifetime
}

// Token models the stored token record. Both credentials are persisted as
// fingerprints; the raw values only exist in the response that issued them.
type Token struct {
	ID               string
	UserID           string
	ClientID         string
	SessionID        string // persists across refreshes
	AccessTokenHash  string // base64url SHA-256
	RefreshTokenHash string // base64url SHA-256
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}

// AccessExpired reports whether the access token is stale at now.
func (t Token) AccessExpired(now time.Time) bool {
	return !now.Before(t.AccessExpiresAt)
}

// RefreshExpired reports whether the refresh token is stale at now.
func (t Token) RefreshExpired(now time.Time) bool {
	return !now.Before(t.RefreshExpiresAt)
}
