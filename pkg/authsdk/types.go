package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every error this service returns.
type ErrorResponse struct {
	// Error is the OAuth2 error code (e.g., "invalid_request", "invalid_token")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// RefreshRequest is the body of POST /v1/oauth2/refresh. The endpoint also
// accepts the same field form encoded.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is returned by POST /v1/oauth2/refresh and by the session
// mint endpoint of the admin API.
type RefreshResponse struct {
	// AccessToken is the opaque bearer credential
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int `json:"expires_in"`

	// RefreshToken replaces the one presented; the old one no longer works
	RefreshToken string `json:"refresh_token,omitempty"`

	// User is the principal the tokens belong to
	User RefreshUser `json:"user"`
}

// RefreshUser is the compact user projection carried in a RefreshResponse.
type RefreshUser struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// RevokeRequest is the body of POST /v1/oauth2/revoke (RFC 7009). Client
// credentials may instead be sent with HTTP Basic authentication.
type RevokeRequest struct {
	Token         string `json:"token"`
	TokenTypeHint string `json:"token_type_hint,omitempty"`
	ClientID      string `json:"client_id,omitempty"`
	ClientSecret  string `json:"client_secret,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// UserInfoResponse is the OIDC style claims set returned by
// /v1/oauth2/userinfo. Claims the identity store has no value for are
// omitted rather than sent empty.
type UserInfoResponse struct {
	Subject       string `json:"sub"`
	Email         string `json:"email,omitempty"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// CreateUserRequest is the body of POST /v1/users.
type CreateUserRequest struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// UserResponse describes a user record in the admin API.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ============================================================================
// Session Types
// ============================================================================

// CreateSessionRequest is the body of POST /v1/sessions. It is sent by the
// login front end once it has authenticated UserID for ClientID.
type CreateSessionRequest struct {
	UserID   string `json:"user_id"`
	ClientID string `json:"client_id"`
}

// ============================================================================
// Client Types
// ============================================================================

// CreateClientRequest represents the request to create a new client.
type CreateClientRequest struct {
	// Name is a human-readable name for the client
	Name string `json:"name"`

	// Confidential clients receive a secret and may call the revocation
	// endpoint.
	Confidential bool `json:"confidential"`

	// Protected clients cannot be deleted through the API.
	Protected bool `json:"protected,omitempty"`
}

// CreateClientResponse contains the created client's ID and secret (if confidential).
type CreateClientResponse struct {
	// ClientID is the unique identifier for the client
	ClientID string `json:"client_id"`

	// ClientSecret is only returned once, at creation time
	ClientSecret string `json:"client_secret,omitempty"`
}

// ClientInfo represents information about a registered client. Secrets
// never appear here.
type ClientInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Confidential bool   `json:"confidential"`
	Protected    bool   `json:"protected"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ListClientsResponse contains a list of clients.
type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the duration since the service started (e.g., "1h23m45s")
	Uptime string `json:"uptime"`

	// Version is the service build version
	Version string `json:"version"`

	// Checks is only populated by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database is "ok" or "error: <message>"
	Database string `json:"database"`
}
