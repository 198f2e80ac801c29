package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/sso/pkg/httpx"
)

// ============================================================================
// OAuth2 Error Codes (RFC 6749, RFC 6750, RFC 7009)
// ============================================================================

const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidClient  = "invalid_client"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeServerError    = "server_error"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
)

// ============================================================================
// OAuth2Error - Standard OAuth2 error type
// ============================================================================

// OAuth2Error represents a standard OAuth2 error response per RFC 6749.
// It implements the error interface and can be used both by the server
// (to write HTTP responses) and by the SDK client (to represent errors).
type OAuth2Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the OAuth2 error code (e.g., "invalid_request", "invalid_token")
	Code string `json:"error"`

	// Description is a human-readable description of the error. It is left
	// out of the body when empty.
	Description string `json:"error_description,omitempty"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this OAuth2Error to an HTTP response writer.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// WithDescription returns a copy of e carrying desc.
func (e *OAuth2Error) WithDescription(desc string) *OAuth2Error {
	cp := *e
	cp.Description = desc
	return &cp
}

// IsErrorCode reports whether err is an OAuth2Error with the given code.
func IsErrorCode(err error, code string) bool {
	var oe *OAuth2Error
	return errors.As(err, &oe) && oe.Code == code
}

// ============================================================================
// Predefined OAuth2 Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter or is otherwise malformed.
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrMissingToken is returned when a token parameter is absent.
	ErrMissingToken = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "token is required",
	}

	// ErrMissingRefreshToken is returned by the refresh endpoint when the
	// body carries no refresh_token.
	ErrMissingRefreshToken = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "refresh_token is required",
	}

	// ErrMissingClientCredentials is returned when client_id or
	// client_secret is absent.
	ErrMissingClientCredentials = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "client_id and client_secret are required",
	}

	// ErrUnsupportedContentType is returned when the body is neither JSON
	// nor form encoded.
	ErrUnsupportedContentType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/json or application/x-www-form-urlencoded",
	}

	// ErrInvalidBody is returned when the body cannot be decoded.
	ErrInvalidBody = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid request body",
	}

	// ErrMissingBearer is returned when the Authorization header is absent
	// or does not use the Bearer scheme.
	ErrMissingBearer = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRequest,
		Description: "missing or malformed bearer token",
	}

	// ErrInvalidClient is returned when client authentication failed.
	ErrInvalidClient = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidClient,
		Description: "invalid client credentials",
	}

	// ErrInvalidToken is returned when a token is unknown, expired or revoked.
	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the token is invalid, expired or revoked",
	}

	// ErrServerError is returned when the server encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrNotFound is returned by the admin API for unknown resources.
	ErrNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrConflict is returned by the admin API when a resource already
	// exists or may not be changed.
	ErrConflict = &OAuth2Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource conflict",
	}
)

// NewOAuth2Error creates a new OAuth2Error with the given status code, error code, and description.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *OAuth2Error. Bodies
// that are not OAuth2 shaped fall back to a generic error built from the
// status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &OAuth2Error{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &OAuth2Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
