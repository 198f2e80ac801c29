package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16 // 22 chars base64url
	TokenSize256 = 32 // 43 chars base64url
)

// GenerateToken returns size random bytes as an unpadded base64url string.
// Access tokens, refresh tokens and client secrets all come from here.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is GenerateToken for contexts where failure is unrecoverable.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// FingerprintToken is the deterministic SHA-256 (base64url, 43 chars) of a
// token. The store only ever sees fingerprints so a leaked database does not
// leak usable bearer tokens.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// EqualTokens compares two secrets in constant time with respect to their
// content. Both sides are fingerprinted first so the length is not leaked either.
func EqualTokens(a, b string) bool {
	fa := sha256.Sum256([]byte(a))
	fb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(fa[:], fb[:]) == 1
}
