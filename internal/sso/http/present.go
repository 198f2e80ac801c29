package http

import (
	"strconv"
	"time"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/pkg/authsdk"
)

// defaultExpiresIn is reported when a pair carries no lifetime.
const defaultExpiresIn = 3600

func sessionResponse(s service.Session) authsdk.RefreshResponse {
	expiresIn := int(s.Tokens.ExpiresIn / time.Second)
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return authsdk.RefreshResponse{
		AccessToken:  s.Tokens.AccessToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		RefreshToken: s.Tokens.RefreshToken,
		User:         refreshUser(s.User),
	}
}

func refreshUser(u domain.User) authsdk.RefreshUser {
	return authsdk.RefreshUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name(),
		Avatar:    u.AvatarURL,
		UpdatedAt: rfc3339(u.UpdatedAt),
	}
}

// userInfoClaims projects a user onto OIDC standard claims. email_verified
// only accompanies an email: the identity provider vouches for the address
// it hands over.
func userInfoClaims(u domain.User) authsdk.UserInfoResponse {
	claims := authsdk.UserInfoResponse{
		Subject:    u.ID,
		Email:      u.Email,
		Name:       u.Name(),
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Picture:    u.AvatarURL,
	}
	if u.Email != "" {
		verified := true
		claims.EmailVerified = &verified
	}
	if !u.UpdatedAt.IsZero() {
		claims.UpdatedAt = strconv.FormatInt(u.UpdatedAt.Unix(), 10)
	}
	return claims
}

func userResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		GivenName:   u.GivenName,
		FamilyName:  u.FamilyName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   rfc3339(u.CreatedAt),
		UpdatedAt:   rfc3339(u.UpdatedAt),
	}
}

func clientInfo(c domain.Client) authsdk.ClientInfo {
	return authsdk.ClientInfo{
		ID:           c.ID,
		Name:         c.Name,
		Confidential: c.Confidential(),
		Protected:    c.Protected,
		CreatedAt:    rfc3339(c.CreatedAt),
		UpdatedAt:    rfc3339(c.UpdatedAt),
	}
}

func rfc3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
