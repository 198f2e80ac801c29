package sso_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/sso/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRefreshRotatesTokens verifies a refresh issues a new pair and retires
// the old refresh token.
func TestRefreshRotatesTokens(t *testing.T) {
	baseURL, cleanup := setupSSOContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	fx := seedFixture(t, client, "ada@example.com")

	refreshed, err := client.Refresh(t.Context(), fx.Tokens.RefreshToken)
	require.NoError(t, err, "refresh should succeed")
	assertTokenResponse(t, refreshed)
	require.NotEqual(t, fx.Tokens.AccessToken, refreshed.AccessToken)
	require.NotEqual(t, fx.Tokens.RefreshToken, refreshed.RefreshToken)

	require.Equal(t, fx.UserID, refreshed.User.ID)
	require.Equal(t, "ada@example.com", refreshed.User.Email)
	require.Equal(t, "Ada Lovelace", refreshed.User.Name)
	require.Equal(t, "https://example.com/ada.png", refreshed.User.Avatar)
	require.NotEmpty(t, refreshed.User.UpdatedAt)

	// Rotation: the old refresh token no longer works.
	_, err = client.Refresh(t.Context(), fx.Tokens.RefreshToken)
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)

	// Neither does the old access token.
	_, err = client.GetUserInfo(t.Context(), fx.Tokens.AccessToken)
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)

	t.Logf("Refresh rotated the token pair for user %s", fx.UserID)
}

// TestRefreshRejectsInvalidInput verifies missing and unknown refresh tokens.
func TestRefreshRejectsInvalidInput(t *testing.T) {
	baseURL, cleanup := setupSSOContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	_, err := client.Refresh(t.Context(), "")
	assertErrorCode(t, err, http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest)

	_, err = client.Refresh(t.Context(), "not-a-real-token")
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)
}

// TestUserInfo verifies the claims projection for a freshly issued token.
func TestUserInfo(t *testing.T) {
	baseURL, cleanup := setupSSOContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	fx := seedFixture(t, client, "grace@example.com")

	info, err := client.GetUserInfo(t.Context(), fx.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, fx.UserID, info.Subject)
	require.Equal(t, "grace@example.com", info.Email)
	require.NotNil(t, info.EmailVerified)
	require.True(t, *info.EmailVerified)
	require.Equal(t, "Ada Lovelace", info.Name)
	require.Equal(t, "Ada", info.GivenName)
	require.Equal(t, "Lovelace", info.FamilyName)
	require.Equal(t, "https://example.com/ada.png", info.Picture)
	require.NotEmpty(t, info.UpdatedAt)

	_, err = client.GetUserInfo(t.Context(), "bogus")
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)

	resp := rawRequest(t, http.MethodGet, baseURL+"/v1/oauth2/userinfo", map[string]string{
		"Authorization": "Basic Zm9vOmJhcg==",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, `Bearer realm="oauth"`, resp.Header.Get("WWW-Authenticate"))
}

// TestRevoke verifies revocation by the owning client and that other
// clients cannot revoke a token they were not issued.
func TestRevoke(t *testing.T) {
	baseURL, cleanup := setupSSOContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()
	fx := seedFixture(t, client, "linus@example.com")

	other, err := client.Admin(adminToken).CreateClient(ctx, authsdk.CreateClientRequest{
		Name:         "other-client",
		Confidential: true,
	})
	require.NoError(t, err)

	// Wrong secret is rejected outright.
	err = client.RevokeToken(ctx, fx.ClientID, "wrong-secret", fx.Tokens.AccessToken, "")
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidClient)

	// Another client gets 200 but nothing is deleted.
	require.NoError(t, client.RevokeToken(ctx, other.ClientID, other.ClientSecret, fx.Tokens.AccessToken, ""))
	_, err = client.GetUserInfo(ctx, fx.Tokens.AccessToken)
	require.NoError(t, err, "token must survive revocation by a foreign client")

	// The owner revokes by refresh token; the whole pair goes.
	require.NoError(t, client.RevokeToken(ctx, fx.ClientID, fx.ClientSecret, fx.Tokens.RefreshToken, "refresh_token"))
	_, err = client.GetUserInfo(ctx, fx.Tokens.AccessToken)
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)
	_, err = client.Refresh(ctx, fx.Tokens.RefreshToken)
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)

	// Revoking again is still a success.
	require.NoError(t, client.RevokeToken(ctx, fx.ClientID, fx.ClientSecret, fx.Tokens.RefreshToken, ""))
}

// TestSessionLifecycle drives the SDK Session end to end.
func TestSessionLifecycle(t *testing.T) {
	baseURL, cleanup := setupSSOContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()
	fx := seedFixture(t, client, "barbara@example.com")

	session, err := client.AuthenticateWithRefreshToken(ctx, fx.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, fx.UserID, session.User().ID)

	info, err := session.GetUserInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, fx.UserID, info.Subject)

	require.NoError(t, session.Revoke(ctx, fx.ClientID, fx.ClientSecret))
	_, err = client.Refresh(ctx, session.RefreshToken())
	assertErrorCode(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)
}
