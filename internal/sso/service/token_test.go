package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sso/internal/sso/service"
)

func TestIssueSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
	require.NoError(t, err)
	require.NotEmpty(t, s.Tokens.AccessToken)
	require.NotEmpty(t, s.Tokens.RefreshToken)
	require.NotEqual(t, s.Tokens.AccessToken, s.Tokens.RefreshToken)
	require.Equal(t, "Bearer", s.Tokens.TokenType)
	require.Equal(t, time.Hour, s.Tokens.ExpiresIn)
	require.Equal(t, f.user.ID, s.User.ID)

	_, err = f.tokens.IssueSession(ctx, "ghost", f.client.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.tokens.IssueSession(ctx, f.user.ID, "ghost")
	require.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestRefreshSessionRotates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
	require.NoError(t, err)

	second, err := f.tokens.RefreshSession(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.Tokens.AccessToken, second.Tokens.AccessToken)
	require.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)
	require.Equal(t, f.user.ID, second.User.ID)
	require.Equal(t, "a@b.com", second.User.Email)
	require.Equal(t, f.client.ID, second.ClientID)

	t.Run("old refresh token is superseded", func(t *testing.T) {
		_, err := f.tokens.RefreshSession(ctx, first.Tokens.RefreshToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("old access token stops validating", func(t *testing.T) {
		_, err := f.tokens.ValidateAccessToken(ctx, first.Tokens.AccessToken)
		require.ErrorIs(t, err, service.ErrTokenNotFound)
	})

	t.Run("new access token validates", func(t *testing.T) {
		u, err := f.tokens.ValidateAccessToken(ctx, second.Tokens.AccessToken)
		require.NoError(t, err)
		require.Equal(t, f.user.ID, u.ID)
	})
}

func TestRefreshSessionRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
	require.NoError(t, err)

	_, err = f.tokens.RefreshSession(ctx, "")
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	_, err = f.tokens.RefreshSession(ctx, "rt-unknown")
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	_, err = f.tokens.RefreshSession(ctx, s.Tokens.AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh, "an access token is not a refresh token")

	f.clock.Step(25 * time.Hour)
	_, err = f.tokens.RefreshSession(ctx, s.Tokens.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)
}

func TestValidateAccessTokenExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
	require.NoError(t, err)

	f.clock.Step(59 * time.Minute)
	_, err = f.tokens.ValidateAccessToken(ctx, s.Tokens.AccessToken)
	require.NoError(t, err)

	f.clock.Step(time.Minute)
	_, err = f.tokens.ValidateAccessToken(ctx, s.Tokens.AccessToken)
	require.ErrorIs(t, err, service.ErrTokenExpired)
	require.Equal(t, "token expired", err.Error())

	_, err = f.tokens.ValidateAccessToken(ctx, "")
	require.ErrorIs(t, err, service.ErrTokenNotFound)
}

func TestRevoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	other, _, err := f.clients.CreateClient(ctx, "other", true, false)
	require.NoError(t, err)

	t.Run("access token", func(t *testing.T) {
		s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
		require.NoError(t, err)

		n, err := f.tokens.Revoke(ctx, f.client.ID, s.Tokens.AccessToken, "")
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		_, err = f.tokens.RefreshSession(ctx, s.Tokens.RefreshToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh, "revoking either half kills the row")
	})

	t.Run("refresh token with hint", func(t *testing.T) {
		s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
		require.NoError(t, err)

		n, err := f.tokens.Revoke(ctx, f.client.ID, s.Tokens.RefreshToken, service.HintRefreshToken)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		_, err = f.tokens.ValidateAccessToken(ctx, s.Tokens.AccessToken)
		require.ErrorIs(t, err, service.ErrTokenNotFound)
	})

	t.Run("refresh token with misleading hint", func(t *testing.T) {
		s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
		require.NoError(t, err)

		n, err := f.tokens.Revoke(ctx, f.client.ID, s.Tokens.RefreshToken, service.HintAccessToken)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("another client's token is untouched", func(t *testing.T) {
		s, err := f.tokens.IssueSession(ctx, f.user.ID, f.client.ID)
		require.NoError(t, err)

		n, err := f.tokens.Revoke(ctx, other.ID, s.Tokens.AccessToken, "")
		require.NoError(t, err)
		require.Zero(t, n)

		_, err = f.tokens.ValidateAccessToken(ctx, s.Tokens.AccessToken)
		require.NoError(t, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		n, err := f.tokens.Revoke(ctx, f.client.ID, "missing-token", "")
		require.NoError(t, err)
		require.Zero(t, n)
	})
}
