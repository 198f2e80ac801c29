package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/service"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.users.CreateUser(ctx, domain.User{GivenName: "  Grace ", FamilyName: "Hopper"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "Grace", u.GivenName)
	require.Equal(t, "Grace Hopper", u.Name())
	require.Empty(t, u.Email)

	_, err = f.users.CreateUser(ctx, domain.User{Email: "a@b.com"})
	require.ErrorIs(t, err, service.ErrUserExists)

	_, err = f.users.CreateUser(ctx, domain.User{Email: "not an email"})
	require.ErrorIs(t, err, service.ErrInvalidRequest)

	_, err = f.users.GetUserByID(ctx, "ghost")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
