package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/internal/sso/store/drivers/sqlite"
	"github.com/aussiebroadwan/sso/pkg/cryptox"
)

type fixture struct {
	store   *sqlite.Store
	clock   *testingclock.FakeClock
	clients *service.ClientService
	users   *service.UserService
	tokens  *service.TokenService

	user   domain.User
	client domain.Client
	secret string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hasher, err := cryptox.NewSecretHasher("test-pepper")
	require.NoError(t, err)

	f := &fixture{
		store:   st,
		clock:   testingclock.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		clients: &service.ClientService{Store: st, Hasher: hasher},
		users:   &service.UserService{Store: st},
	}
	f.tokens = &service.TokenService{
		Store:      st,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Clock:      f.clock,
	}

	f.user, err = f.users.CreateUser(ctx, domain.User{Email: "a@b.com", DisplayName: "Ada"})
	require.NoError(t, err)

	f.client, f.secret, err = f.clients.CreateClient(ctx, "chat", true, false)
	require.NoError(t, err)
	require.NotEmpty(t, f.secret)

	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
