package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/utils/clock"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"
	"github.com/aussiebroadwan/sso/pkg/cryptox"
	"github.com/aussiebroadwan/sso/pkg/idx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

var (
	ErrInvalidRefresh = errors.New("invalid refresh token")
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenExpired   = errors.New("token expired")
)

// Token type hints accepted by Revoke (RFC 7009 §2.1).
const (
	HintAccessToken  = "access_token"
	HintRefreshToken = "refresh_token"
)

// TokenService is the only code that reads or writes token rows. Raw tokens
// are fingerprinted before they reach the store.
type TokenService struct {
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Clock      clock.PassiveClock // defaults to the real clock
}

// Session is a freshly issued token pair together with the principal it
// belongs to.
type Session struct {
	Tokens   domain.TokenPair
	User     domain.User
	ClientID string
}

func (s *TokenService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// IssueSession records a successful authentication of userID at clientID and
// returns the first token pair of a new session.
func (s *TokenService) IssueSession(ctx context.Context, userID, clientID string) (Session, error) {
	var out Session

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}

		if _, err := tx.Clients().GetClientByID(ctx, clientID); errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		} else if err != nil {
			return fmt.Errorf("lookup client: %w", err)
		}

		pair, row, err := s.mint(userID, clientID, idx.New().String())
		if err != nil {
			return err
		}
		if err := tx.Tokens().CreateToken(ctx, row); err != nil {
			return fmt.Errorf("create token: %w", err)
		}

		out = Session{Tokens: pair, User: user, ClientID: clientID}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	slogx.FromContext(ctx).Info("session issued", "user_id", userID, "client_id", clientID)
	return out, nil
}

// RefreshSession exchanges a refresh token for a new pair. The old row is
// deleted in the same transaction the new one is written, so a refresh token
// works exactly once. Unknown and expired tokens both yield ErrInvalidRefresh.
func (s *TokenService) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrInvalidRefresh
	}

	hash := cryptox.FingerprintToken(refreshToken)
	var out Session

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Tokens().GetTokenByRefreshHash(ctx, hash)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRefresh
		} else if err != nil {
			return fmt.Errorf("lookup refresh token: %w", err)
		}

		if old.RefreshExpired(s.now()) {
			return fmt.Errorf("%w: expired at %s", ErrInvalidRefresh, old.RefreshExpiresAt.Format(time.RFC3339))
		}

		user, err := tx.Users().GetUserByID(ctx, old.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: user is gone", ErrInvalidRefresh)
		} else if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}

		if err := tx.Tokens().DeleteTokenByID(ctx, old.ID); errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRefresh
		} else if err != nil {
			return fmt.Errorf("supersede token: %w", err)
		}

		pair, row, err := s.mint(old.UserID, old.ClientID, old.SessionID)
		if err != nil {
			return err
		}
		if err := tx.Tokens().CreateToken(ctx, row); err != nil {
			return fmt.Errorf("create token: %w", err)
		}

		out = Session{Tokens: pair, User: user, ClientID: old.ClientID}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	slogx.FromContext(ctx).Info("session refreshed",
		"user_id", out.User.ID,
		"client_id", out.ClientID,
	)
	return out, nil
}

// ValidateAccessToken resolves a bearer token to its user. The returned
// ErrTokenNotFound and ErrTokenExpired carry messages safe to show callers;
// anything else is a store failure.
func (s *TokenService) ValidateAccessToken(ctx context.Context, bearer string) (domain.User, error) {
	if bearer == "" {
		return domain.User{}, ErrTokenNotFound
	}

	tok, err := s.Store.Tokens().GetTokenByAccessHash(ctx, cryptox.FingerprintToken(bearer))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrTokenNotFound
	} else if err != nil {
		return domain.User{}, fmt.Errorf("lookup access token: %w", err)
	}

	if tok.AccessExpired(s.now()) {
		return domain.User{}, ErrTokenExpired
	}

	user, err := s.Store.Users().GetUserByID(ctx, tok.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrTokenNotFound
	} else if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

// DeleteToken removes the row matching f and reports how many rows went.
func (s *TokenService) DeleteToken(ctx context.Context, f store.TokenFilter) (int64, error) {
	return s.Store.Tokens().DeleteToken(ctx, f)
}

// Revoke deletes token for clientID, trying it as an access token and then,
// only if nothing matched, as a refresh token. A refresh_token hint swaps the
// order. Finding nothing is not an error.
func (s *TokenService) Revoke(ctx context.Context, clientID, token, hint string) (int64, error) {
	hash := cryptox.FingerprintToken(token)
	filters := []store.TokenFilter{
		{AccessTokenHash: hash, ClientID: clientID},
		{RefreshTokenHash: hash, ClientID: clientID},
	}
	if hint == HintRefreshToken {
		filters[0], filters[1] = filters[1], filters[0]
	}

	for _, f := range filters {
		n, err := s.DeleteToken(ctx, f)
		if err != nil {
			return 0, fmt.Errorf("delete token: %w", err)
		}
		if n > 0 {
			return n, nil
		}
	}
	return 0, nil
}

func (s *TokenService) mint(userID, clientID, sessionID string) (domain.TokenPair, domain.Token, error) {
	access, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, domain.Token{}, err
	}
	refresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, domain.Token{}, err
	}

	now := s.now()
	row := domain.Token{
		ID:               idx.New().String(),
		UserID:           userID,
		ClientID:         clientID,
		SessionID:        sessionID,
		AccessTokenHash:  cryptox.FingerprintToken(access),
		RefreshTokenHash: cryptox.FingerprintToken(refresh),
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt:        now,
	}

	pair := domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}
	return pair, row, nil
}
