package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. It exposes sub-repositories to keep concerns tidy and testable, and so
// nobody ends up opening a transaction inside a transaction.
type Store interface {
	Users() Users
	Clients() Clients
	Tokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Clients interface {
	// GetClientByID fetches a client for credential validation.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client (secret_hash may be empty for public clients).
	CreateClient(ctx context.Context, c domain.Client) error

	// DeleteClient cascades to tokens (per schema).
	DeleteClient(ctx context.Context, clientID string) error
}

// TokenFilter selects token rows for deletion. Exactly one of AccessTokenHash
// or RefreshTokenHash is set; ClientID is always required so a client can only
// ever touch its own tokens.
type TokenFilter struct {
	AccessTokenHash  string
	RefreshTokenHash string
	ClientID         string
}

type Tokens interface {
	// CreateToken stores a new token record.
	CreateToken(ctx context.Context, t domain.Token) error

	// GetTokenByAccessHash returns the row whose access token fingerprint matches.
	GetTokenByAccessHash(ctx context.Context, hash string) (domain.Token, error)

	// GetTokenByRefreshHash returns the row whose refresh token fingerprint matches.
	GetTokenByRefreshHash(ctx context.Context, hash string) (domain.Token, error)

	// DeleteToken removes the row matching f. Zero matching rows is reported
	// as (0, nil), never as an error.
	DeleteToken(ctx context.Context, f TokenFilter) (int64, error)

	// DeleteTokenByID removes a single row, used by refresh rotation.
	DeleteTokenByID(ctx context.Context, id string) error

	// DeleteExpiredTokens purges rows whose refresh token expired before now.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}
