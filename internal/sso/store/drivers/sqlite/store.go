package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repo can run inside
// or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives and dies with its connection.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users     { return &usersRepo{db: s.db} }
func (s *Store) Clients() store.Clients { return &clientsRepo{db: s.db} }
func (s *Store) Tokens() store.Tokens   { return &tokensRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// Timestamps are stored as unix milliseconds so comparisons stay in SQL.
func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		email, display       sql.NullString
		given, family, photo sql.NullString
		created, updated     int64
	)
	if err := row.Scan(&u.ID, &email, &display, &given, &family, &photo, &created, &updated); err != nil {
		return domain.User{}, err
	}
	u.Email = mapNullString(email)
	u.DisplayName = mapNullString(display)
	u.GivenName = mapNullString(given)
	u.FamilyName = mapNullString(family)
	u.AvatarURL = mapNullString(photo)
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c                domain.Client
		secret           sql.NullString
		created, updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &secret, &c.Protected, &created, &updated); err != nil {
		return domain.Client{}, err
	}
	c.SecretHash = mapNullString(secret)
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func scanToken(row rowScanner) (domain.Token, error) {
	var (
		t                             domain.Token
		accessExp, refreshExp, created int64
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.ClientID, &t.SessionID,
		&t.AccessTokenHash, &t.RefreshTokenHash,
		&accessExp, &refreshExp, &created,
	)
	if err != nil {
		return domain.Token{}, err
	}
	t.AccessExpiresAt = fromMillis(accessExp)
	t.RefreshExpiresAt = fromMillis(refreshExp)
	t.CreatedAt = fromMillis(created)
	return t, nil
}
