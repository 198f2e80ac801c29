package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"
)

const tokenColumns = `id, user_id, client_id, session_id, access_token_hash, refresh_token_hash,
	access_expires_at, refresh_expires_at, created_at`

var errInvalidFilter = errors.New("sqlite: token filter needs exactly one token hash and a client id")

type tokensRepo struct {
	db dbtx
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (`+tokenColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.UserID,
		t.ClientID,
		t.SessionID,
		t.AccessTokenHash,
		t.RefreshTokenHash,
		toMillis(t.AccessExpiresAt),
		toMillis(t.RefreshExpiresAt),
		toMillis(t.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *tokensRepo) GetTokenByAccessHash(ctx context.Context, hash string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE access_token_hash = ?`, hash)
	t, err := scanToken(row)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) GetTokenByRefreshHash(ctx context.Context, hash string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE refresh_token_hash = ?`, hash)
	t, err := scanToken(row)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) DeleteToken(ctx context.Context, f store.TokenFilter) (int64, error) {
	var (
		column string
		hash   string
	)
	switch {
	case f.ClientID == "":
		return 0, errInvalidFilter
	case f.AccessTokenHash != "" && f.RefreshTokenHash == "":
		column, hash = "access_token_hash", f.AccessTokenHash
	case f.RefreshTokenHash != "" && f.AccessTokenHash == "":
		column, hash = "refresh_token_hash", f.RefreshTokenHash
	default:
		return 0, errInvalidFilter
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE `+column+` = ? AND client_id = ?`, hash, f.ClientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *tokensRepo) DeleteTokenByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE refresh_expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
