package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"
)

const clientColumns = `id, name, secret_hash, protected, created_at, updated_at`

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		mapStringNull(c.SecretHash),
		c.Protected,
		toMillis(c.CreatedAt),
		toMillis(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, clientID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
