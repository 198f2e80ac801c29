package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"
	"github.com/aussiebroadwan/sso/pkg/cryptox"
	"github.com/aussiebroadwan/sso/pkg/idx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientProtected = errors.New("client is protected and cannot be deleted")
	ErrInvalidClient   = errors.New("invalid client credentials")
)

type ClientService struct {
	Store  store.Store
	Hasher *cryptox.SecretHasher
}

// CreateClient registers a relying party. Confidential clients get a fresh
// secret which is returned here and never again.
func (s *ClientService) CreateClient(
	ctx context.Context,
	name string,
	confidential bool,
	protected bool,
) (client domain.Client, plaintextSecret string, err error) {
	l := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, "", fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	var secretHash string
	if confidential {
		plaintextSecret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Client{}, "", err
		}
		if secretHash, err = s.Hasher.Hash(plaintextSecret); err != nil {
			return domain.Client{}, "", err
		}
	}

	client = domain.Client{
		ID:         idx.New().String(),
		Name:       name,
		SecretHash: secretHash,
		Protected:  protected,
	}
	if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
		l.Error("failed to create client", "error", err)
		return domain.Client{}, "", err
	}

	l.Info("client created", "client_id", client.ID, "name", name, "has_secret", confidential)
	return client, plaintextSecret, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// DeleteClient removes a client and, through the schema, every token issued to it.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	l := slogx.FromContext(ctx)

	client, err := s.LookupClient(ctx, clientID)
	if err != nil {
		return err
	}
	if client.Protected {
		l.Warn("refusing to delete protected client", "client_id", clientID)
		return ErrClientProtected
	}

	if err := s.Store.Clients().DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	l.Info("client deleted", "client_id", clientID)
	return nil
}

// LookupClient fetches a client registration by id.
func (s *ClientService) LookupClient(ctx context.Context, clientID string) (domain.Client, error) {
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Client{}, ErrClientNotFound
	}
	return client, err
}

// Validate checks a client_id/client_secret pair. An unknown client, a public
// client and a wrong secret all return ErrInvalidClient after the same amount
// of hashing work. Any other error is a store failure.
func (s *ClientService) Validate(ctx context.Context, clientID, secret string) (domain.Client, error) {
	if clientID == "" || secret == "" {
		return domain.Client{}, ErrInvalidClient
	}

	client, err := s.LookupClient(ctx, clientID)
	switch {
	case errors.Is(err, ErrClientNotFound):
		_ = s.Hasher.VerifyDummy(secret)
		return domain.Client{}, ErrInvalidClient
	case err != nil:
		return domain.Client{}, fmt.Errorf("lookup client: %w", err)
	case !client.Confidential():
		_ = s.Hasher.VerifyDummy(secret)
		return domain.Client{}, ErrInvalidClient
	}

	if err := s.Hasher.Verify(secret, client.SecretHash); err != nil {
		if !errors.Is(err, cryptox.ErrSecretMismatch) {
			slogx.FromContext(ctx).Error("stored client secret hash is unreadable",
				"client_id", clientID, "error", err)
		}
		return domain.Client{}, ErrInvalidClient
	}

	return client, nil
}
