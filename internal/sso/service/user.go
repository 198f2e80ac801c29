package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/sso/internal/sso/domain"
	"github.com/aussiebroadwan/sso/internal/sso/store"
	"github.com/aussiebroadwan/sso/pkg/idx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrInvalidRequest = errors.New("invalid request")
)

type UserService struct {
	Store store.Store
}

// CreateUser records a principal the identity provider has authenticated.
// The id is minted here; profile fields are stored as given, trimmed.
func (s *UserService) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.GivenName = strings.TrimSpace(u.GivenName)
	u.FamilyName = strings.TrimSpace(u.FamilyName)
	u.AvatarURL = strings.TrimSpace(u.AvatarURL)

	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return domain.User{}, fmt.Errorf("%w: email is not valid", ErrInvalidRequest)
		}
	}

	u.ID = idx.New().String()
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID)
	return s.GetUserByID(ctx, u.ID)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}
