package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

// AuthService implements username-only login: the first login with a
// name creates the user. There is no password and no uniqueness
// constraint on names.
type AuthService struct {
	users domain.UserRepository
}

func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Login(ctx context.Context, username string) (domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	u = domain.User{ID: uuid.NewString(), Username: username}
	if err := s.users.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
