package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/repositories"
	"github.com/infernolabs/scmflow/pkg/auth"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// AuthService registers and authenticates users. No session state is kept
// server-side; authentication is asserted by the signed token alone.
type AuthService struct {
	users UserStore
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// NewAuthServiceWith injects a custom store (tests).
func NewAuthServiceWith(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register stores a new user with a bcrypt-hashed password.
// A taken username returns ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{Username: username, Password: hash}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("auth: create user: %w", err)
	}

	return nil
}

// Login verifies the credentials and issues a 1-hour token.
// Unknown usernames and wrong passwords fail distinctly: ErrUserNotFound
// vs ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("auth: find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify decodes and validates a token. Expired or tampered tokens return
// ErrInvalidToken.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	return claims, nil
}
