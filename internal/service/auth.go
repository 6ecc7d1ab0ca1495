package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/events"
	"github.com/mushroomery/shop/internal/hash"
	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/repo"
	"github.com/mushroomery/shop/internal/tokens"
)

const maxUsernameLen = 20

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Events    *events.Producer
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("username must be 1-%d characters: %w", maxUsernameLen, ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password must not be empty: %w", ErrValidation)
	}
	if role == "" {
		role = "user"
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, fmt.Errorf("username %q is taken: %w", username, ErrConflict)
		}
		return nil, err
	}

	if err := s.Events.Publish(ctx, "user_events", user.ID.String(), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	l.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks the credentials and issues a bearer token.
// An unknown username and a wrong password return the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrUnauthorized
	}

	token, err := tokens.Issue(user.ID, s.JWTSecret)
	if err != nil {
		l.Error("token issue failed", "error", err)
		return "", err
	}

	if err := s.Events.Publish(ctx, "user_events", user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return token, nil
}

// Resolve verifies a raw bearer token and loads the user behind it.
// A valid token for a since-deleted user is still unauthorized.
func (s *AuthService) Resolve(ctx context.Context, raw string) (*models.User, error) {
	userID, err := tokens.Parse(raw, s.JWTSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.Repo.ListUsers(ctx)
}
