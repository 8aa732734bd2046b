package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/auth"
	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
	"github.com/diplomas-2025/agro-market/internal/mockapi/events"
	"github.com/diplomas-2025/agro-market/internal/mockapi/repo"
	"github.com/diplomas-2025/agro-market/internal/models"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *auth.Issuer
	Events events.Publisher
}

func (s *AuthService) SignUp(ctx context.Context, p models.SignUpParams) (*models.JwtResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.sign_up")

	email := strings.ToLower(strings.TrimSpace(p.Email))
	username := strings.TrimSpace(p.Username)
	if email == "" || username == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		l.Error("sign_up_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	u := domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.Repo.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("sign_up_error", "status", 409, "reason", "email taken")
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		l.Error("sign_up_error", "status", 500, "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUser, u.ID, "user_registered", map[string]any{"username": u.Username})
	return s.issue(&u)
}

func (s *AuthService) SignIn(ctx context.Context, p models.SignInParams) (*models.JwtResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.sign_in")

	u, err := s.Repo.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(p.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("sign_in_failed", "status", 401, "reason", "unknown email")
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, p.Password) {
		l.Warn("sign_in_failed", "status", 401, "reason", "wrong password")
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	publish(ctx, s.Events, events.TopicUser, u.ID, "user_signed_in", nil)
	return s.issue(u)
}

func (s *AuthService) issue(u *domain.User) (*models.JwtResponse, error) {
	pair, err := s.Tokens.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &models.JwtResponse{
		UserID:       u.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IsAdmin:      u.IsAdmin,
		Username:     u.Username,
	}, nil
}

// publish logs and swallows delivery failures.
func publish(ctx context.Context, p events.Publisher, topic string, userID int, typ string, data map[string]any) {
	if p == nil {
		return
	}
	ev := events.Event{Type: typ, UserID: userID, Data: data}
	if err := p.Publish(ctx, topic, strconv.Itoa(userID), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", topic, "type", typ, "error", err)
	}
}
