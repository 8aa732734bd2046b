package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diplomas-2025/agro-market/internal/models"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "user_id"
	KeyUsername     = "username"
	KeyIsAdmin      = "is_admin"
)

var allKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserID, KeyUsername, KeyIsAdmin}

// Session is a snapshot of the persisted identity.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       int
	Username     string
	IsAdmin      bool
}

// Manager wraps a Store with typed accessors. It is the single owner of the
// persisted identity and is handed explicitly to the gateway and controllers.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

func (m *Manager) AccessToken() string  { return m.store.Get(KeyAccessToken, "") }
func (m *Manager) RefreshToken() string { return m.store.Get(KeyRefreshToken, "") }
func (m *Manager) Username() string     { return m.store.Get(KeyUsername, "") }

func (m *Manager) UserID() int {
	n, err := strconv.Atoi(m.store.Get(KeyUserID, "0"))
	if err != nil {
		return 0
	}
	return n
}

func (m *Manager) IsAdmin() bool {
	b, err := strconv.ParseBool(m.store.Get(KeyIsAdmin, "false"))
	if err != nil {
		return false
	}
	return b
}

func (m *Manager) Current() Session {
	return Session{
		AccessToken:  m.AccessToken(),
		RefreshToken: m.RefreshToken(),
		UserID:       m.UserID(),
		Username:     m.Username(),
		IsAdmin:      m.IsAdmin(),
	}
}

func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// Persist writes every field of a sign-in/sign-up response.
func (m *Manager) Persist(resp models.JwtResponse) error {
	fields := []struct{ key, value string }{
		{KeyAccessToken, resp.AccessToken},
		{KeyRefreshToken, resp.RefreshToken},
		{KeyUserID, strconv.Itoa(resp.UserID)},
		{KeyUsername, resp.Username},
		{KeyIsAdmin, strconv.FormatBool(resp.IsAdmin)},
	}
	for _, f := range fields {
		if err := m.store.Save(f.key, f.value); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}
	return nil
}

func (m *Manager) Clear() error {
	return m.store.Delete(allKeys...)
}

// TokenExpired reports whether the stored access token carries an exp claim in
// the past. Tokens that are absent, opaque, or have no exp are never expired.
func (m *Manager) TokenExpired() bool {
	raw := m.AccessToken()
	if raw == "" {
		return false
	}
	exp, err := expiry(raw)
	if err != nil || exp.IsZero() {
		return false
	}
	return !m.now().Before(exp)
}

// Valid is true when a token is stored and has not expired.
func (m *Manager) Valid() bool {
	return m.Authenticated() && !m.TokenExpired()
}

func expiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("no exp claim")
	}
	return exp.Time, nil
}
