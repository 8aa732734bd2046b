package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/session"
)

type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateSignInPending
	StateSignUpPending
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateSignInPending:
		return "sign-in-pending"
	case StateSignUpPending:
		return "sign-up-pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

type AuthMode int

const (
	ModeSignIn AuthMode = iota
	ModeSignUp
)

// Auth drives the sign-in / sign-up screen.
type Auth struct {
	gw   Gateway
	sess *session.Manager

	mu    sync.RWMutex
	state AuthState
	mode  AuthMode
	msg   string
}

func NewAuth(gw Gateway, sess *session.Manager) *Auth {
	a := &Auth{gw: gw, sess: sess}
	if sess.Valid() {
		a.state = StateAuthenticated
	}
	return a
}

func (a *Auth) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Auth) Mode() AuthMode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *Auth) Message() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.msg
}

// ToggleMode flips between the sign-in and sign-up forms.
func (a *Auth) ToggleMode() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == ModeSignIn {
		a.mode = ModeSignUp
	} else {
		a.mode = ModeSignIn
	}
	a.msg = ""
}

func (a *Auth) SignIn(ctx context.Context, email, password string) error {
	a.begin(StateSignInPending)
	resp, err := a.gw.SignIn(ctx, models.SignInParams{Email: email, Password: password})
	return a.finish(ctx, "auth.sign_in", "Sign-in failed", resp, err)
}

func (a *Auth) SignUp(ctx context.Context, username, email, password string) error {
	a.begin(StateSignUpPending)
	resp, err := a.gw.SignUp(ctx, models.SignUpParams{Username: username, Email: email, Password: password})
	return a.finish(ctx, "auth.sign_up", "Sign-up failed", resp, err)
}

// Logout forgets the stored identity.
func (a *Auth) Logout() error {
	err := a.sess.Clear()
	a.mu.Lock()
	a.state = StateUnauthenticated
	a.mode = ModeSignIn
	a.msg = ""
	a.mu.Unlock()
	return err
}

func (a *Auth) begin(s AuthState) {
	a.mu.Lock()
	a.state = s
	a.msg = ""
	a.mu.Unlock()
}

func (a *Auth) finish(ctx context.Context, op, action string, resp *models.JwtResponse, err error) error {
	l := logging.FromContext(ctx).With("controller", op)
	if err == nil {
		if err = a.sess.Persist(*resp); err != nil {
			// a half-written session must not look signed in on the next start
			if cerr := a.sess.Clear(); cerr != nil {
				l.Error("session_clear_failed", "error", cerr)
			}
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = StateUnauthenticated
		a.msg = Describe(action, err)
		l.Warn("auth_failed", "reason", a.msg)
		return err
	}
	a.state = StateAuthenticated
	l.Info("auth_success", "user_id", resp.UserID, "is_admin", resp.IsAdmin)
	return nil
}
