package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// UserLoader loads the current user's profile once a token is in place.
// *services.UserService satisfies it.
type UserLoader interface {
	Me(ctx context.Context) (*models.User, error)
}

// Manager tracks authentication state and owns the access token. It is the
// single writer of the token; the API client reads it through Token() on
// every request. A request racing a sign-in may carry either the old or the
// new token, which the backend resolves by validating whatever it receives.
type Manager struct {
	provider Provider

	mu        sync.RWMutex
	state     State
	user      *models.User
	token     string
	sessionID string
}

func NewManager(p Provider) *Manager {
	return &Manager{provider: p, state: StateAnonymous}
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Initialize resolves an existing session. No session is not an error. A
// session without a token is logged and left anonymous; protected calls will
// come back Unauthorized and the route guard takes it from there. With a
// token, the user profile is loaded and the state becomes authenticated.
func (m *Manager) Initialize(ctx context.Context, users UserLoader) error {
	m.setState(StateAuthenticating)

	info, err := m.provider.ResolveSession(ctx)
	if err != nil {
		m.setState(StateAnonymous)
		return err
	}
	if info == nil || info.SessionID == "" {
		m.setState(StateAnonymous)
		return nil
	}
	if info.AccessToken == "" {
		log.Printf("[session] session %s resolved without an access token\n", info.SessionID)
		m.mu.Lock()
		m.sessionID = info.SessionID
		m.state = StateAnonymous
		m.mu.Unlock()
		return nil
	}

	inspectToken(info.AccessToken)

	m.mu.Lock()
	m.sessionID = info.SessionID
	m.token = info.AccessToken
	m.mu.Unlock()

	user, err := users.Me(ctx)
	if err != nil {
		// Token kept: the backend decides whether it is still good. Without
		// a loaded user the session stays anonymous and the guard redirects.
		log.Printf("[session] could not load current user: %s\n", err.Error())
		m.setState(StateAnonymous)
		return err
	}

	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

// SignIn installs a token handed over by the identity provider after an
// explicit login and loads the user behind it.
func (m *Manager) SignIn(ctx context.Context, token string, users UserLoader) error {
	m.setState(StateAuthenticating)
	inspectToken(token)

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := users.Me(ctx)
	if err != nil {
		m.mu.Lock()
		m.token = ""
		m.state = StateAnonymous
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	m.sessionID = ""
	m.state = StateAnonymous
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated && m.user != nil
}

func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticating
}

func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// UserRole returns the role from the cached user, or "" when no user is
// loaded.
func (m *Manager) UserRole() models.UserRole {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return ""
	}
	return m.user.Role
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// inspectToken peeks at the claims without verifying the signature. An
// expired-looking token is only logged; it is still sent, because the backend
// is the authority on validity.
func inspectToken(token string) {
	claims := &types.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Printf("[session] access token is not a parseable JWT: %s\n", err.Error())
		return
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		log.Printf("[session] access token expired at %s\n", claims.ExpiresAt.Format(time.RFC3339))
	}
}
