package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushalkahapola/smart-campus/src/models"
)

type fakeLoader struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeLoader) Me(ctx context.Context) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

var student = &models.User{ID: "u1", Username: "jdoe", Role: models.ROLE_STUDENT}

func TestInitializeWithoutSession(t *testing.T) {
	m := NewManager(StaticProvider{})
	loader := &fakeLoader{user: student}

	err := m.Initialize(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 0, loader.calls)
	assert.Empty(t, m.Token())
}

func TestInitializeSessionWithoutToken(t *testing.T) {
	m := NewManager(StaticProvider{Info: &SessionInfo{SessionID: "sess-1"}})
	loader := &fakeLoader{user: student}

	err := m.Initialize(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, 0, loader.calls)
	assert.Empty(t, m.Token())
}

func TestInitializeSuccess(t *testing.T) {
	m := NewManager(StaticProvider{Info: &SessionInfo{SessionID: "sess-1", AccessToken: "tok-abc"}})
	loader := &fakeLoader{user: student}

	err := m.Initialize(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-abc", m.Token())
	assert.Equal(t, "jdoe", m.CurrentUser().Username)
	assert.Equal(t, models.ROLE_STUDENT, m.UserRole())
}

func TestInitializeKeepsTokenWhenProfileLoadFails(t *testing.T) {
	m := NewManager(StaticProvider{Info: &SessionInfo{SessionID: "sess-1", AccessToken: "tok-abc"}})
	loader := &fakeLoader{err: errors.New("backend down")}

	err := m.Initialize(context.Background(), loader)
	assert.Error(t, err)
	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.IsAuthenticated())
	// The token stays installed so a later retry can still use it.
	assert.Equal(t, "tok-abc", m.Token())
	assert.Nil(t, m.CurrentUser())
}

func TestInitializeProviderError(t *testing.T) {
	m := NewManager(failingProvider{})
	err := m.Initialize(context.Background(), &fakeLoader{user: student})
	assert.Error(t, err)
	assert.Equal(t, StateAnonymous, m.State())
}

type failingProvider struct{}

func (failingProvider) ResolveSession(ctx context.Context) (*SessionInfo, error) {
	return nil, errors.New("idp unreachable")
}

func TestSignInSuccess(t *testing.T) {
	m := NewManager(StaticProvider{})
	loader := &fakeLoader{user: student}

	err := m.SignIn(context.Background(), "tok-new", loader)
	require.NoError(t, err)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-new", m.Token())
}

func TestSignInFailureClearsToken(t *testing.T) {
	m := NewManager(StaticProvider{})
	loader := &fakeLoader{err: errors.New("invalid token")}

	err := m.SignIn(context.Background(), "tok-bad", loader)
	assert.Error(t, err)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
}

func TestSignOut(t *testing.T) {
	m := NewManager(StaticProvider{Info: &SessionInfo{SessionID: "sess-1", AccessToken: "tok-abc"}})
	require.NoError(t, m.Initialize(context.Background(), &fakeLoader{user: student}))
	require.True(t, m.IsAuthenticated())

	m.SignOut()
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.CurrentUser())
	assert.Equal(t, models.UserRole(""), m.UserRole())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}
