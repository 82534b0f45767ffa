package session

import (
	"context"
	"os"
)

// SessionInfo is what the external identity provider hands back when an
// existing session is resolved.
type SessionInfo struct {
	SessionID   string
	AccessToken string
}

// Provider abstracts the identity provider. Implementations resolve an
// existing session; returning (nil, nil) means no session, which is not an
// error.
type Provider interface {
	ResolveSession(ctx context.Context) (*SessionInfo, error)
}

// EnvProvider resolves the session from the environment, the way the CLI is
// handed credentials by the identity provider's own tooling.
type EnvProvider struct{}

func (EnvProvider) ResolveSession(ctx context.Context) (*SessionInfo, error) {
	sessionID := os.Getenv("CAMPUS_SESSION_ID")
	if sessionID == "" {
		return nil, nil
	}
	return &SessionInfo{
		SessionID:   sessionID,
		AccessToken: os.Getenv("CAMPUS_ACCESS_TOKEN"),
	}, nil
}

// StaticProvider returns a fixed session. Used by tests and by callers that
// already hold a token.
type StaticProvider struct {
	Info *SessionInfo
}

func (p StaticProvider) ResolveSession(ctx context.Context) (*SessionInfo, error) {
	return p.Info, nil
}
