package session

import (
	"strings"

	"github.com/kaushalkahapola/smart-campus/src/models"
)

const (
	SignInPath       = "/auth/sign-in"
	UnauthorizedPath = "/unauthorized"
	AuthPathPrefix   = "/auth"
)

type Decision int

const (
	DecisionRender Decision = iota
	DecisionLoading
	DecisionRedirect
)

type GuardInput struct {
	Authenticated bool
	Loading       bool
	Path          string
	UserRole      models.UserRole
	RequiredRole  models.UserRole
}

type GuardOutcome struct {
	Decision   Decision
	RedirectTo string
}

// Evaluate decides whether a guarded page renders, shows a neutral loading
// state, or redirects. Auth-prefixed paths are reachable while anonymous so
// the sign-in flow itself is never blocked.
func Evaluate(in GuardInput) GuardOutcome {
	if in.Loading {
		return GuardOutcome{Decision: DecisionLoading}
	}
	if !in.Authenticated {
		if strings.HasPrefix(in.Path, AuthPathPrefix) {
			return GuardOutcome{Decision: DecisionRender}
		}
		return GuardOutcome{Decision: DecisionRedirect, RedirectTo: SignInPath}
	}
	if in.RequiredRole != "" && !models.HasAccess(in.UserRole, in.RequiredRole) {
		return GuardOutcome{Decision: DecisionRedirect, RedirectTo: UnauthorizedPath}
	}
	return GuardOutcome{Decision: DecisionRender}
}
