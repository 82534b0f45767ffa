package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaushalkahapola/smart-campus/src/models"
)

func TestGuardLoadingWinsOverEverything(t *testing.T) {
	out := Evaluate(GuardInput{Loading: true, Path: "/admin/users", RequiredRole: models.ROLE_ADMIN})
	assert.Equal(t, DecisionLoading, out.Decision)
	assert.Empty(t, out.RedirectTo)
}

func TestGuardAnonymousRedirectsToSignIn(t *testing.T) {
	out := Evaluate(GuardInput{Path: "/bookings"})
	assert.Equal(t, DecisionRedirect, out.Decision)
	assert.Equal(t, SignInPath, out.RedirectTo)
}

func TestGuardAnonymousMayVisitAuthPages(t *testing.T) {
	for _, path := range []string{"/auth/sign-in", "/auth/sign-up", "/auth/forgot-password"} {
		out := Evaluate(GuardInput{Path: path})
		assert.Equal(t, DecisionRender, out.Decision, path)
	}
}

func TestGuardInsufficientRole(t *testing.T) {
	out := Evaluate(GuardInput{
		Authenticated: true,
		Path:          "/admin/users",
		UserRole:      models.ROLE_STUDENT,
		RequiredRole:  models.ROLE_ADMIN,
	})
	assert.Equal(t, DecisionRedirect, out.Decision)
	assert.Equal(t, UnauthorizedPath, out.RedirectTo)
}

func TestGuardSufficientRole(t *testing.T) {
	out := Evaluate(GuardInput{
		Authenticated: true,
		Path:          "/analytics",
		UserRole:      models.ROLE_ADMIN,
		RequiredRole:  models.ROLE_STAFF,
	})
	assert.Equal(t, DecisionRender, out.Decision)
}

func TestGuardNoRequiredRole(t *testing.T) {
	out := Evaluate(GuardInput{Authenticated: true, Path: "/bookings", UserRole: models.ROLE_STUDENT})
	assert.Equal(t, DecisionRender, out.Decision)
}

func TestGuardUnknownRoleNeverPasses(t *testing.T) {
	out := Evaluate(GuardInput{
		Authenticated: true,
		Path:          "/bookings",
		UserRole:      "visitor",
		RequiredRole:  models.ROLE_STUDENT,
	})
	assert.Equal(t, DecisionRedirect, out.Decision)
	assert.Equal(t, UnauthorizedPath, out.RedirectTo)
}
