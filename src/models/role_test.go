package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAccess(t *testing.T) {
	cases := []struct {
		user     UserRole
		required UserRole
		want     bool
	}{
		{ROLE_STUDENT, ROLE_STUDENT, true},
		{ROLE_STUDENT, ROLE_STAFF, false},
		{ROLE_STUDENT, ROLE_ADMIN, false},
		{ROLE_STAFF, ROLE_STUDENT, true},
		{ROLE_STAFF, ROLE_STAFF, true},
		{ROLE_STAFF, ROLE_ADMIN, false},
		{ROLE_ADMIN, ROLE_STUDENT, true},
		{ROLE_ADMIN, ROLE_STAFF, true},
		{ROLE_ADMIN, ROLE_ADMIN, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HasAccess(c.user, c.required), "%s vs %s", c.user, c.required)
	}
}

func TestHasAccessUnknownRole(t *testing.T) {
	assert.False(t, HasAccess("superuser", ROLE_STUDENT))
	assert.False(t, HasAccess("", ROLE_STUDENT))
}

func TestRoleRank(t *testing.T) {
	assert.Equal(t, 1, RoleRank(ROLE_STUDENT))
	assert.Equal(t, 2, RoleRank(ROLE_STAFF))
	assert.Equal(t, 3, RoleRank(ROLE_ADMIN))
	assert.Equal(t, 0, RoleRank("visitor"))
}
