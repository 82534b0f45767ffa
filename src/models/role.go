package models

type UserRole string

const (
	ROLE_STUDENT UserRole = "student"
	ROLE_STAFF   UserRole = "staff"
	ROLE_ADMIN   UserRole = "admin"
)

// Role ranks form a total order used for access checks. Unknown roles rank 0
// and never grant access.
var roleRanks = map[UserRole]int{
	ROLE_STUDENT: 1,
	ROLE_STAFF:   2,
	ROLE_ADMIN:   3,
}

func RoleRank(role UserRole) int {
	return roleRanks[role]
}

// HasAccess reports whether userRole meets the minimum requiredRole.
func HasAccess(userRole, requiredRole UserRole) bool {
	rank := roleRanks[userRole]
	if rank == 0 {
		return false
	}
	return rank >= roleRanks[requiredRole]
}
