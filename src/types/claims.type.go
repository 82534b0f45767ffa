package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the subset of the identity provider's access-token claims the
// client cares about. Tokens are never verified here; the backend is the
// authority.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
