package auth

import "github.com/golang-jwt/jwt/v5"

// AuthenticatedRole is the role claim carried by signed-in users
const AuthenticatedRole = "authenticated"

// Claims is the subset of identity-provider claims the portal reads
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"` // "authenticated" or "anon"
	SessionID   string `json:"session_id"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}
