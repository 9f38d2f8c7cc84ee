package auth

// JWTVerifier validates bearer tokens presented to the portal API.
// The middleware only depends on this interface so tests can swap in a fake.
type JWTVerifier interface {
	// VerifyToken validates a token and returns its claims.
	// Any failure is reported as domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases resources held by the verifier (JWKS refresh, HTTP clients)
	Close() error
}
