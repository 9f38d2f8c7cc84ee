package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbportal/internal/domain"
)

func newTestVerifier(t *testing.T) (*KeyfuncVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kf := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	return NewKeyfuncVerifier(kf, logger), key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "reader@example.com",
		Role:  AuthenticatedRole,
	}
}

func TestVerifyTokenAccepts(t *testing.T) {
	v, key := newTestVerifier(t)

	claims, err := v.VerifyToken(sign(t, key, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "reader@example.com", claims.Email)
}

func TestVerifyTokenRejects(t *testing.T) {
	v, key := newTestVerifier(t)

	tests := []struct {
		name   string
		mutate func(c *Claims)
	}{
		{"expired", func(c *Claims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) }},
		{"no expiry", func(c *Claims) { c.ExpiresAt = nil }},
		{"no subject", func(c *Claims) { c.Subject = "" }},
		{"anon role", func(c *Claims) { c.Role = "anon" }},
		{"anonymous user", func(c *Claims) { c.IsAnonymous = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)

			_, err := v.VerifyToken(sign(t, key, claims))
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := v.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("hmac signed", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = v.VerifyToken(signed)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	v, _ := newTestVerifier(t)
	calls := 0
	v.close = func() { calls++ }

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.Equal(t, 1, calls)
}
