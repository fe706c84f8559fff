package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestTokenExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	future := time.Now().Add(time.Hour).Unix()

	assert.True(t, tokenExpired(signedJWT(t, jwt.MapClaims{"exp": past})))
	assert.False(t, tokenExpired(signedJWT(t, jwt.MapClaims{"exp": future})))
	assert.False(t, tokenExpired(signedJWT(t, jwt.MapClaims{"sub": "1"})), "no exp claim")
	assert.False(t, tokenExpired("opaque-bearer-token"), "non-JWT tokens are left to the server")
	assert.False(t, tokenExpired(""))
}
