package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether token is a JWT whose expiry has already
// passed. The signature is deliberately not checked: the server stays
// the authority on validity, this is only a local hint that lets the
// client skip a round-trip guaranteed to be rejected. Opaque non-JWT
// tokens and JWTs without an exp claim are never considered expired
// here.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
