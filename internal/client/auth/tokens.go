package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsExpired reports whether the access token's embedded exp claim is in
// the past. The signature is not verified: the client has no key and
// only needs the timestamp. Any decode failure counts as expired
// (fail-closed), so a garbage token never passes for a live session.
func IsExpired(token string) bool {
	return isExpiredAt(token, time.Now())
}

func isExpiredAt(token string, now time.Time) bool {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return now.After(exp.Time)
}

// ExpiresAt returns the access token's expiry instant, or the zero time
// when the token cannot be decoded. Used for display only.
func ExpiresAt(token string) time.Time {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
