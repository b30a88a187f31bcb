package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrNotJWT = errors.New("access token is not a JWT")

// Claims are the fields the terminal reads from the backend's access token.
type Claims struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token without verifying its signature. The
// terminal does not hold the signing key; the backend verifies every call.
func ParseClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrNotJWT
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.Time.After(now)
}

func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}
