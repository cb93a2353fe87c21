// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the subject of a signed test token.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// SignToken mints an HS256 access token shaped like the identity provider's.
// A negative ttl yields an already expired token.
func SignToken(id Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"name":  id.Name,
		"email": id.Email,
		"role":  id.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
