package util

import (
	"course_academy_backend/internal/model"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

// Claims are minted by the identity provider; Subject carries the user id.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the caller identity handed explicitly to every service call.
type Session struct {
	UserID string
	Role   model.UserRole
	Name   string
	Email  string
}

func (s Session) IsStaff() bool {
	return s.Role.IsStaff()
}

func ParseJWT(tokenString, secret, issuer string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func SessionFromClaims(claims *Claims) Session {
	return Session{
		UserID: claims.Subject,
		Role:   model.ParseRole(claims.Role),
		Name:   claims.Name,
		Email:  claims.Email,
	}
}

func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

func GetSession(c *gin.Context) (Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
