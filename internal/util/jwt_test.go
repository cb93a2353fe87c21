package util

import (
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/testutil"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseJWT(t *testing.T) {
	id := testutil.Identity{UserID: "auth0|42", Name: "Ada", Email: "ada@example.com", Role: string(model.Instructor)}
	token, err := testutil.SignToken(id, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret, "")
	require.NoError(t, err)

	s := SessionFromClaims(claims)
	assert.Equal(t, "auth0|42", s.UserID)
	assert.Equal(t, model.Instructor, s.Role)
	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, "ada@example.com", s.Email)
	assert.True(t, s.IsStaff())
}

func TestParseJWTRejects(t *testing.T) {
	id := testutil.Identity{UserID: "u1", Role: string(model.Learner)}

	token, err := testutil.SignToken(id, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "another-secret-another-secret-xx", "")
	assert.Error(t, err, "wrong secret")

	expired, err := testutil.SignToken(id, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret, "")
	assert.Error(t, err, "expired")

	_, err = ParseJWT(token, testSecret, "https://issuer.example.com/")
	assert.Error(t, err, "issuer mismatch")

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: "learner"})
	signed, err := noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseJWT(signed, testSecret, "")
	assert.Error(t, err, "missing subject")
}

func TestUnknownRoleFallsBackToLearner(t *testing.T) {
	s := SessionFromClaims(&Claims{Role: "root", RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}})
	assert.Equal(t, model.Learner, s.Role)
	assert.False(t, s.IsStaff())
}
