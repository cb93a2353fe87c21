package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserCreatesThenRefreshes(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, learner))
	first, err := svc.GetProfile(ctx, learner.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", first.Name)
	assert.Equal(t, model.Learner, first.Role)

	promoted := learner
	promoted.Role = model.Instructor
	promoted.Name = "Ada King"
	require.NoError(t, svc.EnsureUser(ctx, promoted))

	second, err := svc.GetProfile(ctx, learner.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", second.Name)
	assert.Equal(t, model.Instructor, second.Role)
	assert.False(t, second.LastSeen.Before(first.LastSeen))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureUserRejectsEmptySession(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	assert.ErrorIs(t, svc.EnsureUser(context.Background(), util.Session{}), util.ErrValidation)

	_, err := svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
