package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrolmentService(db *gorm.DB) *EnrolmentService {
	return NewEnrolmentService(repository.NewEnrolmentRepository(db), repository.NewCourseRepository(db))
}

func countEnrolments(t *testing.T, db *gorm.DB, userID, courseID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Enrolment{}).Where("user_id = ? AND course_id = ?", userID, courseID).Count(&n).Error)
	return n
}

func TestCreateEnrolmentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrolmentService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	ctx := context.Background()

	first, err := svc.CreateEnrolment(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrolmentActive, first.Status)
	assert.Equal(t, 0, first.ProgressPercent)

	second, err := svc.CreateEnrolment(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, countEnrolments(t, db, learner.UserID, course.ID))
}

func TestCreateEnrolmentConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrolmentService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := svc.CreateEnrolment(context.Background(), learner.UserID, course.ID)
			if err == nil {
				ids[i] = e.ID
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, countEnrolments(t, db, learner.UserID, course.ID))
	stored, err := svc.GetEnrolmentForUserAndCourse(context.Background(), learner.UserID, course.ID)
	require.NoError(t, err)
	for _, id := range ids {
		if id != "" {
			assert.Equal(t, stored.ID, id)
		}
	}
}

func TestCreateEnrolmentUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrolmentService(db)

	_, err := svc.CreateEnrolment(context.Background(), learner.UserID, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetEnrolments(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrolmentService(db)
	ctx := context.Background()
	a := seedCourse(t, db, "A", model.CoursePublished)
	b := seedCourse(t, db, "B", model.CoursePublished)

	_, err := svc.GetEnrolmentForUserAndCourse(ctx, learner.UserID, a.ID)
	assert.ErrorIs(t, err, util.ErrEnrolmentNotFound)

	_, err = svc.CreateEnrolment(ctx, learner.UserID, a.ID)
	require.NoError(t, err)
	_, err = svc.CreateEnrolment(ctx, learner.UserID, b.ID)
	require.NoError(t, err)
	_, err = svc.CreateEnrolment(ctx, "someone-else", a.ID)
	require.NoError(t, err)

	list, err := svc.GetUserEnrolments(ctx, learner.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := svc.GetUserEnrolments(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrolmentService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	ctx := context.Background()

	_, err := svc.UpdateProgress(ctx, learner.UserID, course.ID, 10)
	assert.ErrorIs(t, err, util.ErrEnrolmentNotFound)

	_, err = svc.CreateEnrolment(ctx, learner.UserID, course.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, learner.UserID, course.ID, 101)
	assert.ErrorIs(t, err, util.ErrValidation)

	e, err := svc.UpdateProgress(ctx, learner.UserID, course.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, e.ProgressPercent)

	e, err = svc.UpdateProgress(ctx, learner.UserID, course.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, e.ProgressPercent, "progress never decreases")

	e, err = svc.UpdateProgress(ctx, learner.UserID, course.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, model.EnrolmentCompleted, e.Status)

	done, err := svc.IsCompleted(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.True(t, done)

	stored, err := svc.GetEnrolmentForUserAndCourse(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.ProgressPercent)
	assert.Equal(t, model.EnrolmentCompleted, stored.Status)
}
