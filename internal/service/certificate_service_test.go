package service

import (
	"context"
	"course_academy_backend/internal/config"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (q *recordingQueue) Enqueue(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.ids = append(q.ids, id)
	return nil
}

func newCertificateService(db *gorm.DB, queue ArtifactQueue, cfg config.CertificateConfig) *CertificateService {
	return NewCertificateService(
		repository.NewCertificateRepository(db),
		repository.NewCourseRepository(db),
		newEnrolmentService(db),
		queue,
		cfg,
	)
}

func TestCertificateNumberFormat(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "IBS-course-1-user-1-1700000000123", CertificateNumber("IBS", "course-1", "user-1", at))

	a := CertificateNumber("IBS", "c1", "u1", at)
	b := CertificateNumber("IBS", "c1", "u2", at)
	c := CertificateNumber("IBS", "c1", "u1", at.Add(time.Millisecond))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCreateCertificateRecord(t *testing.T) {
	db := newTestDB(t)
	queue := &recordingQueue{}
	svc := newCertificateService(db, queue, config.CertificateConfig{NumberPrefix: "IBS"})
	course := seedCourse(t, db, "Go", model.CoursePublished)
	ctx := context.Background()

	cert, err := svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cert.CertificateNumber, "IBS-"+course.ID+"-"+learner.UserID+"-"))
	assert.Empty(t, cert.DownloadURL)
	assert.False(t, cert.IssuedAt.IsZero())
	assert.Equal(t, []string{cert.ID}, queue.ids)

	again, err := svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)
	assert.Equal(t, cert.CertificateNumber, again.CertificateNumber)
	assert.Len(t, queue.ids, 1, "no second job for an existing certificate")

	list, err := svc.GetCertificatesForUser(ctx, learner.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateCertificateRecordDistinctPerPair(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db, nil, config.CertificateConfig{})
	a := seedCourse(t, db, "A", model.CoursePublished)
	b := seedCourse(t, db, "B", model.CoursePublished)
	ctx := context.Background()

	c1, err := svc.CreateCertificateRecord(ctx, learner.UserID, a.ID)
	require.NoError(t, err)
	c2, err := svc.CreateCertificateRecord(ctx, learner.UserID, b.ID)
	require.NoError(t, err)
	c3, err := svc.CreateCertificateRecord(ctx, "learner-2", a.ID)
	require.NoError(t, err)

	assert.NotEqual(t, c1.CertificateNumber, c2.CertificateNumber)
	assert.NotEqual(t, c1.CertificateNumber, c3.CertificateNumber)
	assert.Contains(t, c2.CertificateNumber, b.ID)
	assert.Contains(t, c3.CertificateNumber, "learner-2")
}

func TestCreateCertificateEnqueueFailureIsNotFatal(t *testing.T) {
	db := newTestDB(t)
	queue := &recordingQueue{err: errors.New("redis down")}
	svc := newCertificateService(db, queue, config.CertificateConfig{})
	course := seedCourse(t, db, "Go", model.CoursePublished)

	cert, err := svc.CreateCertificateRecord(context.Background(), learner.UserID, course.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, cert.ID)
}

func TestCreateCertificateRequireCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db, nil, config.CertificateConfig{RequireCompletion: true})
	enrolments := newEnrolmentService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	ctx := context.Background()

	_, err := svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	assert.ErrorIs(t, err, util.ErrCertificateNotEligible)

	_, err = enrolments.CreateEnrolment(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	_, err = svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	assert.ErrorIs(t, err, util.ErrCertificateNotEligible)

	_, err = enrolments.UpdateProgress(ctx, learner.UserID, course.ID, 100)
	require.NoError(t, err)
	_, err = svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	assert.NoError(t, err)
}

type failingChecker struct{ err error }

func (c failingChecker) IsCompleted(ctx context.Context, userID, courseID string) (bool, error) {
	return false, c.err
}

func TestCreateCertificateEligibilityError(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	cfg := config.CertificateConfig{RequireCompletion: true}
	ctx := context.Background()

	storeErr := errors.New("store unavailable")
	svc := NewCertificateService(repository.NewCertificateRepository(db), repository.NewCourseRepository(db), failingChecker{err: storeErr}, nil, cfg)
	_, err := svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	assert.ErrorIs(t, err, storeErr)

	svc.Enrolments = failingChecker{err: util.ErrEnrolmentNotFound}
	_, err = svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	assert.ErrorIs(t, err, util.ErrCertificateNotEligible)

	certs, err := svc.GetCertificatesForUser(ctx, learner.UserID)
	require.NoError(t, err)
	assert.Empty(t, certs)
}

func TestCreateCertificateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db, nil, config.CertificateConfig{})

	_, err := svc.CreateCertificateRecord(context.Background(), "", "course")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.CreateCertificateRecord(context.Background(), learner.UserID, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestMarkArtifactReadyAndRequeue(t *testing.T) {
	db := newTestDB(t)
	queue := &recordingQueue{}
	svc := newCertificateService(db, queue, config.CertificateConfig{})
	course := seedCourse(t, db, "Go", model.CoursePublished)
	ctx := context.Background()

	pending, err := svc.CreateCertificateRecord(ctx, learner.UserID, course.ID)
	require.NoError(t, err)
	ready, err := svc.CreateCertificateRecord(ctx, "learner-2", course.ID)
	require.NoError(t, err)

	_, err = svc.MarkArtifactReady(ctx, ready.ID, "")
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = svc.MarkArtifactReady(ctx, "missing", "/uploads/x.png")
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)

	updated, err := svc.MarkArtifactReady(ctx, ready.ID, "/uploads/x.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.png", updated.DownloadURL)

	queue.ids = nil
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	n, err := svc.RequeuePending(ctx, time.Minute, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{pending.ID}, queue.ids)
}
