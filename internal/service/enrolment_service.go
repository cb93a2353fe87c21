package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"course_academy_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EnrolmentService 管理学员选课记录
type EnrolmentService struct {
	EnrolmentRepo *repository.EnrolmentRepository
	CourseRepo    *repository.CourseRepository
}

func NewEnrolmentService(enrolmentRepo *repository.EnrolmentRepository, courseRepo *repository.CourseRepository) *EnrolmentService {
	return &EnrolmentService{EnrolmentRepo: enrolmentRepo, CourseRepo: courseRepo}
}

// CreateEnrolment returns the existing enrolment for the pair or creates an active one.
func (s *EnrolmentService) CreateEnrolment(ctx context.Context, userID, courseID string) (enrolment *model.Enrolment, err error) {
	ctx, span := tracing.StartSpan(ctx, "EnrolmentService.CreateEnrolment",
		attribute.String("course.id", courseID),
		attribute.String("user.id", userID),
	)
	defer func() { tracing.End(span, err) }()

	if userID == "" {
		return nil, util.Validationf("user id is required")
	}

	exists, err := s.CourseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	candidate := &model.Enrolment{
		UserID:          userID,
		CourseID:        courseID,
		Status:          model.EnrolmentActive,
		ProgressPercent: 0,
	}
	created, err := s.EnrolmentRepo.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if created {
		monitoring.EnrolmentsCreated.Inc()
		logger.Log.Info("enrolment created", zap.String("user_id", userID), zap.String("course_id", courseID))
		return candidate, nil
	}

	return s.EnrolmentRepo.FindByUserAndCourse(ctx, userID, courseID)
}

func (s *EnrolmentService) GetEnrolmentForUserAndCourse(ctx context.Context, userID, courseID string) (*model.Enrolment, error) {
	e, err := s.EnrolmentRepo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrEnrolmentNotFound)
	}
	return e, nil
}

func (s *EnrolmentService) GetUserEnrolments(ctx context.Context, userID string) ([]model.Enrolment, error) {
	if userID == "" {
		return []model.Enrolment{}, nil
	}
	return s.EnrolmentRepo.ListByUser(ctx, userID)
}

// UpdateProgress records course progress. Progress never moves backwards and
// reaching 100 completes the enrolment for good.
func (s *EnrolmentService) UpdateProgress(ctx context.Context, userID, courseID string, percent int) (*model.Enrolment, error) {
	if percent < 0 || percent > 100 {
		return nil, util.Validationf("progress must be between 0 and 100")
	}

	e, err := s.GetEnrolmentForUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if e.Status == model.EnrolmentCompleted || percent <= e.ProgressPercent {
		return e, nil
	}

	status := model.EnrolmentActive
	if percent == 100 {
		status = model.EnrolmentCompleted
	}
	advanced, err := s.EnrolmentRepo.AdvanceProgress(ctx, e.ID, percent, status)
	if err != nil {
		return nil, err
	}
	if !advanced {
		// a concurrent update got further first
		return s.GetEnrolmentForUserAndCourse(ctx, userID, courseID)
	}

	e.ProgressPercent = percent
	e.Status = status
	if status == model.EnrolmentCompleted {
		logger.Log.Info("enrolment completed", zap.String("user_id", userID), zap.String("course_id", courseID))
	}
	return e, nil
}

// IsCompleted reports whether the learner has completed the course.
func (s *EnrolmentService) IsCompleted(ctx context.Context, userID, courseID string) (bool, error) {
	e, err := s.GetEnrolmentForUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return e.Status == model.EnrolmentCompleted, nil
}
