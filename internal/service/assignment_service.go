package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"course_academy_backend/pkg/tracing"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SubmissionFile is an optional attachment to an assignment submission.
type SubmissionFile struct {
	Name   string
	Size   int64
	Reader io.ReadSeeker
}

// AssignmentService 处理作业提交与批改
type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	Storage        StorageProvider
	MaxUploadBytes int64
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	courseRepo *repository.CourseRepository,
	storage StorageProvider,
	maxUploadMB int64,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		Storage:        storage,
		MaxUploadBytes: maxUploadMB << 20,
	}
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, session util.Session, courseID string, a *model.Assignment) (*model.Assignment, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	if strings.TrimSpace(a.Title) == "" {
		return nil, util.Validationf("assignment title is required")
	}

	exists, err := s.CourseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	a.ID = ""
	a.CourseID = courseID
	if err := s.AssignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, courseID, assignmentID string) (*model.Assignment, error) {
	a, err := s.AssignmentRepo.FindByID(ctx, courseID, assignmentID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrAssignmentNotFound)
	}
	return a, nil
}

func (s *AssignmentService) ListAssignments(ctx context.Context, courseID string) ([]model.Assignment, error) {
	return s.AssignmentRepo.ListByCourse(ctx, courseID)
}

// SubmitAssignment records a submission with a text response, an uploaded
// file, or both.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, session util.Session, courseID, assignmentID, text string, file *SubmissionFile) (sub *model.AssignmentSubmission, err error) {
	ctx, span := tracing.StartSpan(ctx, "AssignmentService.SubmitAssignment",
		attribute.String("assignment.id", assignmentID),
		attribute.String("user.id", session.UserID),
	)
	defer func() { tracing.End(span, err) }()

	assignment, err := s.GetAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" && file == nil {
		return nil, util.Validationf("a text response or a file is required")
	}

	sub = &model.AssignmentSubmission{
		AssignmentID: assignment.ID,
		CourseID:     courseID,
		UserID:       session.UserID,
		TextResponse: text,
		Status:       model.SubmissionSubmitted,
	}

	var key string
	if file != nil {
		key, sub.FileURL, err = s.upload(ctx, courseID, assignment.ID, session.UserID, file)
		if err != nil {
			return nil, err
		}
	}

	if err := s.AssignmentRepo.CreateSubmission(ctx, sub); err != nil {
		if key != "" {
			if delErr := s.Storage.Delete(ctx, key); delErr != nil {
				logger.Log.Warn("orphaned submission file", zap.String("key", key), zap.Error(delErr))
			}
		}
		return nil, err
	}

	logger.Log.Info("assignment submitted",
		zap.String("submission_id", sub.ID),
		zap.String("assignment_id", assignment.ID),
		zap.String("user_id", session.UserID),
	)
	return sub, nil
}

func (s *AssignmentService) upload(ctx context.Context, courseID, assignmentID, userID string, file *SubmissionFile) (string, string, error) {
	if s.MaxUploadBytes > 0 && file.Size > s.MaxUploadBytes {
		return "", "", util.Validationf("file exceeds %d MB", s.MaxUploadBytes>>20)
	}

	contentType, err := util.ValidateMimeType(file.Reader, util.AllowedSubmissionTypes)
	if err != nil {
		return "", "", util.Validationf("%v", err)
	}
	if _, err := file.Reader.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}

	key := fmt.Sprintf("assignments/%s/%s/%s/%d_%s",
		courseID, assignmentID, userID, time.Now().UnixNano(), util.SafeFilename(file.Name))
	url, err := s.Storage.Upload(ctx, key, file.Reader, file.Size, contentType)
	if err != nil {
		return "", "", fmt.Errorf("upload submission file: %w", err)
	}
	return key, url, nil
}

// ListSubmissions returns every submission for an assignment, newest first.
func (s *AssignmentService) ListSubmissions(ctx context.Context, session util.Session, courseID, assignmentID string) ([]model.AssignmentSubmission, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.GetAssignment(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListSubmissions(ctx, assignmentID)
}

func (s *AssignmentService) ListUserSubmissions(ctx context.Context, session util.Session, courseID, assignmentID string) ([]model.AssignmentSubmission, error) {
	if _, err := s.GetAssignment(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListSubmissionsByUser(ctx, assignmentID, session.UserID)
}

// GradeSubmission stores the grade exactly as given and marks the submission graded.
// Grading an already graded submission overwrites the earlier result.
func (s *AssignmentService) GradeSubmission(ctx context.Context, session util.Session, courseID, assignmentID, submissionID string, grade float64, passed bool, feedback string) (*model.AssignmentSubmission, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.GetAssignment(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}

	sub, err := s.AssignmentRepo.FindSubmission(ctx, assignmentID, submissionID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrSubmissionNotFound)
	}

	now := time.Now()
	sub.Grade = &grade
	sub.Passed = &passed
	sub.Feedback = feedback
	sub.Status = model.SubmissionGraded
	sub.GradedBy = session.UserID
	sub.GradedAt = &now

	if err := s.AssignmentRepo.SaveGrade(ctx, sub); err != nil {
		return nil, err
	}

	monitoring.SubmissionsGraded.Inc()
	logger.Log.Info("submission graded",
		zap.String("submission_id", sub.ID),
		zap.String("graded_by", session.UserID),
		zap.Float64("grade", grade),
		zap.Bool("passed", passed),
	)
	return sub, nil
}
