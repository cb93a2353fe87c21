package service

import (
	"context"
	"course_academy_backend/internal/config"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"course_academy_backend/pkg/tracing"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompletionChecker reports whether a learner has completed a course.
type CompletionChecker interface {
	IsCompleted(ctx context.Context, userID, courseID string) (bool, error)
}

// ArtifactQueue accepts certificate ids whose document still has to be rendered.
type ArtifactQueue interface {
	Enqueue(ctx context.Context, certificateID string) error
}

// CertificateService 负责证书签发
type CertificateService struct {
	CertRepo   *repository.CertificateRepository
	CourseRepo *repository.CourseRepository
	Enrolments CompletionChecker
	Queue      ArtifactQueue
	Config     config.CertificateConfig

	now func() time.Time
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	enrolments CompletionChecker,
	queue ArtifactQueue,
	cfg config.CertificateConfig,
) *CertificateService {
	if cfg.NumberPrefix == "" {
		cfg.NumberPrefix = "IBS"
	}
	return &CertificateService{
		CertRepo:   certRepo,
		CourseRepo: courseRepo,
		Enrolments: enrolments,
		Queue:      queue,
		Config:     cfg,
		now:        time.Now,
	}
}

// CertificateNumber formats <prefix>-<courseId>-<userId>-<unix millis>.
func CertificateNumber(prefix, courseID, userID string, issuedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%d", prefix, courseID, userID, issuedAt.UnixMilli())
}

// CreateCertificateRecord issues the certificate for (user, course). A second
// request for the same pair returns the certificate issued first.
func (s *CertificateService) CreateCertificateRecord(ctx context.Context, userID, courseID string) (cert *model.Certificate, err error) {
	ctx, span := tracing.StartSpan(ctx, "CertificateService.CreateCertificateRecord",
		attribute.String("course.id", courseID),
		attribute.String("user.id", userID),
	)
	defer func() { tracing.End(span, err) }()

	if strings.TrimSpace(userID) == "" || strings.TrimSpace(courseID) == "" {
		return nil, util.Validationf("user id and course id are required")
	}

	exists, err := s.CourseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	if s.Config.RequireCompletion {
		if err := s.checkEligible(ctx, userID, courseID); err != nil {
			return nil, err
		}
	}

	existing, err := s.CertRepo.FindByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	issuedAt := s.now()
	cert = &model.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: CertificateNumber(s.Config.NumberPrefix, courseID, userID, issuedAt),
		IssuedAt:          issuedAt,
	}

	created, err := s.CertRepo.CreateIfAbsent(ctx, cert)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.CertRepo.FindByUserAndCourse(ctx, userID, courseID)
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.String("certificate_id", cert.ID),
		zap.String("number", cert.CertificateNumber),
	)

	s.enqueue(ctx, cert.ID)
	return cert, nil
}

func (s *CertificateService) checkEligible(ctx context.Context, userID, courseID string) error {
	done, err := s.Enrolments.IsCompleted(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrCertificateNotEligible
		}
		return err
	}
	if !done {
		return util.ErrCertificateNotEligible
	}
	return nil
}

// enqueue hands the certificate to the artifact generator. Failures only log;
// the pending sweep picks the certificate up again.
func (s *CertificateService) enqueue(ctx context.Context, certificateID string) {
	if s.Queue == nil {
		return
	}
	if err := s.Queue.Enqueue(ctx, certificateID); err != nil {
		logger.Log.Warn("certificate artifact enqueue failed",
			zap.String("certificate_id", certificateID),
			zap.Error(err),
		)
	}
}

func (s *CertificateService) GetCertificatesForUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	if userID == "" {
		return []model.Certificate{}, nil
	}
	return s.CertRepo.ListByUser(ctx, userID)
}

func (s *CertificateService) GetCertificate(ctx context.Context, id string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrCertificateNotFound)
	}
	return cert, nil
}

// MarkArtifactReady stores the download URL of a rendered certificate.
func (s *CertificateService) MarkArtifactReady(ctx context.Context, certificateID, downloadURL string) (*model.Certificate, error) {
	if strings.TrimSpace(downloadURL) == "" {
		return nil, util.Validationf("downloadUrl is required")
	}
	if err := s.CertRepo.SetDownloadURL(ctx, certificateID, downloadURL); err != nil {
		return nil, util.NotFoundOr(err, util.ErrCertificateNotFound)
	}
	return s.GetCertificate(ctx, certificateID)
}

// RequeuePending enqueues certificates issued more than grace ago that still
// have no document. It returns how many were queued.
func (s *CertificateService) RequeuePending(ctx context.Context, grace time.Duration, limit int) (int, error) {
	if s.Queue == nil {
		return 0, nil
	}
	pending, err := s.CertRepo.ListPending(ctx, s.now().Add(-grace), limit)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, c := range pending {
		if err := s.Queue.Enqueue(ctx, c.ID); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}
