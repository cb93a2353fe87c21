package repository

import (
	"context"
	"course_academy_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) FindByID(ctx context.Context, courseID, assignmentID string) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.DB.WithContext(ctx).First(&a, "id = ? AND course_id = ?", assignmentID, courseID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) CreateSubmission(ctx context.Context, s *model.AssignmentSubmission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *AssignmentRepository) FindSubmission(ctx context.Context, assignmentID, submissionID string) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	if err := r.DB.WithContext(ctx).First(&s, "id = ? AND assignment_id = ?", submissionID, assignmentID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID string) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	err := r.DB.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *AssignmentRepository) ListSubmissionsByUser(ctx context.Context, assignmentID, userID string) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	err := r.DB.WithContext(ctx).
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}

func (r *AssignmentRepository) SaveGrade(ctx context.Context, s *model.AssignmentSubmission) error {
	return r.DB.WithContext(ctx).Model(s).Updates(map[string]interface{}{
		"grade":     s.Grade,
		"passed":    s.Passed,
		"feedback":  s.Feedback,
		"status":    s.Status,
		"graded_by": s.GradedBy,
		"graded_at": s.GradedAt,
	}).Error
}
