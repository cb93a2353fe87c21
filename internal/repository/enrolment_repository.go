package repository

import (
	"context"
	"course_academy_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrolmentRepository struct {
	DB *gorm.DB
}

func NewEnrolmentRepository(db *gorm.DB) *EnrolmentRepository {
	return &EnrolmentRepository{DB: db}
}

// CreateIfAbsent inserts e unless the (user, course) pair already exists.
// The unique index decides, so concurrent callers never produce duplicates.
func (r *EnrolmentRepository) CreateIfAbsent(ctx context.Context, e *model.Enrolment) (bool, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *EnrolmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*model.Enrolment, error) {
	var e model.Enrolment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrolmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrolment, error) {
	var enrolments []model.Enrolment
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&enrolments).Error
	return enrolments, err
}

// AdvanceProgress raises progress on an active enrolment. Rows that are already
// completed or further along are left untouched.
func (r *EnrolmentRepository) AdvanceProgress(ctx context.Context, id string, percent int, status model.EnrolmentStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.Enrolment{}).
		Where("id = ? AND status <> ? AND progress_percent < ?", id, model.EnrolmentCompleted, percent).
		Updates(map[string]interface{}{
			"progress_percent": percent,
			"status":           status,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
