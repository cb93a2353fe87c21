package repository

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// attemptWriteRetries bounds how often a lost attempt-number race is re-counted.
const attemptWriteRetries = 3

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func preloadQuestions(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", byOrder)
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, courseID, quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := preloadQuestions(r.DB.WithContext(ctx)).
		First(&quiz, "id = ? AND course_id = ?", quizID, courseID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := preloadQuestions(r.DB.WithContext(ctx)).
		Where("course_id = ?", courseID).
		Order("created_at asc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListAttempts(ctx context.Context, userID, quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number asc").
		Find(&attempts).Error
	return attempts, err
}

// CreateAttempt counts prior attempts and writes the next one in a single
// transaction. The (user, quiz, attempt_number) unique index rejects a
// concurrent writer that counted the same total; that writer re-counts and
// then either takes the next number or hits the limit.
func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt, maxAttempts *int) error {
	if attempt.ID == "" {
		attempt.ID = model.NewID()
	}

	for i := 0; i < attemptWriteRetries; i++ {
		err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&model.QuizAttempt{}).
				Where("user_id = ? AND quiz_id = ?", attempt.UserID, attempt.QuizID).
				Count(&count).Error; err != nil {
				return err
			}
			if maxAttempts != nil && count >= int64(*maxAttempts) {
				return util.ErrAttemptLimitExceeded
			}
			attempt.AttemptNumber = int(count) + 1
			return tx.Create(attempt).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return util.ErrConflict
}
