package repository

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/database"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// interleaveWriter makes a rival writer claim the attempt number being
// written, inside the same transaction and just before the insert, for the
// first `times` inserts. It returns how often it fired.
func interleaveWriter(t *testing.T, db *gorm.DB, times int) *int {
	t.Helper()
	fired := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:rival_attempt", func(tx *gorm.DB) {
		attempt, ok := tx.Statement.Dest.(*model.QuizAttempt)
		if !ok || fired >= times {
			return
		}
		fired++
		err := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO quiz_attempts (id, quiz_id, course_id, user_id, attempt_number, answers, score, passed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			model.NewID(), attempt.QuizID, attempt.CourseID, attempt.UserID, attempt.AttemptNumber, "[]", 0, false, time.Now(),
		).Error
		if err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)
	return &fired
}

func newAttempt() *model.QuizAttempt {
	return &model.QuizAttempt{QuizID: "quiz-1", CourseID: "course-1", UserID: "learner-1", Score: 100, Passed: true}
}

func storedAttempts(t *testing.T, repo *QuizRepository) []model.QuizAttempt {
	t.Helper()
	attempts, err := repo.ListAttempts(context.Background(), "learner-1", "quiz-1")
	require.NoError(t, err)
	return attempts
}

func TestCreateAttemptNumbersSequentially(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.CreateAttempt(ctx, newAttempt(), intPtr(2)))
	}
	err := repo.CreateAttempt(ctx, newAttempt(), intPtr(2))
	assert.ErrorIs(t, err, util.ErrAttemptLimitExceeded)

	attempts := storedAttempts(t, repo)
	require.Len(t, attempts, 2)
	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, 2, attempts[1].AttemptNumber)
}

func TestCreateAttemptRecountsAfterLostRace(t *testing.T) {
	db := newTestDB(t)
	fired := interleaveWriter(t, db, 1)
	repo := NewQuizRepository(db)

	attempt := newAttempt()
	require.NoError(t, repo.CreateAttempt(context.Background(), attempt, intPtr(2)))
	assert.Equal(t, 1, *fired)

	// the rival row went down with the failed transaction, so the retry
	// counted zero again and took number 1
	assert.Equal(t, 1, attempt.AttemptNumber)
	attempts := storedAttempts(t, repo)
	require.Len(t, attempts, 1)
	assert.Equal(t, attempt.ID, attempts[0].ID)
}

func TestCreateAttemptGivesUpWithConflict(t *testing.T) {
	db := newTestDB(t)
	fired := interleaveWriter(t, db, attemptWriteRetries)
	repo := NewQuizRepository(db)

	err := repo.CreateAttempt(context.Background(), newAttempt(), nil)
	assert.ErrorIs(t, err, util.ErrConflict)
	assert.Equal(t, 409, util.HTTPStatusFromError(err))
	assert.Equal(t, attemptWriteRetries, *fired)
	assert.Empty(t, storedAttempts(t, repo))
}

func intPtr(v int) *int {
	return &v
}
