package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	learner    = util.Session{UserID: "learner-1", Role: model.Learner, Name: "Ada Lovelace", Email: "ada@example.com"}
	instructor = util.Session{UserID: "instructor-1", Role: model.Instructor, Name: "Grace Hopper"}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, title string, status model.CourseStatus) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:       title,
		Description: "A course used in tests",
		Category:    "testing",
		Difficulty:  model.Beginner,
		Duration:    "2h",
		Outcomes:    []string{"write tests"},
		Status:      status,
	}
	require.NoError(t, repository.NewCourseRepository(db).Create(context.Background(), course))
	return course
}

func intPtr(v int) *int {
	return &v
}
