package repository

import (
	"context"
	"course_academy_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func byOrder(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).Order("created_at asc")
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Save(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	if err := r.DB.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.CoursePublished).
		Order("title asc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CreateModule(ctx context.Context, m *model.Module) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *CourseRepository) FindModule(ctx context.Context, courseID, moduleID string) (*model.Module, error) {
	var m model.Module
	if err := r.DB.WithContext(ctx).First(&m, "id = ? AND course_id = ?", moduleID, courseID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CourseRepository) ListModules(ctx context.Context, courseID string) ([]model.Module, error) {
	var modules []model.Module
	err := byOrder(r.DB.WithContext(ctx).Where("course_id = ?", courseID)).Find(&modules).Error
	return modules, err
}

func (r *CourseRepository) CreateLesson(ctx context.Context, l *model.Lesson) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *CourseRepository) ListLessons(ctx context.Context, courseID, moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := byOrder(r.DB.WithContext(ctx).Where("course_id = ? AND module_id = ?", courseID, moduleID)).Find(&lessons).Error
	return lessons, err
}
