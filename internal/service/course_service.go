package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const publishedCoursesKey = "catalog:published"

// CourseInput is the editable part of a course.
// swagger:model CourseInput
type CourseInput struct {
	Title        string             `json:"title" validate:"required,min=3"`
	Description  string             `json:"description" validate:"required,min=10"`
	Category     string             `json:"category" validate:"required,min=2"`
	Difficulty   model.Difficulty   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Duration     string             `json:"duration" validate:"required,min=1"`
	Outcomes     []string           `json:"outcomes"`
	ThumbnailURL string             `json:"thumbnailUrl" validate:"omitempty,url"`
	Status       model.CourseStatus `json:"status" validate:"omitempty,oneof=draft published"`
}

func (in *CourseInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Duration = strings.TrimSpace(in.Duration)
	if in.Status == "" {
		in.Status = model.CourseDraft
	}
	if in.Outcomes == nil {
		in.Outcomes = []string{}
	}
}

func (in *CourseInput) apply(c *model.Course) {
	c.Title = in.Title
	c.Description = in.Description
	c.Category = in.Category
	c.Difficulty = in.Difficulty
	c.Duration = in.Duration
	c.Outcomes = in.Outcomes
	c.ThumbnailURL = in.ThumbnailURL
	c.Status = in.Status
}

// swagger:model ModuleInput
type ModuleInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// swagger:model LessonInput
type LessonInput struct {
	Title       string           `json:"title" validate:"required,min=2"`
	Type        model.LessonType `json:"type" validate:"required,oneof=video pdf text mixed"`
	Content     string           `json:"content"`
	ResourceURL string           `json:"resourceUrl" validate:"omitempty,url"`
	Order       int              `json:"order"`
}

// CourseService 课程目录
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
	CacheTTL   time.Duration
}

func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client, cacheTTL time.Duration) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Redis: rdb, CacheTTL: cacheTTL}
}

// GetPublishedCourses lists published courses by title. Results are cached in
// redis when a client is configured.
func (s *CourseService) GetPublishedCourses(ctx context.Context) ([]model.Course, error) {
	if cached, ok := s.cachedPublished(ctx); ok {
		return cached, nil
	}

	courses, err := s.CourseRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, publishedCoursesKey, data, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CourseService) cachedPublished(ctx context.Context) ([]model.Course, bool) {
	if s.Redis == nil || s.CacheTTL <= 0 {
		return nil, false
	}
	data, err := s.Redis.Get(ctx, publishedCoursesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, publishedCoursesKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CourseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrCourseNotFound)
	}
	return course, nil
}

func (s *CourseService) GetModulesForCourse(ctx context.Context, courseID string) ([]model.Module, error) {
	return s.CourseRepo.ListModules(ctx, courseID)
}

func (s *CourseService) GetLessonsForModule(ctx context.Context, courseID, moduleID string) ([]model.Lesson, error) {
	return s.CourseRepo.ListLessons(ctx, courseID, moduleID)
}

func (s *CourseService) CreateCourse(ctx context.Context, session util.Session, in CourseInput) (*model.Course, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	in.normalize()
	if err := util.ValidateStruct(&in); err != nil {
		return nil, err
	}

	course := &model.Course{CreatedBy: session.UserID}
	in.apply(course)
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Log.Info("course created", zap.String("course_id", course.ID), zap.String("created_by", session.UserID))
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, session util.Session, courseID string, in CourseInput) (*model.Course, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	in.normalize()
	if err := util.ValidateStruct(&in); err != nil {
		return nil, err
	}

	course, err := s.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	in.apply(course)
	if err := s.CourseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return course, nil
}

func (s *CourseService) CreateModule(ctx context.Context, session util.Session, courseID string, in ModuleInput) (*model.Module, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := util.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := s.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	m := &model.Module{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
	}
	if err := s.CourseRepo.CreateModule(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) CreateLesson(ctx context.Context, session util.Session, courseID, moduleID string, in LessonInput) (*model.Lesson, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := util.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.FindModule(ctx, courseID, moduleID); err != nil {
		return nil, util.NotFoundOr(err, util.ErrModuleNotFound)
	}

	l := &model.Lesson{
		CourseID:    courseID,
		ModuleID:    moduleID,
		Title:       in.Title,
		Type:        in.Type,
		Content:     in.Content,
		ResourceURL: in.ResourceURL,
		Order:       in.Order,
	}
	if err := s.CourseRepo.CreateLesson(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
