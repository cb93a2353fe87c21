package model

import "gorm.io/datatypes"

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// swagger:model Course
type Course struct {
	Base
	Title        string                      `gorm:"size:255;not null;index" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Category     string                      `gorm:"size:100" json:"category"`
	Difficulty   Difficulty                  `gorm:"size:20" json:"difficulty"`
	Duration     string                      `gorm:"size:50" json:"duration"`
	Outcomes     datatypes.JSONSlice[string] `json:"outcomes"`
	ThumbnailURL string                      `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	Status       CourseStatus                `gorm:"size:20;index;default:'draft'" json:"status"`
	CreatedBy    string                      `gorm:"size:128" json:"createdBy"`
}

func (Course) TableName() string {
	return "courses"
}

type Module struct {
	Base
	CourseID    string `gorm:"index;type:varchar(36)" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (Module) TableName() string {
	return "course_modules"
}

type LessonType string

const (
	LessonVideo LessonType = "video"
	LessonPDF   LessonType = "pdf"
	LessonText  LessonType = "text"
	LessonMixed LessonType = "mixed"
)

type Lesson struct {
	Base
	CourseID    string     `gorm:"index;type:varchar(36)" json:"courseId"`
	ModuleID    string     `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Type        LessonType `gorm:"size:20" json:"type"`
	Content     string     `gorm:"type:text" json:"content,omitempty"`
	ResourceURL string     `gorm:"size:512" json:"resourceUrl,omitempty"`
	Order       int        `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "course_lessons"
}
