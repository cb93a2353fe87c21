package model

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// swagger:model Assignment
type Assignment struct {
	Base
	CourseID    string     `gorm:"index;type:varchar(36)" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Required    bool       `gorm:"default:false" json:"required"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type AssignmentSubmission struct {
	Base
	AssignmentID string           `gorm:"index;type:varchar(36)" json:"assignmentId"`
	CourseID     string           `gorm:"index;type:varchar(36)" json:"courseId"`
	UserID       string           `gorm:"index;size:128" json:"userId"`
	TextResponse string           `gorm:"type:text" json:"textResponse,omitempty"`
	FileURL      string           `gorm:"size:512" json:"fileUrl,omitempty"`
	Status       SubmissionStatus `gorm:"size:20;default:'submitted'" json:"status"`
	Grade        *float64         `json:"grade,omitempty"`
	Passed       *bool            `json:"passed,omitempty"`
	Feedback     string           `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy     string           `gorm:"size:128" json:"gradedBy,omitempty"`
	GradedAt     *time.Time       `json:"gradedAt,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
