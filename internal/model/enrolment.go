package model

type EnrolmentStatus string

const (
	EnrolmentActive    EnrolmentStatus = "active"
	EnrolmentCompleted EnrolmentStatus = "completed"
)

// Enrolment links a learner to a course. The (user_id, course_id) pair is unique.
type Enrolment struct {
	Base
	UserID          string          `gorm:"size:128;not null;uniqueIndex:idx_enrolment_user_course" json:"userId"`
	CourseID        string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrolment_user_course;index" json:"courseId"`
	Status          EnrolmentStatus `gorm:"size:20;default:'active'" json:"status"`
	ProgressPercent int             `gorm:"default:0" json:"progressPercent"`
}

func (Enrolment) TableName() string {
	return "enrolments"
}
