package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionSingle    QuestionType = "single"
	QuestionMulti     QuestionType = "multi"
	QuestionTrueFalse QuestionType = "truefalse"
)

// swagger:model Quiz
type Quiz struct {
	Base
	CourseID     string         `gorm:"index;type:varchar(36)" json:"courseId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	PassingScore int            `gorm:"not null" json:"passingScore"`
	MaxAttempts  *int           `json:"maxAttempts,omitempty"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	Base
	QuizID               string                      `gorm:"index;type:varchar(36)" json:"quizId"`
	Order                int                         `gorm:"default:0" json:"order"`
	Prompt               string                      `gorm:"type:text;not null" json:"prompt"`
	Type                 QuestionType                `gorm:"size:20" json:"type"`
	Options              datatypes.JSONSlice[string] `json:"options"`
	CorrectOptionIndexes datatypes.JSONSlice[int]    `json:"correctOptionIndexes,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type AttemptAnswer struct {
	QuestionID            string `json:"questionId"`
	SelectedOptionIndexes []int  `json:"selectedOptionIndexes"`
}

// QuizAttempt is written once and never updated.
type QuizAttempt struct {
	ID            string                             `gorm:"primaryKey;type:varchar(36)" json:"id"`
	QuizID        string                             `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_quiz_number" json:"quizId"`
	CourseID      string                             `gorm:"type:varchar(36);index" json:"courseId"`
	UserID        string                             `gorm:"size:128;not null;uniqueIndex:idx_attempt_user_quiz_number" json:"userId"`
	AttemptNumber int                                `gorm:"not null;uniqueIndex:idx_attempt_user_quiz_number" json:"attemptNumber"`
	Answers       datatypes.JSONSlice[AttemptAnswer] `json:"answers"`
	Score         int                                `gorm:"not null" json:"score"`
	Passed        bool                               `json:"passed"`
	CreatedAt     time.Time                          `json:"createdAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
