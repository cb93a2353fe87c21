package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"course_academy_backend/pkg/tracing"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuizService 处理测验与作答记录
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, CourseRepo: courseRepo}
}

// swagger:model SubmitAttemptResult
type SubmitAttemptResult struct {
	Attempt *model.QuizAttempt `json:"attempt"`
	Score   int                `json:"score"`
	Passed  bool               `json:"passed"`
}

// swagger:model AttemptSummary
type AttemptSummary struct {
	AttemptsUsed      int  `json:"attemptsUsed"`
	AttemptsRemaining *int `json:"attemptsRemaining"`
	BestScore         *int `json:"bestScore"`
	Passed            bool `json:"passed"`
}

// learnerView strips the answer key from a quiz.
func learnerView(quiz *model.Quiz) *model.Quiz {
	view := *quiz
	view.Questions = make([]model.QuizQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.CorrectOptionIndexes = nil
		view.Questions[i] = q
	}
	return &view
}

func (s *QuizService) GetQuiz(ctx context.Context, session util.Session, courseID, quizID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, courseID, quizID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrQuizNotFound)
	}
	if session.IsStaff() {
		return quiz, nil
	}
	return learnerView(quiz), nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, session util.Session, courseID string) ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if session.IsStaff() {
		return quizzes, nil
	}
	for i := range quizzes {
		quizzes[i] = *learnerView(&quizzes[i])
	}
	return quizzes, nil
}

// CreateQuiz stores a quiz with its questions. Question order follows the slice order.
func (s *QuizService) CreateQuiz(ctx context.Context, session util.Session, courseID string, quiz *model.Quiz) (*model.Quiz, error) {
	if !session.IsStaff() {
		return nil, util.ErrPermissionDenied
	}

	exists, err := s.CourseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	quiz.ID = ""
	quiz.CourseID = courseID
	for i := range quiz.Questions {
		quiz.Questions[i].ID = ""
		quiz.Questions[i].Order = i + 1
		quiz.Questions[i].CorrectOptionIndexes = normalizeSelection(quiz.Questions[i].CorrectOptionIndexes)
	}

	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	logger.Log.Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("course_id", courseID),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

// SubmitAttempt validates, gates, scores and records one attempt.
func (s *QuizService) SubmitAttempt(ctx context.Context, session util.Session, courseID, quizID string, answers map[string][]int) (result *SubmitAttemptResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.SubmitAttempt",
		attribute.String("quiz.id", quizID),
		attribute.String("user.id", session.UserID),
	)
	defer func() { tracing.End(span, err) }()

	quiz, err := s.QuizRepo.FindByID(ctx, courseID, quizID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrQuizNotFound)
	}

	normalized, err := validateAnswers(quiz, answers)
	if err != nil {
		monitoring.QuizAttempts.WithLabelValues("rejected").Inc()
		return nil, err
	}

	score, passed := ScoreAttempt(quiz, answers)

	attempt := &model.QuizAttempt{
		QuizID:   quiz.ID,
		CourseID: courseID,
		UserID:   session.UserID,
		Answers:  normalized,
		Score:    score,
		Passed:   passed,
	}
	if err := s.QuizRepo.CreateAttempt(ctx, attempt, quiz.MaxAttempts); err != nil {
		if errors.Is(err, util.ErrAttemptLimitExceeded) {
			monitoring.QuizAttempts.WithLabelValues("limited").Inc()
		}
		return nil, err
	}

	label := "failed"
	if passed {
		label = "passed"
	}
	monitoring.QuizAttempts.WithLabelValues(label).Inc()

	logger.Log.Info("quiz attempt recorded",
		zap.String("quiz_id", quiz.ID),
		zap.String("user_id", session.UserID),
		zap.Int("attempt", attempt.AttemptNumber),
		zap.Int("score", score),
		zap.Bool("passed", passed),
	)

	return &SubmitAttemptResult{Attempt: attempt, Score: score, Passed: passed}, nil
}

func (s *QuizService) GetUserAttempts(ctx context.Context, userID, quizID string) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttempts(ctx, userID, quizID)
}

// GetAttemptSummary returns the caller's attempts on a quiz and how many remain.
func (s *QuizService) GetAttemptSummary(ctx context.Context, session util.Session, courseID, quizID string) ([]model.QuizAttempt, *AttemptSummary, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, courseID, quizID)
	if err != nil {
		return nil, nil, util.NotFoundOr(err, util.ErrQuizNotFound)
	}

	attempts, err := s.GetUserAttempts(ctx, session.UserID, quiz.ID)
	if err != nil {
		return nil, nil, err
	}
	return attempts, summarizeAttempts(quiz, attempts), nil
}

func summarizeAttempts(quiz *model.Quiz, attempts []model.QuizAttempt) *AttemptSummary {
	summary := &AttemptSummary{AttemptsUsed: len(attempts)}
	for _, a := range attempts {
		if summary.BestScore == nil || a.Score > *summary.BestScore {
			best := a.Score
			summary.BestScore = &best
		}
		if a.Passed {
			summary.Passed = true
		}
	}
	if quiz.MaxAttempts != nil {
		remaining := *quiz.MaxAttempts - len(attempts)
		if remaining < 0 {
			remaining = 0
		}
		summary.AttemptsRemaining = &remaining
	}
	return summary
}
