package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countAttempts(t *testing.T, db *gorm.DB, userID, quizID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Where("user_id = ? AND quiz_id = ?", userID, quizID).Count(&n).Error)
	return n
}

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(repository.NewQuizRepository(db), repository.NewCourseRepository(db))
}

func createTestQuiz(t *testing.T, svc *QuizService, courseID string, maxAttempts *int) *model.Quiz {
	t.Helper()
	quiz, err := svc.CreateQuiz(context.Background(), instructor, courseID, &model.Quiz{
		Title:        "Checkpoint",
		PassingScore: 50,
		MaxAttempts:  maxAttempts,
		Questions: []model.QuizQuestion{
			{Prompt: "Pick B", Type: model.QuestionSingle, Options: []string{"A", "B", "C"}, CorrectOptionIndexes: []int{1}},
			{Prompt: "Pick A and C", Type: model.QuestionMulti, Options: []string{"A", "B", "C"}, CorrectOptionIndexes: []int{2, 0}},
		},
	})
	require.NoError(t, err)
	return quiz
}

func TestCreateQuizOrdersQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)

	quiz := createTestQuiz(t, svc, course.ID, nil)

	stored, err := svc.GetQuiz(context.Background(), instructor, course.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	assert.Equal(t, "Pick B", stored.Questions[0].Prompt)
	assert.Equal(t, 2, stored.Questions[1].Order)
	assert.Equal(t, []int{0, 2}, []int(stored.Questions[1].CorrectOptionIndexes))
}

func TestCreateQuizRequiresStaffAndCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)

	_, err := svc.CreateQuiz(context.Background(), learner, course.ID, &model.Quiz{})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.CreateQuiz(context.Background(), instructor, "missing", &model.Quiz{Title: "x"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestLearnerViewHidesAnswerKey(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	quiz := createTestQuiz(t, svc, course.ID, nil)

	view, err := svc.GetQuiz(context.Background(), learner, course.ID, quiz.ID)
	require.NoError(t, err)
	for _, q := range view.Questions {
		assert.Empty(t, q.CorrectOptionIndexes)
	}

	list, err := svc.ListQuizzes(context.Background(), learner, course.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Questions[0].CorrectOptionIndexes)
}

func TestSubmitAttemptScoresAndNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	quiz := createTestQuiz(t, svc, course.ID, nil)
	ctx := context.Background()

	q1, q2 := quiz.Questions[0].ID, quiz.Questions[1].ID

	res, err := svc.SubmitAttempt(ctx, learner, course.ID, quiz.ID, map[string][]int{q1: {1}, q2: {0}})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.True(t, res.Passed)
	assert.Equal(t, 1, res.Attempt.AttemptNumber)

	res, err = svc.SubmitAttempt(ctx, learner, course.ID, quiz.ID, map[string][]int{q1: {1}, q2: {2, 0}})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 2, res.Attempt.AttemptNumber)

	attempts, summary, err := svc.GetAttemptSummary(ctx, learner, course.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 2, summary.AttemptsUsed)
	assert.Nil(t, summary.AttemptsRemaining)
	require.NotNil(t, summary.BestScore)
	assert.Equal(t, 100, *summary.BestScore)
	assert.Equal(t, []int{0, 2}, attempts[1].Answers[1].SelectedOptionIndexes)
}

func TestSubmitAttemptLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	quiz := createTestQuiz(t, svc, course.ID, intPtr(2))
	ctx := context.Background()

	answers := map[string][]int{quiz.Questions[0].ID: {0}, quiz.Questions[1].ID: {1}}
	for i := 0; i < 2; i++ {
		_, err := svc.SubmitAttempt(ctx, learner, course.ID, quiz.ID, answers)
		require.NoError(t, err)
	}

	_, err := svc.SubmitAttempt(ctx, learner, course.ID, quiz.ID, answers)
	assert.ErrorIs(t, err, util.ErrAttemptLimitExceeded)

	count := countAttempts(t, db, learner.UserID, quiz.ID)
	assert.EqualValues(t, 2, count)

	// the limit is per learner
	other := util.Session{UserID: "learner-2", Role: model.Learner}
	_, err = svc.SubmitAttempt(ctx, other, course.ID, quiz.ID, answers)
	assert.NoError(t, err)

	_, summary, err := svc.GetAttemptSummary(ctx, learner, course.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.AttemptsRemaining)
	assert.Equal(t, 0, *summary.AttemptsRemaining)
}

// sqlite answers racing writers with "database is locked" instead of
// queueing them, so each learner request is retried until it either lands or
// is refused by the limit.
func TestSubmitAttemptConcurrentLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	quiz := createTestQuiz(t, svc, course.ID, intPtr(2))
	answers := map[string][]int{quiz.Questions[0].ID: {1}, quiz.Questions[1].ID: {0, 2}}

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		limited int
		failed  []error
	)
	start := make(chan struct{})
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var err error
			for try := 0; try < 50; try++ {
				_, err = svc.SubmitAttempt(context.Background(), learner, course.ID, quiz.ID, answers)
				if err == nil || errors.Is(err, util.ErrAttemptLimitExceeded) {
					break
				}
				time.Sleep(time.Duration(try+1) * time.Millisecond)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, util.ErrAttemptLimitExceeded):
				limited++
			default:
				failed = append(failed, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Empty(t, failed)
	assert.Equal(t, 2, ok)
	assert.Equal(t, writers-2, limited)

	attempts, err := svc.GetUserAttempts(context.Background(), learner.UserID, quiz.ID)
	require.NoError(t, err)
	numbers := make([]int, 0, len(attempts))
	for _, a := range attempts {
		numbers = append(numbers, a.AttemptNumber)
	}
	sort.Ints(numbers)
	assert.Equal(t, []int{1, 2}, numbers)
	assert.EqualValues(t, 2, countAttempts(t, db, learner.UserID, quiz.ID))
}

func TestSubmitAttemptRejectsIncompleteWithoutRecording(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)
	quiz := createTestQuiz(t, svc, course.ID, intPtr(1))
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, learner, course.ID, quiz.ID, map[string][]int{quiz.Questions[0].ID: {1}})
	assert.ErrorIs(t, err, util.ErrIncompleteAnswers)
	assert.Equal(t, 400, util.HTTPStatusFromError(err))

	count := countAttempts(t, db, learner.UserID, quiz.ID)
	assert.Zero(t, count)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	course := seedCourse(t, db, "Go", model.CoursePublished)

	_, err := svc.SubmitAttempt(context.Background(), learner, course.ID, "nope", map[string][]int{})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
