package service

import (
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/util"
	"sort"
)

// normalizeSelection returns the selection as a sorted set.
func normalizeSelection(selected []int) []int {
	if len(selected) == 0 {
		return nil
	}
	out := make([]int, len(selected))
	copy(out, selected)
	sort.Ints(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// isExactMatch reports whether selected and correct contain the same indexes.
func isExactMatch(selected, correct []int) bool {
	a := normalizeSelection(selected)
	b := normalizeSelection(correct)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// percentScore is round(100*correct/total) with halves rounded up.
func percentScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// ScoreAttempt grades the answers against the quiz and reports the score and pass flag.
// Answers must already be validated.
func ScoreAttempt(quiz *model.Quiz, answers map[string][]int) (score int, passed bool) {
	correct := 0
	for _, q := range quiz.Questions {
		if isExactMatch(answers[q.ID], q.CorrectOptionIndexes) {
			correct++
		}
	}
	score = percentScore(correct, len(quiz.Questions))
	return score, score >= quiz.PassingScore
}

// validateAnswers checks the answers against the quiz and returns them as
// normalised AttemptAnswers in question order.
func validateAnswers(quiz *model.Quiz, answers map[string][]int) ([]model.AttemptAnswer, error) {
	known := make(map[string]struct{}, len(quiz.Questions))
	for _, q := range quiz.Questions {
		known[q.ID] = struct{}{}
	}
	for id := range answers {
		if _, ok := known[id]; !ok {
			return nil, util.Validationf("unknown question %s", id)
		}
	}

	out := make([]model.AttemptAnswer, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		selected := normalizeSelection(answers[q.ID])
		if len(selected) == 0 {
			return nil, util.ErrIncompleteAnswers
		}
		for _, idx := range selected {
			if idx < 0 || idx >= len(q.Options) {
				return nil, util.Validationf("option %d out of range for question %s", idx, q.ID)
			}
		}
		if q.Type != model.QuestionMulti && len(selected) > 1 {
			return nil, util.Validationf("question %s accepts a single option", q.ID)
		}
		out = append(out, model.AttemptAnswer{QuestionID: q.ID, SelectedOptionIndexes: selected})
	}
	return out, nil
}

// validateQuiz checks a quiz definition before it is stored.
func validateQuiz(quiz *model.Quiz) error {
	if quiz.Title == "" {
		return util.Validationf("quiz title is required")
	}
	if len(quiz.Questions) == 0 {
		return util.Validationf("quiz must have at least one question")
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		return util.Validationf("passingScore must be between 0 and 100")
	}
	if quiz.MaxAttempts != nil && *quiz.MaxAttempts < 1 {
		return util.Validationf("maxAttempts must be at least 1")
	}

	for i, q := range quiz.Questions {
		if q.Prompt == "" {
			return util.Validationf("question %d has no prompt", i+1)
		}
		switch q.Type {
		case model.QuestionSingle, model.QuestionMulti, model.QuestionTrueFalse:
		default:
			return util.Validationf("question %d has unknown type %q", i+1, q.Type)
		}
		if len(q.Options) < 2 {
			return util.Validationf("question %d needs at least two options", i+1)
		}
		if q.Type == model.QuestionTrueFalse && len(q.Options) != 2 {
			return util.Validationf("question %d: true/false questions have exactly two options", i+1)
		}

		correct := normalizeSelection(q.CorrectOptionIndexes)
		if len(correct) == 0 {
			return util.Validationf("question %d has no correct option", i+1)
		}
		if q.Type != model.QuestionMulti && len(correct) > 1 {
			return util.Validationf("question %d accepts a single correct option", i+1)
		}
		for _, idx := range correct {
			if idx < 0 || idx >= len(q.Options) {
				return util.Validationf("question %d: correct option %d out of range", i+1, idx)
			}
		}
	}
	return nil
}
