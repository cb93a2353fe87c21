package util

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("resource not found")
	ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrConflict             = errors.New("resource conflict")
)

var (
	ErrIncompleteAnswers      = fmt.Errorf("%w: incomplete answers", ErrValidation)
	ErrCourseNotFound         = fmt.Errorf("%w: course", ErrNotFound)
	ErrModuleNotFound         = fmt.Errorf("%w: module", ErrNotFound)
	ErrQuizNotFound           = fmt.Errorf("%w: quiz", ErrNotFound)
	ErrAssignmentNotFound     = fmt.Errorf("%w: assignment", ErrNotFound)
	ErrSubmissionNotFound     = fmt.Errorf("%w: submission", ErrNotFound)
	ErrEnrolmentNotFound      = fmt.Errorf("%w: enrolment", ErrNotFound)
	ErrCertificateNotFound    = fmt.Errorf("%w: certificate", ErrNotFound)
	ErrUserNotFound           = fmt.Errorf("%w: user", ErrNotFound)
	ErrCertificateNotEligible = fmt.Errorf("%w: course not completed", ErrValidation)
)

// Validationf builds an error that matches ErrValidation.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundOr maps gorm.ErrRecordNotFound to notFound and returns other errors unchanged.
func NotFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAttemptLimitExceeded), errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
