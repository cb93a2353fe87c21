package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrIncompleteAnswers, http.StatusBadRequest},
		{Validationf("bad %s", "input"), http.StatusBadRequest},
		{ErrQuizNotFound, http.StatusNotFound},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{ErrAttemptLimitExceeded, http.StatusConflict},
		{fmt.Errorf("write: %w", gorm.ErrDuplicatedKey), http.StatusConflict},
		{ErrPermissionDenied, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatusFromError(c.err), "%v", c.err)
	}
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, NotFoundOr(gorm.ErrRecordNotFound, ErrCourseNotFound), ErrCourseNotFound)
	other := errors.New("connection reset")
	assert.Equal(t, other, NotFoundOr(other, ErrCourseNotFound))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", SafeFilename("../../report.pdf"))
	assert.Equal(t, "my_file_1_.txt", SafeFilename("my file(1).txt"))
	assert.Equal(t, "x.txt", SafeFilename(`C:\Users\me\x.txt`))
	assert.Equal(t, "file", SafeFilename(".."))
}
