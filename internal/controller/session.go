package controller

import (
	"course_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// requireSession writes a 401 and returns false when the request carries no session.
func requireSession(ctx *gin.Context) (util.Session, bool) {
	session, ok := util.GetSession(ctx)
	if !ok || session.UserID == "" {
		util.Unauthorized(ctx)
		return util.Session{}, false
	}
	return session, true
}
