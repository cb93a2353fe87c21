package controller

import (
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EnrolmentController 选课接口
type EnrolmentController struct {
	EnrolmentService *service.EnrolmentService
}

func NewEnrolmentController(enrolmentService *service.EnrolmentService) *EnrolmentController {
	return &EnrolmentController{EnrolmentService: enrolmentService}
}

// UpdateProgressRequest 课程进度
// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	ProgressPercent *int `json:"progressPercent" binding:"required"`
}

// Enrol godoc
// @Summary 选课
// @Description 重复选课返回已有记录
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Enrolment}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/enrol [post]
func (c *EnrolmentController) Enrol(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	enrolment, err := c.EnrolmentService.CreateEnrolment(ctx.Request.Context(), session.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrolment)
}

// GetEnrolment godoc
// @Summary 当前用户在课程中的选课记录
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Enrolment}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/enrolment [get]
func (c *EnrolmentController) GetEnrolment(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	enrolment, err := c.EnrolmentService.GetEnrolmentForUserAndCourse(ctx.Request.Context(), session.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrolment)
}

// ListEnrolments godoc
// @Summary 我的选课
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrolment}
// @Router /api/enrolments [get]
func (c *EnrolmentController) ListEnrolments(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	enrolments, err := c.EnrolmentService.GetUserEnrolments(ctx.Request.Context(), session.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrolments)
}

// UpdateProgress godoc
// @Summary 更新课程进度
// @Tags 选课
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param request body UpdateProgressRequest true "进度"
// @Success 200 {object} util.Response{data=model.Enrolment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/enrolment/progress [patch]
func (c *EnrolmentController) UpdateProgress(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrolment, err := c.EnrolmentService.UpdateProgress(ctx.Request.Context(), session.UserID, ctx.Param("courseId"), *req.ProgressPercent)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrolment)
}
