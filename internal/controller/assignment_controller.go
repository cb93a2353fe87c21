package controller

import (
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AssignmentController 作业提交与批改接口
type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// CreateAssignmentRequest 创建作业
// swagger:model CreateAssignmentRequest
type CreateAssignmentRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Required    bool       `json:"required"`
	DueAt       *time.Time `json:"dueAt"`
}

// GradeSubmissionRequest 批改
// swagger:model GradeSubmissionRequest
type GradeSubmissionRequest struct {
	Grade    *float64 `json:"grade" binding:"required"`
	Passed   *bool    `json:"passed" binding:"required"`
	Feedback string   `json:"feedback"`
}

// ListAssignments godoc
// @Summary 课程作业列表
// @Tags 作业
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{courseId}/assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.AssignmentService.ListAssignments(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// GetAssignment godoc
// @Summary 作业详情及我的提交
// @Tags 作业
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param assignmentId path string true "作业ID"
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/assignments/{assignmentId} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	courseID, assignmentID := ctx.Param("courseId"), ctx.Param("assignmentId")
	assignment, err := c.AssignmentService.GetAssignment(ctx.Request.Context(), courseID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	submissions, err := c.AssignmentService.ListUserSubmissions(ctx.Request.Context(), session, courseID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"assignment":  assignment,
		"submissions": submissions,
	})
}

// Submit godoc
// @Summary 提交作业
// @Description 文本与文件至少提供一个
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param assignmentId path string true "作业ID"
// @Param textResponse formData string false "文本作答"
// @Param file formData file false "附件"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/assignments/{assignmentId}/submissions [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	if c.AssignmentService.MaxUploadBytes > 0 {
		// leave room for the other multipart fields
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.AssignmentService.MaxUploadBytes+1<<20)
	}

	var file *service.SubmissionFile
	header, err := ctx.FormFile("file")
	switch {
	case err == nil:
		f, err := header.Open()
		if err != nil {
			util.BadRequest(ctx, "unable to read uploaded file")
			return
		}
		defer f.Close()
		file = &service.SubmissionFile{Name: header.Filename, Size: header.Size, Reader: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.SubmitAssignment(ctx.Request.Context(), session,
		ctx.Param("courseId"), ctx.Param("assignmentId"), ctx.PostForm("textResponse"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// CreateAssignment godoc
// @Summary 创建作业
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param request body CreateAssignmentRequest true "作业"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/admin/courses/{courseId}/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.CreateAssignment(ctx.Request.Context(), session, ctx.Param("courseId"), &model.Assignment{
		Title:       req.Title,
		Description: req.Description,
		Required:    req.Required,
		DueAt:       req.DueAt,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// ListSubmissions godoc
// @Summary 作业提交列表
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param assignmentId path string true "作业ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /api/admin/courses/{courseId}/assignments/{assignmentId}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	subs, err := c.AssignmentService.ListSubmissions(ctx.Request.Context(), session, ctx.Param("courseId"), ctx.Param("assignmentId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// GradeSubmission godoc
// @Summary 批改作业
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param assignmentId path string true "作业ID"
// @Param submissionId path string true "提交ID"
// @Param request body GradeSubmissionRequest true "批改结果"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId}/assignments/{assignmentId}/submissions/{submissionId}/grade [put]
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.GradeSubmission(ctx.Request.Context(), session,
		ctx.Param("courseId"), ctx.Param("assignmentId"), ctx.Param("submissionId"),
		*req.Grade, *req.Passed, req.Feedback)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}
