package controller

import (
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController 测验接口
type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmitAttemptRequest 提交测验答案
// swagger:model SubmitAttemptRequest
type SubmitAttemptRequest struct {
	Answers []model.AttemptAnswer `json:"answers"`
}

// QuestionRequest 题目
// swagger:model QuestionRequest
type QuestionRequest struct {
	Prompt               string             `json:"prompt" binding:"required"`
	Type                 model.QuestionType `json:"type" binding:"required"`
	Options              []string           `json:"options" binding:"required"`
	CorrectOptionIndexes []int              `json:"correctOptionIndexes" binding:"required"`
}

// CreateQuizRequest 创建测验
// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passingScore"`
	MaxAttempts  *int              `json:"maxAttempts"`
	Questions    []QuestionRequest `json:"questions"`
}

func (r *CreateQuizRequest) toModel() *model.Quiz {
	quiz := &model.Quiz{
		Title:        r.Title,
		Description:  r.Description,
		PassingScore: r.PassingScore,
		MaxAttempts:  r.MaxAttempts,
		Questions:    make([]model.QuizQuestion, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Prompt:               q.Prompt,
			Type:                 q.Type,
			Options:              q.Options,
			CorrectOptionIndexes: q.CorrectOptionIndexes,
		})
	}
	return quiz
}

// ListQuizzes godoc
// @Summary 课程测验列表
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/courses/{courseId}/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	quizzes, err := c.QuizService.ListQuizzes(ctx.Request.Context(), session, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary 测验详情
// @Description 学员视图不包含正确答案
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/quizzes/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), session, ctx.Param("courseId"), ctx.Param("quizId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// GetAttempts godoc
// @Summary 我的作答记录
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/quizzes/{quizId}/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	attempts, summary, err := c.QuizService.GetAttemptSummary(ctx.Request.Context(), session, ctx.Param("courseId"), ctx.Param("quizId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"attempts": attempts,
		"summary":  summary,
	})
}

// SubmitAttempt godoc
// @Summary 提交测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param quizId path string true "测验ID"
// @Param request body SubmitAttemptRequest true "答案"
// @Success 201 {object} util.Response{data=service.SubmitAttemptResult}
// @Failure 400 {object} util.Response "答案不完整或无效"
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "超过最大作答次数"
// @Router /api/courses/{courseId}/quizzes/{quizId}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers := make(map[string][]int, len(req.Answers))
	for _, a := range req.Answers {
		if _, dup := answers[a.QuestionID]; dup {
			util.BadRequest(ctx, "duplicate answer for question "+a.QuestionID)
			return
		}
		answers[a.QuestionID] = a.SelectedOptionIndexes
	}

	result, err := c.QuizService.SubmitAttempt(ctx.Request.Context(), session, ctx.Param("courseId"), ctx.Param("quizId"), answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param request body CreateQuizRequest true "测验"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses/{courseId}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), session, ctx.Param("courseId"), req.toModel())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}
