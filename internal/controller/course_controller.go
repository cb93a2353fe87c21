package controller

import (
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController 课程目录接口
type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 已发布课程列表
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.GetPublishedCourses(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourseByID(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ListModules godoc
// @Summary 课程模块
// @Tags 课程
// @Produce json
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /api/courses/{courseId}/modules [get]
func (c *CourseController) ListModules(ctx *gin.Context) {
	modules, err := c.CourseService.GetModulesForCourse(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// ListLessons godoc
// @Summary 模块课时
// @Tags 课程
// @Produce json
// @Param courseId path string true "课程ID"
// @Param moduleId path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/courses/{courseId}/modules/{moduleId}/lessons [get]
func (c *CourseController) ListLessons(ctx *gin.Context) {
	lessons, err := c.CourseService.GetLessonsForModule(ctx.Request.Context(), ctx.Param("courseId"), ctx.Param("moduleId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CourseInput true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req service.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), session, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param request body service.CourseInput true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req service.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), session, ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateModule godoc
// @Summary 创建模块
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param request body service.ModuleInput true "模块信息"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /api/admin/courses/{courseId}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req service.ModuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CourseService.CreateModule(ctx.Request.Context(), session, ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// CreateLesson godoc
// @Summary 创建课时
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Param moduleId path string true "模块ID"
// @Param request body service.LessonInput true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/admin/courses/{courseId}/modules/{moduleId}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.CreateLesson(ctx.Request.Context(), session, ctx.Param("courseId"), ctx.Param("moduleId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}
