package app

import (
	"course_academy_backend/docs"
	"course_academy_backend/internal/config"
	"course_academy_backend/internal/middleware"
	"course_academy_backend/internal/model"
	"course_academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ProvisionMiddleware(s.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	// 3. 讲师/管理员接口
	a.registerAdminRoutes(router, c, s, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// 课程目录
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:courseId", c.course.GetCourse)
		public.GET("/courses/:courseId/modules", c.course.ListModules)
		public.GET("/courses/:courseId/modules/:moduleId/lessons", c.course.ListLessons)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)

	// 选课
	rg.POST("/courses/:courseId/enrol", c.enrolment.Enrol)
	rg.GET("/courses/:courseId/enrolment", c.enrolment.GetEnrolment)
	rg.PATCH("/courses/:courseId/enrolment/progress", c.enrolment.UpdateProgress)
	rg.GET("/enrolments", c.enrolment.ListEnrolments)

	// 测验
	rg.GET("/courses/:courseId/quizzes", c.quiz.ListQuizzes)
	rg.GET("/courses/:courseId/quizzes/:quizId", c.quiz.GetQuiz)
	rg.GET("/courses/:courseId/quizzes/:quizId/attempts", c.quiz.GetAttempts)
	rg.POST("/courses/:courseId/quizzes/:quizId/attempts", c.quiz.SubmitAttempt)

	// 作业
	rg.GET("/courses/:courseId/assignments", c.assignment.ListAssignments)
	rg.GET("/courses/:courseId/assignments/:assignmentId", c.assignment.GetAssignment)
	rg.POST("/courses/:courseId/assignments/:assignmentId/submissions", c.assignment.Submit)

	// 证书
	rg.POST("/courses/:courseId/certificate", c.certificate.Issue)
	rg.GET("/certificates", c.certificate.ListMine)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ProvisionMiddleware(s.user),
		middleware.RoleMiddleware(model.Instructor),
	)
	{
		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:courseId", c.course.UpdateCourse)
		admin.POST("/courses/:courseId/modules", c.course.CreateModule)
		admin.POST("/courses/:courseId/modules/:moduleId/lessons", c.course.CreateLesson)

		admin.POST("/courses/:courseId/quizzes", c.quiz.CreateQuiz)

		admin.POST("/courses/:courseId/assignments", c.assignment.CreateAssignment)
		admin.GET("/courses/:courseId/assignments/:assignmentId/submissions", c.assignment.ListSubmissions)
		admin.PUT("/courses/:courseId/assignments/:assignmentId/submissions/:submissionId/grade", c.assignment.GradeSubmission)

		admin.PUT("/certificates/:certificateId/artifact", c.certificate.MarkArtifactReady)
	}
}
