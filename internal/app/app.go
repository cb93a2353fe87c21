package app

import (
	"context"
	"course_academy_backend/internal/config"
	"course_academy_backend/internal/controller"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"
	"course_academy_backend/internal/worker"
	"course_academy_backend/pkg/configwatcher"
	"course_academy_backend/pkg/database"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"course_academy_backend/pkg/security"
	"course_academy_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	origins         *security.AllowedOrigins
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	background context.Context
	stop       context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	enrolment   *repository.EnrolmentRepository
	quiz        *repository.QuizRepository
	assignment  *repository.AssignmentRepository
	certificate *repository.CertificateRepository
}

type services struct {
	storage     service.StorageProvider
	user        *service.UserService
	course      *service.CourseService
	enrolment   *service.EnrolmentService
	quiz        *service.QuizService
	assignment  *service.AssignmentService
	certificate *service.CertificateService
	artifact    *service.CertificateArtifactService
	queue       worker.Queue
}

type controllers struct {
	user        *controller.UserController
	course      *controller.CourseController
	enrolment   *controller.EnrolmentController
	quiz        *controller.QuizController
	assignment  *controller.AssignmentController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		enrolment:   repository.NewEnrolmentRepository(db),
		quiz:        repository.NewQuizRepository(db),
		assignment:  repository.NewAssignmentRepository(db),
		certificate: repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(r *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageProvider(cfg)
	s.user = service.NewUserService(r.user)
	s.course = service.NewCourseService(r.course, rdb, cfg.Catalog.CacheTTL)
	s.enrolment = service.NewEnrolmentService(r.enrolment, r.course)
	s.quiz = service.NewQuizService(r.quiz, r.course)
	s.assignment = service.NewAssignmentService(r.assignment, r.course, s.storage, cfg.Storage.MaxUploadMB)

	// 没有Redis时证书只写记录，文件由后续的补偿任务生成
	var queue service.ArtifactQueue
	if rdb != nil {
		q := worker.NewRedisQueue(rdb, cfg.Certificate.QueueName)
		s.queue = q
		queue = q
	}
	s.certificate = service.NewCertificateService(r.certificate, r.course, s.enrolment, queue, cfg.Certificate)

	artifact, err := service.NewCertificateArtifactService(r.certificate, r.course, r.user, s.storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize certificate renderer", zap.Error(err))
	}
	s.artifact = artifact

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		user:        controller.NewUserController(s.user),
		course:      controller.NewCourseController(s.course),
		enrolment:   controller.NewEnrolmentController(s.enrolment),
		quiz:        controller.NewQuizController(s.quiz),
		assignment:  controller.NewAssignmentController(s.assignment),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// certificateJobsEnabled reports whether this instance consumes the artifact
// queue. The pending sweep only feeds that queue, so it follows the worker.
func certificateJobsEnabled(s *services, cfg *config.Config) bool {
	return s.queue != nil && cfg.Certificate.WorkerEnabled
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if !certificateJobsEnabled(s, cfg) {
		return
	}
	w := worker.NewCertificateWorker(s.queue, s.artifact, cfg.Certificate.LockTTL)
	go w.Start(a.background)

	interval := cfg.Certificate.SweepInterval
	if interval <= 0 {
		return
	}
	go a.sweepPending(s.certificate, interval)
}

func (a *App) sweepPending(certs *service.CertificateService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.background.Done():
			return
		case <-ticker.C:
			n, err := certs.RequeuePending(a.background, interval, 100)
			if err != nil {
				logger.Log.Error("certificate sweep error", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("requeued pending certificates", zap.Int("count", n))
			}
		}
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认不自动迁移，需要 -migrate 参数
	if cfg.Server.Mode == "debug" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	background, stop := context.WithCancel(context.Background())
	app := &App{
		Config:     cfg,
		DB:         db,
		origins:    security.NewAllowedOrigins(cfg.CORS.AllowedOrigins),
		background: background,
		stop:       stop,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, catalog cache and certificate queue disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(c *config.Config) {
		app.origins.Set(c.CORS.AllowedOrigins)
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("course-academy", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		if err := configwatcher.WatchConfig(a.background, "configs", a.applyConfig); err != nil {
			logger.Log.Warn("config watcher disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停止证书worker、补偿任务和配置监听
	a.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
