package app

import (
	"context"
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/controller"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/service"
	"eduhub_backend/pkg/configwatcher"
	"eduhub_backend/pkg/database"
	"eduhub_backend/pkg/logger"
	"eduhub_backend/pkg/monitoring"
	"eduhub_backend/pkg/security"
	"eduhub_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	category    *repository.CategoryRepository
	course      *repository.CourseRepository
	lesson      *repository.LessonRepository
	enrollment  *repository.EnrollmentRepository
	progress    *repository.ProgressRepository
	review      *repository.ReviewRepository
	certificate *repository.CertificateRepository
	achievement *repository.AchievementRepository
	article     *repository.ArticleRepository
}

type services struct {
	mail       *service.MailService
	storage    *service.StorageService
	auth       *service.AuthService
	catalog    *service.CatalogService
	enrollment *service.EnrollmentService
	learning   *service.LearningService
	review     *service.ReviewService
	user       *service.UserService
	dashboard  *service.DashboardService
	admin      *service.AdminService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	catalog    *controller.CatalogController
	enrollment *controller.EnrollmentController
	progress   *controller.ProgressController
	review     *controller.ReviewController
	dashboard  *controller.DashboardController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		category:    repository.NewCategoryRepository(db),
		course:      repository.NewCourseRepository(db),
		lesson:      repository.NewLessonRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		progress:    repository.NewProgressRepository(db),
		review:      repository.NewReviewRepository(db),
		certificate: repository.NewCertificateRepository(db),
		achievement: repository.NewAchievementRepository(db),
		article:     repository.NewArticleRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.mail = service.NewMailService(cfg)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, service.NewRedisTokenStore(rdb), s.mail, cfg)
	s.catalog = service.NewCatalogService(repos.course, repos.category, repos.review, repos.article, rdb)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.user, s.mail)
	s.learning = service.NewLearningService(
		repos.lesson,
		repos.progress,
		repos.enrollment,
		repos.certificate,
		repos.achievement,
		repos.course,
		repos.user,
		s.mail,
		db,
	)
	s.review = service.NewReviewService(repos.review, repos.course)
	s.user = service.NewUserService(repos.user, s.storage)
	s.dashboard = service.NewDashboardService(repos.enrollment, repos.certificate, repos.achievement)
	s.admin = service.NewAdminService(
		repos.course,
		repos.lesson,
		repos.category,
		repos.article,
		repos.enrollment,
		s.storage,
		s.catalog,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		catalog:    controller.NewCatalogController(s.catalog),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		progress:   controller.NewProgressController(s.learning),
		review:     controller.NewReviewController(s.review),
		dashboard:  controller.NewDashboardController(s.dashboard),
		admin:      controller.NewAdminController(s.admin),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// release 模式默认跳过自动迁移，除非带 -migrate 启动
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 不可用时降级运行：详情缓存失效，密码重置不可用
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("eduhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：中间件和服务持有 *Config，原地覆盖即可生效
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(reloaded interface{}) {
		if next, ok := reloaded.(*config.Config); ok {
			next.ForceMigrate = cfg.ForceMigrate
			next.MigrateOnly = cfg.MigrateOnly
			*cfg = *next
			logger.Log.Info("configuration reloaded")
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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

	// 停掉邮件队列，丢弃未发送的任务
	if a.services != nil && a.services.mail != nil {
		a.services.mail.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
