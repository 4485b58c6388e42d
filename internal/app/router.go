package app

import (
	"eduhub_backend/docs"
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/middleware"
	"eduhub_backend/internal/model"
	"eduhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/forgot-password", c.auth.ForgotPassword)
			auth.POST("/reset-password", c.auth.ResetPassword)
		}

		// 课程目录对游客开放
		public.GET("/courses", c.catalog.ListCourses)
		public.GET("/courses/:id", c.catalog.GetCourse)
		public.GET("/courses/:id/reviews", c.review.List)
		public.GET("/categories", c.catalog.ListCategories)
		public.GET("/articles", c.catalog.ListArticles)
		public.GET("/articles/:slug", c.catalog.GetArticle)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	// 报名与学习进度
	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.DELETE("/courses/:id/enroll", c.enrollment.Drop)
	rg.GET("/enrollments", c.enrollment.ListMine)
	rg.POST("/progress", c.progress.SetProgress)
	rg.GET("/courses/:id/progress", c.progress.GetCourseProgress)

	rg.POST("/courses/:id/reviews", c.review.Submit)

	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.GET("/certificates", c.dashboard.ListCertificates)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/courses", c.admin.CreateCourse)
		admin.PUT("/courses/:id", c.admin.UpdateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)

		admin.POST("/courses/:id/lessons", c.admin.CreateLesson)
		admin.DELETE("/lessons/:id", c.admin.DeleteLesson)
		admin.POST("/lessons/:id/video", c.admin.UploadLessonVideo)

		admin.PUT("/enrollments/:id/status", c.admin.OverrideEnrollment)

		admin.POST("/categories", c.admin.CreateCategory)
		admin.POST("/articles", c.admin.CreateArticle)
		admin.PUT("/articles/:id/publish", c.admin.PublishArticle)

		admin.GET("/stats", c.admin.GetStats)
	}
}
