package app

import (
	"eduflow_backend/docs"
	"eduflow_backend/internal/config"
	"eduflow_backend/internal/middleware"
	"eduflow_backend/internal/service"
	"eduflow_backend/pkg/monitoring"
	"eduflow_backend/pkg/security"
	"eduflow_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func setupMiddlewares(router *gin.Engine, cfg *config.Config, origins *security.OriginSet) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(origins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if cfg.RateLimit.MaxRequests > 0 && window > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func newRouter(cfg *config.Config, c *controllers, auth *service.AuthService, origins *security.OriginSet) *gin.Engine {
	router := gin.New()
	setupMiddlewares(router, cfg, origins)
	registerRoutes(router, c, auth)
	return router
}

func registerRoutes(router *gin.Engine, c *controllers, auth *service.AuthService) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", c.health.Root)
	router.GET("/health", c.health.HealthCheck)

	// 会话
	router.POST("/jwt", c.auth.IssueToken)
	router.GET("/logout", c.auth.Logout)

	registerAssignmentRoutes(router, c, auth)
	registerSubmissionRoutes(router, c, auth)
}

func registerAssignmentRoutes(router *gin.Engine, c *controllers, auth *service.AuthService) {
	router.POST("/add-assignment", middleware.TryAuth(auth), c.assignment.Create)
	router.GET("/all-assignment", c.assignment.List)
	router.GET("/assignment-count", c.assignment.Count)
	router.DELETE("/delete/:id", c.assignment.Delete)
	router.GET("/update/:id", c.assignment.Get)
	router.PUT("/update/:id", c.assignment.Update)
	router.GET("/details/:id", c.assignment.Get)
	router.POST("/upload-photo", c.assignment.UploadPhoto)
}

func registerSubmissionRoutes(router *gin.Engine, c *controllers, auth *service.AuthService) {
	router.POST("/submission", c.submission.Create)
	router.GET("/submitted/:id", c.submission.Get)
	router.PUT("/status-update/:id", c.submission.UpdateGrade)

	// 只能查看自己的提交记录
	self := router.Group("/")
	self.Use(middleware.CookieAuth(auth), middleware.RequireSelf("email"))
	{
		self.GET("/submission/:email", c.submission.ListByEmail)
		self.GET("/status/:email/:status", c.submission.ListByStatus)
		self.GET("/assignment-completion/:email", c.submission.Completion)
	}
}
