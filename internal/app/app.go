package app

import (
	"context"
	"eduflow_backend/internal/config"
	"eduflow_backend/internal/controller"
	"eduflow_backend/internal/repository"
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/configwatcher"
	"eduflow_backend/pkg/database"
	"eduflow_backend/pkg/logger"
	"eduflow_backend/pkg/monitoring"
	"eduflow_backend/pkg/security"
	"eduflow_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           *database.Store
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	origins         *security.OriginSet
	configCallbacks []func(*config.Config)
}

type services struct {
	auth       *service.AuthService
	assignment *service.AssignmentService
	submission *service.SubmissionService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	assignment *controller.AssignmentController
	submission *controller.SubmissionController
	health     *controller.HealthController
}

// redisPinger 让 redis 客户端满足 controller.Pinger
type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reload(cfg *config.Config) {
	logger.Log.Info("config reloaded", zap.String("path", cfg.Path))
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initServices(cfg *config.Config) *services {
	// 未启用 Redis 时保持接口为 nil，避免 nil 指针装箱
	var cache service.CountCache
	if a.Redis != nil {
		cache = repository.NewCountCache(a.Redis, cfg.Redis.CountTTL)
	}

	assignments := service.NewAssignmentService(repository.NewAssignmentRepository(a.Store), cache)
	return &services{
		auth:       service.NewAuthService(&cfg.JWT),
		assignment: assignments,
		submission: service.NewSubmissionService(repository.NewSubmissionRepository(a.Store), assignments),
		storage:    service.NewStorageService(cfg),
	}
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	var cachePinger controller.Pinger
	if a.Redis != nil {
		cachePinger = redisPinger{rdb: a.Redis}
	}

	return &controllers{
		auth:       controller.NewAuthController(s.auth, cfg.Server.IsRelease()),
		assignment: controller.NewAssignmentController(s.assignment, s.storage),
		submission: controller.NewSubmissionController(s.submission),
		health:     controller.NewHealthController(a.Store, cachePinger),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	store, err := database.Connect(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 计数缓存可选，连接失败时直接查库
		logger.Log.Warn("Redis unavailable, count cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Redis:   rdb,
		origins: security.NewOriginSet(cfg.CORS.AllowedOrigins),
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	svcs := app.initServices(cfg)
	ctrls := app.initControllers(svcs, cfg)

	app.Router = newRouter(cfg, ctrls, svcs.auth, app.origins)

	if cfg.Storage.Type == util.StorageLocal {
		app.Router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		app.origins.Update(c.CORS.AllowedOrigins)
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetMode(c.Server.Mode)
	})
	if cfg.Path != "" {
		go configwatcher.WatchConfig(cfg.Path, app.reload)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := a.Store.Close(ctx); err != nil {
		logger.Log.Error("Failed to disconnect MongoDB", zap.Error(err))
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
