package controller

import (
	"context"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 由 database.Store 与 redis 适配器实现
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB    Pinger
	Cache Pinger // 可为 nil
}

func NewHealthController(db Pinger, cache Pinger) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

// Root godoc
// @Summary Greeting
// @Tags 系统
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.String(http.StatusOK, "EduFlow server is running")
}

// @Summary 健康检查
// @Description 检查 MongoDB 与 Redis 状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := c.DB.Ping(pingCtx); err != nil {
		logger.Log.Warn("health check: mongo unavailable", zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}
	if c.Cache != nil {
		if err := c.Cache.Ping(pingCtx); err != nil {
			// 缓存可降级，不影响整体状态
			logger.Log.Warn("health check: redis unavailable", zap.Error(err))
			components["cache"] = "down"
		} else {
			components["cache"] = "up"
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
