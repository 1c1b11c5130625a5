package middleware

import (
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/logger"
	"eduflow_backend/pkg/monitoring"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// extractToken Cookie 优先，其次 Authorization: Bearer
func extractToken(c *gin.Context, cookieName string) string {
	if tokenString, _ := c.Cookie(cookieName); tokenString != "" {
		return tokenString
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// CookieAuth 校验会话 token（Cookie 优先，其次 Authorization: Bearer），
// 失败一律 401 并中断，不会进入后续 handler
func CookieAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, auth.CookieName())
		if tokenString == "" {
			monitoring.AuthFailures.WithLabelValues("missing_token").Inc()
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(tokenString)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, util.ErrTokenExpired) {
				reason = "expired_token"
			}
			monitoring.AuthFailures.WithLabelValues(reason).Inc()
			logger.Log.Debug("token verification failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RequireSelf 要求 token 中的 email 与路径参数一致，否则 403
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if strings.TrimSpace(c.Param(param)) != user.Email {
			monitoring.AuthFailures.WithLabelValues("email_mismatch").Inc()
			logger.Log.Warn("claim email does not match path",
				zap.String("claim", user.Email),
				zap.String("path", c.Request.URL.Path),
			)
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// TryAuth 有 token 时解析并放入上下文，无 token 或无效时直接放行
func TryAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c, auth.CookieName()); tokenString != "" {
			if claims, err := auth.VerifyToken(tokenString); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}
