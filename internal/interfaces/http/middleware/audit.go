// Package middleware 提供 HTTP 中间件
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"z-doc-ai-api/pkg/logger"
)

// AuditConfig 访问日志配置
type AuditConfig struct {
	Enabled bool
	// SkipPaths 跳过记录的路径
	SkipPaths []string
}

// Audit 请求结束后记录一条访问日志，5xx 记为 warn
func Audit(cfg AuditConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if username := GetUsernameFromGin(c); username != "" {
			fields = append(fields, "username", username)
		}
		if c.Writer.Status() >= 500 {
			logger.Warn(c.Request.Context(), "api request failed", fields...)
			return
		}
		logger.Info(c.Request.Context(), "api request", fields...)
	}
}

// DefaultSkipPaths 系统端点不记录访问日志，也不需要认证
var DefaultSkipPaths = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
}
