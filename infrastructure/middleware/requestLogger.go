package middlewares

import (
	"time"

	"faceguard.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs one line per request after it completes.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Info("request completed", logger.LoggerOptions{
			Key: "request",
			Data: map[string]any{
				"method":     ctx.Request.Method,
				"path":       ctx.FullPath(),
				"status":     ctx.Writer.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
				"ip":         ctx.ClientIP(),
			},
		})
	}
}
