package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// quietRoutes are polled by infrastructure; successful hits log at debug.
var quietRoutes = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// RequestLogger logs one line per request. 5xx logs at error, 4xx at warn.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		ctx := c.Request.Context()

		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		fields = append(fields, ctxutil.LogFields(ctx)...)
		if userID := ctxutil.UserID(ctx); userID != uuid.Nil {
			fields = append(fields, "user_id", userID.String())
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case quietRoutes[route]:
			log.Debug("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
