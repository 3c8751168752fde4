package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/platform/ctxutil"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// RequestLogger emits one access-log line per request, leveled by response
// status. The route template is preferred over the raw path so log
// cardinality stays bounded.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if td, ok := ctxutil.TraceDataFrom(c.Request.Context()); ok {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
