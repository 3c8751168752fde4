package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/clients/redis"
	"github.com/yungbote/carousel-backend/internal/http/response"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// RateLimit enforces the shared per-IP request window. Redis errors fail
// open: the request proceeds and the failure is logged.
func RateLimit(log *logger.Logger, limiter redis.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		d, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			if log != nil {
				log.Warn("rate limit check failed; allowing request", "client_ip", c.ClientIP(), "error", err)
			}
			c.Next()
			return
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			retry := int(d.RetryIn / time.Second)
			if retry < 1 {
				retry = 1
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(retry))
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
