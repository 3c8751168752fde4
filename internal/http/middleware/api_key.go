package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/http/response"
)

// APIKeyAuth checks X-API-Key (or an Authorization bearer token) against
// the configured key set. The router skips this middleware entirely when
// no keys are configured.
func APIKeyAuth(keys []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" {
			allowed[k] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		key := extractAPIKey(c)
		if key == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing API key"))
			c.Abort()
			return
		}
		if _, ok := allowed[key]; !ok {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractAPIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("X-API-Key")); key != "" {
		return key
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
