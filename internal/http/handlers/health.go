package handlers

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/clients/redis"
	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/http/response"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

type HealthHandler struct {
	log     *logger.Logger
	cfg     config.Config
	limiter redis.Limiter
	started time.Time
}

func NewHealthHandler(log *logger.Logger, cfg config.Config, limiter redis.Limiter) *HealthHandler {
	return &HealthHandler{
		log:     log,
		cfg:     cfg,
		limiter: limiter,
		started: time.Now(),
	}
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":         "healthy",
		"service":        config.ServiceName,
		"version":        config.Version,
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}

// GET /status
func (h *HealthHandler) Status(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	deps := gin.H{}
	degraded := false

	if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		deps["openai"] = "configured"
	} else {
		deps["openai"] = "not_configured"
	}

	switch {
	case h.limiter == nil:
		deps["redis"] = "disabled"
	case h.limiter.Ping(c.Request.Context()) != nil:
		deps["redis"] = "unreachable"
		degraded = true
	default:
		deps["redis"] = "ok"
	}

	if cacheDirWritable(h.cfg.FontCacheDir) {
		deps["font_cache"] = "writable"
	} else {
		deps["font_cache"] = "unavailable"
		degraded = true
	}

	status := "healthy"
	if degraded {
		status = "degraded"
	}

	response.RespondOK(c, gin.H{
		"service":        config.ServiceName,
		"version":        config.Version,
		"status":         status,
		"environment":    h.cfg.Env,
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"runtime": gin.H{
			"go_version":       runtime.Version(),
			"goroutines":       runtime.NumGoroutine(),
			"heap_alloc_bytes": mem.HeapAlloc,
			"heap_alloc_human": humanSize(int64(mem.HeapAlloc)),
			"num_gc":           mem.NumGC,
		},
		"configuration": gin.H{
			"max_slides":      h.cfg.MaxSlides,
			"max_text_length": h.cfg.MaxTextLength,
			"platforms":       len(config.Platforms(h.log)),
			"features": gin.H{
				"ai_config_generation": deps["openai"] == "configured",
				"api_key_auth":         len(h.cfg.APIKeys) > 0,
				"rate_limiting":        h.cfg.RedisAddr != "",
			},
		},
		"dependencies": deps,
	})
}

func cacheDirWritable(dir string) bool {
	if strings.TrimSpace(dir) == "" {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
