package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/carousel-backend/internal/clients/redis"
	"github.com/yungbote/carousel-backend/internal/config"
	httpH "github.com/yungbote/carousel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/carousel-backend/internal/http/middleware"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string
	APIKeys     []string
	RateLimiter redis.Limiter
	Tracing     bool

	CarouselHandler *httpH.CarouselHandler
	AIConfigHandler *httpH.AIConfigHandler
	FontsHandler    *httpH.FontsHandler
	HealthHandler   *httpH.HealthHandler
	DocsHandler     *httpH.DocsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(config.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	api := r.Group("/api/v1")
	{
		// Monitoring surface stays reachable without an API key.
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
			api.GET("/status", cfg.HealthHandler.Status)
		}
		if cfg.DocsHandler != nil {
			api.GET("/docs", cfg.DocsHandler.Docs)
		}
	}

	protected := api.Group("/")
	{
		if len(cfg.APIKeys) > 0 {
			protected.Use(httpMW.APIKeyAuth(cfg.APIKeys))
		}
		if cfg.RateLimiter != nil {
			protected.Use(httpMW.RateLimit(cfg.Log, cfg.RateLimiter))
		}

		// Carousel
		if cfg.CarouselHandler != nil {
			protected.POST("/generate-carousel", cfg.CarouselHandler.Generate)
			protected.POST("/from-text", cfg.CarouselHandler.FromText)
			protected.POST("/generate-batch", cfg.CarouselHandler.GenerateBatch)
			protected.POST("/validate-text", cfg.CarouselHandler.ValidateText)
			protected.POST("/preview-slide", cfg.CarouselHandler.PreviewSlide)
			protected.GET("/platforms", cfg.CarouselHandler.Platforms)
		}

		// AI config
		if cfg.AIConfigHandler != nil {
			protected.POST("/generate-config", cfg.AIConfigHandler.GenerateConfig)
			protected.GET("/style-suggestions", cfg.AIConfigHandler.StyleSuggestions)
		}

		// Fonts
		if cfg.FontsHandler != nil {
			protected.GET("/fonts", cfg.FontsHandler.List)
			protected.POST("/fonts/preview", cfg.FontsHandler.Preview)
			protected.GET("/fonts/recommendations", cfg.FontsHandler.Recommendations)
			protected.GET("/fonts/cache", cfg.FontsHandler.CacheStats)
			protected.DELETE("/fonts/cache", cfg.FontsHandler.ClearCache)
		}
	}

	return r
}
