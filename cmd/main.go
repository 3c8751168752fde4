package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/carousel-backend/internal/clients/openai"
	"github.com/yungbote/carousel-backend/internal/clients/redis"
	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/fonts"
	apihttp "github.com/yungbote/carousel-backend/internal/http"
	httpH "github.com/yungbote/carousel-backend/internal/http/handlers"
	"github.com/yungbote/carousel-backend/internal/observability"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/platform/shutdown"
	"github.com/yungbote/carousel-backend/internal/render"
	"github.com/yungbote/carousel-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	cfg := config.Load(log)

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED)
	otelShutdown := observability.InitOTel(ctx, log, observability.Config{
		ServiceName: config.ServiceName,
		Environment: cfg.Env,
		Version:     config.Version,
	})

	// Fonts
	log.Info("Setting up font resolution from main...")
	fontCache := fonts.NewDiskCache(cfg.FontCacheDir, log)
	googleFonts := fonts.NewGoogleClient(cfg.GoogleFontsAPIKey, log)
	resolver := fonts.NewResolver(fontCache, googleFonts, log)

	// Renderer
	renderer := render.NewRenderer(resolver, cfg.MaxSlides, log)

	// Services
	log.Info("Setting up services from main...")
	carouselService, err := services.NewCarouselService(log, renderer, cfg.MaxTextLength, cfg.MaxSlides, cfg.SlideSeparator)
	if err != nil {
		log.Error("Could not init CarouselService", "error", err)
		os.Exit(1)
	}

	var aiClient openai.Client
	if os.Getenv("OPENAI_API_KEY") != "" {
		aiClient, err = openai.NewClient(log)
		if err != nil {
			log.Warn("OpenAI client init failed; AI config generation uses keyword fallback", "error", err)
			aiClient = nil
		}
	} else {
		log.Warn("OPENAI_API_KEY not set; AI config generation uses keyword fallback")
	}
	aiConfigService, err := services.NewAIConfigService(log, aiClient)
	if err != nil {
		log.Error("Could not init AIConfigService", "error", err)
		os.Exit(1)
	}
	fontService, err := services.NewFontService(log, resolver, renderer)
	if err != nil {
		log.Error("Could not init FontService", "error", err)
		os.Exit(1)
	}

	// Rate limiter (optional)
	var limiter redis.Limiter
	if cfg.RedisAddr != "" {
		limiter, err = redis.NewLimiter(log)
		if err != nil {
			log.Warn("Redis limiter init failed; rate limiting disabled", "error", err)
			limiter = nil
		}
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	carouselHandler := httpH.NewCarouselHandler(log, carouselService, aiConfigService)
	aiConfigHandler := httpH.NewAIConfigHandler(log, aiConfigService)
	fontsHandler := httpH.NewFontsHandler(fontService)
	healthHandler := httpH.NewHealthHandler(log, cfg, limiter)
	docsHandler := httpH.NewDocsHandler()

	// Server
	log.Info("Setting up router from main...")
	srv := apihttp.NewServer(apihttp.RouterConfig{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		APIKeys:     cfg.APIKeys,
		RateLimiter: limiter,
		Tracing:     otelShutdown != nil,

		CarouselHandler: carouselHandler,
		AIConfigHandler: aiConfigHandler,
		FontsHandler:    fontsHandler,
		HealthHandler:   healthHandler,
		DocsHandler:     docsHandler,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		errCh <- srv.Run(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown incomplete", "error", err)
	}
	if limiter != nil {
		_ = limiter.Close()
	}
	if otelShutdown != nil {
		_ = otelShutdown(shutdownCtx)
	}
}
