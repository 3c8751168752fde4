package config

import (
	"strings"

	"github.com/yungbote/carousel-backend/internal/platform/envutil"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

const (
	ServiceName = "carousel-api"
	Version     = "1.0.0"
)

// Config is the env-driven service configuration, loaded once at startup.
type Config struct {
	Env  string
	Port string

	MaxSlides      int
	MaxTextLength  int
	SlideSeparator string

	FontsDir     string
	FontCacheDir string

	GoogleFontsAPIKey string

	// APIKeys enables the static key check when non-empty.
	APIKeys []string

	// RedisAddr enables rate limiting when non-empty.
	RedisAddr          string
	RateLimitPerMinute int

	// CORSOrigins restricts allowed origins; empty means allow all.
	CORSOrigins []string
}

func Load(log *logger.Logger) Config {
	cfg := Config{
		Env:  envutil.String("APP_ENV", "dev"),
		Port: envutil.String("API_PORT", "5000"),

		MaxSlides:      envutil.Int("MAX_SLIDES", 20),
		MaxTextLength:  envutil.Int("MAX_TEXT_LENGTH", 10000),
		SlideSeparator: envutil.String("SLIDE_SEPARATOR", "========"),

		FontsDir:     envutil.String("FONT_PATH", "fonts"),
		FontCacheDir: envutil.String("FONTS_CACHE_DIR", "fonts/cache"),

		GoogleFontsAPIKey: envutil.String("GOOGLE_FONTS_API_KEY", ""),

		APIKeys: splitList(envutil.String("API_KEYS", "")),

		RedisAddr:          envutil.String("REDIS_ADDR", ""),
		RateLimitPerMinute: envutil.Int("RATE_LIMIT_PER_MINUTE", 30),

		CORSOrigins: splitList(envutil.String("CORS_ORIGINS", "")),
	}
	if log != nil {
		log.Info("config loaded",
			"env", cfg.Env,
			"port", cfg.Port,
			"max_slides", cfg.MaxSlides,
			"max_text_length", cfg.MaxTextLength,
			"font_cache_dir", cfg.FontCacheDir,
			"api_keys_configured", len(cfg.APIKeys) > 0,
			"rate_limit_enabled", cfg.RedisAddr != "",
		)
	}
	return cfg
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
