package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// Limiter answers whether one more request from a caller fits inside the
// current fixed window. Windows are shared Redis counters keyed by caller,
// so every replica of the service draws from the same quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	// Ping reports whether the backing Redis is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Decision carries what the middleware needs for headers and 429 bodies.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	RetryIn   time.Duration
}

type limiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	window time.Duration
}

// NewLimiter connects to REDIS_ADDR and enforces RATE_LIMIT_PER_MINUTE
// requests per key per minute (default 30).
func NewLimiter(log *logger.Logger) (Limiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	limit := 30
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MINUTE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &limiter{
		log:    log.With("service", "RedisRateLimiter"),
		rdb:    rdb,
		limit:  limit,
		window: time.Minute,
	}, nil
}

// Allow counts the request against the caller's current window. The first
// hit creates the counter and sets its expiry; once the counter passes the
// limit the caller stays denied until the window key expires.
func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l == nil || l.rdb == nil {
		return Decision{Allowed: true}, nil
	}

	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(l.window/time.Second))
	n, err := l.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return Decision{Allowed: true, Limit: l.limit}, fmt.Errorf("redis incr: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, bucket, l.window).Err(); err != nil {
			l.log.Warn("rate limit window expiry not set", "key", bucket, "error", err)
		}
	}

	d := Decision{
		Allowed:   n <= int64(l.limit),
		Limit:     l.limit,
		Remaining: l.limit - int(n),
	}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		d.RetryIn = l.window
		if ttl, err := l.rdb.TTL(ctx, bucket).Result(); err == nil && ttl > 0 {
			d.RetryIn = ttl
		}
	}
	return d, nil
}

func (l *limiter) Ping(ctx context.Context) error {
	if l == nil || l.rdb == nil {
		return fmt.Errorf("limiter not initialized")
	}
	return l.rdb.Ping(ctx).Err()
}

func (l *limiter) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
