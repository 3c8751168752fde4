// Package httpx holds retry classification and pacing helpers for outbound
// HTTP, shared by the OpenAI and Google Fonts clients.
package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPStatusCoder lets typed client errors expose the status they carry.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// IsRetryableHTTPStatus reports whether a response with this status is worth
// retrying: request timeout, rate limiting, or any server-side failure.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryableError classifies timeouts, transient transport errors and
// retryable HTTP statuses (via HTTPStatusCoder) as worth another attempt.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return true
	}
	var coder HTTPStatusCoder
	if errors.As(err, &coder) {
		return IsRetryableHTTPStatus(coder.HTTPStatusCode())
	}
	return false
}

// RetryAfterDuration returns how long to wait before the next attempt,
// honoring a Retry-After header in either delta-seconds or HTTP-date form,
// clamped to max.
func RetryAfterDuration(resp *http.Response, fallback, max time.Duration) time.Duration {
	wait := fallback
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			} else if at, err := http.ParseTime(ra); err == nil {
				if until := time.Until(at); until > 0 {
					wait = until
				}
			}
		}
	}
	if max > 0 && wait > max {
		wait = max
	}
	return wait
}

// JitterSleep spreads base by plus or minus 20% so synchronized clients do
// not retry in lockstep.
func JitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	scale := 0.8 + rand.Float64()*0.4
	return time.Duration(scale * float64(base))
}

// Backoff returns the exponential delay for the given zero-based attempt,
// capped at max.
func Backoff(attempt int, base, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	if max > 0 && d > max {
		d = max
	}
	return d
}
