// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

// RateLimitConfig describes one named bucket family. Name ends up in the
// Redis key and in the metric labels, so global and credential limits
// never share counters.
type RateLimitConfig struct {
	Name     string
	Limit    redis_rate.Limit
	KeyFunc  func(*http.Request) string
	FailOpen bool
	Metrics  *RateLimitMetrics
}

// RateLimiter enforces a limit through Redis and degrades to an in-process
// token bucket per key when Redis is unreachable.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	local    *localLimiter
	keyspace func(...string) string
	config   RateLimitConfig
}

func NewRateLimiter(store *core.Redis, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	if cfg.Name == "" {
		cfg.Name = "global"
	}

	return &RateLimiter{
		limiter:  redis_rate.NewLimiter(store.Client),
		local:    newLocalLimiter(time.Now),
		keyspace: store.Key,
		config:   cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyspace("ratelimit", rl.config.Name, rl.config.KeyFunc(r))

		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if !rl.config.FailOpen {
				core.JSONError(w, core.NewAppError(
					err,
					"Rate limiter unavailable",
					http.StatusServiceUnavailable,
					"SERVICE_UNAVAILABLE",
				))
				return
			}
			slog.Warn("rate limiter failing open",
				"limiter", rl.config.Name,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		writeLimitHeaders(w.Header(), rl.config.Limit, res)

		if res.Allowed == 0 {
			rl.config.Metrics.rejected(rl.config.Name)
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
) (*redis_rate.Result, error) {
	res, err := rl.limiter.Allow(ctx, key, rl.config.Limit)
	if err == nil {
		return res, nil
	}

	rl.config.Metrics.fellBack(rl.config.Name)
	return rl.local.allow(key, rl.config.Limit)
}

// KeyByIP buckets callers by client address. The last X-Forwarded-For
// hop is the one appended by our own proxy.
func KeyByIP(r *http.Request) string {
	return "ip:" + clientIP(r)
}

// KeyByIPAndEndpoint gives every credential route its own bucket per
// client, with numeric path segments collapsed to {id}.
func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":route:" + normalizeEndpoint(r.URL.Path)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func normalizeEndpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.ParseUint(part, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func writeLimitHeaders(h http.Header, limit redis_rate.Limit, res *redis_rate.Result) {
	remaining := max(res.Remaining, 0)
	resetSecs := int(res.ResetAfter.Seconds())

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", remaining, resetSecs))
}

var errRateLimited = errors.New("rate limited")

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSONError(w, core.NewAppError(
		errRateLimited,
		fmt.Sprintf("Too many requests. Retry after %d seconds.", retryAfter),
		http.StatusTooManyRequests,
		"RATE_LIMITED",
	))
}

// PerWindow allows requests per window with the given burst.
func PerWindow(requests, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{Rate: requests, Burst: burst, Period: window}
}

const (
	localSweepEvery = 5 * time.Minute
	localIdleTTL    = 10 * time.Minute
)

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// localLimiter holds one token bucket per key. Idle buckets are swept
// during allow calls once per localSweepEvery.
type localLimiter struct {
	buckets   sync.Map
	lastSweep atomic.Int64
	now       func() time.Time
}

func newLocalLimiter(now func() time.Time) *localLimiter {
	l := &localLimiter{now: now}
	l.lastSweep.Store(now().Unix())
	return l
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("invalid limit %d per %s", limit.Rate, limit.Period)
	}

	now := l.now()
	l.sweep(now)

	interval := limit.Period / time.Duration(limit.Rate)
	fresh := &localBucket{limiter: rate.NewLimiter(rate.Every(interval), limit.Burst)}
	v, _ := l.buckets.LoadOrStore(key, fresh)
	bucket := v.(*localBucket)
	bucket.lastSeen.Store(now.Unix())

	res := &redis_rate.Result{
		Limit:      limit,
		ResetAfter: interval,
		RetryAfter: -1,
	}
	if bucket.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	res.Remaining = max(int(bucket.limiter.TokensAt(now)), 0)

	return res, nil
}

func (l *localLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.Unix()-last < int64(localSweepEvery.Seconds()) {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, now.Unix()) {
		return
	}

	cutoff := now.Add(-localIdleTTL).Unix()
	l.buckets.Range(func(key, value any) bool {
		if b, ok := value.(*localBucket); ok && b.lastSeen.Load() < cutoff {
			l.buckets.Delete(key)
		}
		return true
	})
}
