package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/sso/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: RequestsPerWindow refills across Window,
// Burst caps how many can be spent at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles shared by the router. LoadRateLimitsFromEnv overrides them from
// RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_{REQUESTS,WINDOW_SEC,BURST}.
var (
	// StrictLimit guards credential checks (revoke, refresh).
	StrictLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	// ModerateLimit guards the admin API.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 30}

	// LenientLimit guards userinfo, which relying parties may poll.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 60}

	// PublicLimit guards health and docs.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func LoadRateLimitsFromEnv() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_{prefix}_* variables on def.
// Unparseable or non-positive values are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	envInt := func(name string) (int, bool) {
		v, err := strconv.Atoi(os.Getenv("RATELIMIT_" + prefix + "_" + name))
		return v, err == nil && v > 0
	}

	if v, ok := envInt("REQUESTS"); ok {
		cfg.RequestsPerWindow = v
	}
	if v, ok := envInt("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(v) * time.Second
	}
	if v, ok := envInt("BURST"); ok {
		cfg.Burst = v
	}
	return cfg
}

// KeyExtractor groups requests into buckets. An empty key is not limited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor uses the first X-Forwarded-For hop, then X-Real-IP, then
// the connection address.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// BasicAuthClientKeyExtractor uses the client id of HTTP Basic credentials.
// It never reads the body, so it is safe in front of JSON handlers.
func BasicAuthClientKeyExtractor(r *http.Request) string {
	id, _, _ := r.BasicAuth()
	return id
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

type rateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	if l, ok := rl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	actual, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops buckets that have refilled completely, at most every
// five minutes, so short-lived keys do not accumulate.
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware rejects requests over cfg with 429 and a Retry-After.
func RateLimitMiddleware(cfg RateLimitConfig, keyFn KeyExtractor) Middleware {
	rl := &rateLimiter{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			limiter := rl.get(key)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"retry_after", retryAfter,
			)

			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
				"Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client address only.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByIPAndClient limits by address plus Basic auth client id, so one
// misbehaving relying party behind a shared egress does not starve the rest.
func RateLimitByIPAndClient(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", IPKeyExtractor, BasicAuthClientKeyExtractor))
}
