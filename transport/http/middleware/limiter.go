package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tzbot/shared/cache"
	"tzbot/shared/constant"
	"tzbot/shared/logger"
	"tzbot/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"

	requestClassRead  = "read"
	requestClassWrite = "write"
	guildScopeAll     = "all"
)

// RateLimit counts requests per guild, client and request class in fixed
// windows. Registrations have their own, smaller budget. When the cache is
// unavailable requests are let through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable || limits.WindowSeconds <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			class, budget := requestClassRead, limits.MaxRequests
			if isWrite(r.Method) {
				class, budget = requestClassWrite, limits.WriteMaxRequests
			}

			window := time.Duration(limits.WindowSeconds) * time.Second
			now := a.now()
			windowStart := now.Truncate(window)

			key := cache.BuildCacheKey(cacheKeyRateLimit, guildScope(r), class, a.getClientIP(r), windowStart.Unix())

			count, err := a.hit(r.Context(), key, limits.WindowSeconds)
			if err != nil {
				logger.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(budget))
			w.Header().Set(constant.RequestHeaderRateLimitRem, strconv.Itoa(max(0, budget-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWin, strconv.Itoa(limits.WindowSeconds))

			if count > budget {
				retryAfter := int(windowStart.Add(window).Sub(now).Seconds()) + 1
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(retryAfter))

				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hit increments the counter stored under key and returns the new value.
func (a *appMiddleware) hit(ctx context.Context, key string, ttlSeconds int) (int, error) {
	var count int

	if err := a.cache.Get(ctx, key, &count); err != nil {
		if !errors.Is(err, cache.Nil) {
			return 0, fmt.Errorf("failed to read request counter: %w", err)
		}

		count = 0
	}

	count++

	if err := a.cache.Save(ctx, key, count, ttlSeconds); err != nil {
		return 0, fmt.Errorf("failed to store request counter: %w", err)
	}

	return count, nil
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func guildScope(r *http.Request) string {
	if guildID := chi.URLParam(r, constant.RequestParamGuildID); guildID != "" {
		return guildID
	}

	return guildScopeAll
}

// getClientIP prefers proxy headers, then the connection's host without port.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
