package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/metrics"
	logctx "github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/ratelimit"
)

// RateLimit — фиксированное окно на адрес клиента в пределах scope.
// Отказ — 429 "Rate limit exceeded. Please try again later.".
func RateLimit(lim ratelimit.Limiter, scope string, max int, window time.Duration, trustForwarded bool) Middleware {
	return func(next http.Handler) http.Handler {
		if lim == nil || max <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := ClientIP(r, trustForwarded)
			if !lim.Allow(r.Context(), ratelimit.Key(scope, addr), max, window) {
				metrics.RateLimited(scope)
				logctx.From(r.Context()).Warn("rate_limited",
					slog.String("scope", scope),
					slog.String("client", addr),
				)
				apierrors.WriteError(w, r, apierrors.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP определяет адрес клиента:
//  1. первый адрес X-Forwarded-For;
//  2. X-Real-IP;
//  3. хост из RemoteAddr.
//
// Заголовки прокси читаются только при trustForwarded. Пустой результат — "unknown".
func ClientIP(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "unknown"
}
