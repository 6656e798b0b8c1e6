package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	logctx "github.com/pribylovaa/x-assistant/internal/pkg/log"
)

// Timeout ограничивает время обработки запроса (включая все вызовы апстримов).
// Существующий deadline не перекрывается; d <= 0 — no-op.
// Если дедлайн истёк, а обработчик так ничего и не записал, клиент получает 504.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			logctx.From(ctx).Warn("request_deadline_exceeded",
				slog.Duration("timeout", d),
				slog.Int("status", sw.status),
			)

			if sw.status == 0 {
				apierrors.WriteError(sw, r, apierrors.Timeout(ctx.Err()))
			}
		})
	}
}
