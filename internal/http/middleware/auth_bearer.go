package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	logctx "github.com/pribylovaa/x-assistant/internal/pkg/log"
)

// RequireBearer пропускает запрос только с Authorization: Bearer <secret>.
// Сравнение в постоянном времени; пустой secret закрывает маршрут полностью.
func RequireBearer(secret string) Middleware {
	want := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, prefix)
			if !ok || len(want) == 0 || subtle.ConstantTimeCompare([]byte(token), want) != 1 {
				logctx.From(r.Context()).Warn("unauthorized",
					slog.String("path", r.URL.Path),
					slog.Bool("has_header", auth != ""),
				)
				apierrors.WriteError(w, r, apierrors.Unauthorized())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
