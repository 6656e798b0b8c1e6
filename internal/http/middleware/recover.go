package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	logctx "github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/pkg/redact"
)

var errPanic = errors.New("panic recovered")

// Recover превращает panic обработчика в 500/internal с общим конвертом ошибки.
// Значение паники и стек идут только в лог (с вычищенными секретами);
// http.ErrAbortHandler пробрасывается дальше, чтобы net/http оборвал соединение.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", redact.Secrets(fmt.Sprint(rec))),
					slog.String("stack", string(debug.Stack())),
				)

				apierrors.WriteError(w, r, apierrors.Internal("internal error", errPanic))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
