package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logging — логирование исходящих вызовов.
// Поведение:
//   - вытягивает X-Request-Id из запроса (или генерирует новый и добавляет);
//   - пишет одну финальную запись уровня Info: msg="upstream", provider,
//     method, host, path, status, dur; при транспортной ошибке — Warn с err.
//
// Безопасность: не логирует query, тело и заголовки (там ключи провайдеров).
func Logging(base *slog.Logger, provider string) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-Id", rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("provider", provider),
				slog.String("method", r.Method),
				slog.String("host", r.URL.Host),
				slog.String("path", r.URL.Path),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("upstream",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("upstream",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
