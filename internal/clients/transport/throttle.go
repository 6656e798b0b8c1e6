package transport

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Throttle ограничивает темп исходящих вызовов к провайдеру (token bucket),
// чтобы всплеск входящих запросов не выжигал квоту ключа.
// Ожидание токена уважает контекст запроса; lim == nil — no-op.
//
// Если токен не успеть получить до дедлайна, ошибка оборачивает
// context.DeadlineExceeded: для клиента это таймаут, а не внутренняя ошибка.
func Throttle(lim *rate.Limiter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if lim == nil {
			return next
		}

		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if err := lim.Wait(r.Context()); err != nil {
				if _, ok := r.Context().Deadline(); ok && r.Context().Err() == nil {
					return nil, fmt.Errorf("throttle: %w: %v", context.DeadlineExceeded, err)
				}
				return nil, fmt.Errorf("throttle: %w", err)
			}

			return next.RoundTrip(r)
		})
	}
}
