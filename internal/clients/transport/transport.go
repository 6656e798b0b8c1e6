// transport предоставляет обёртки http.RoundTripper для исходящих вызовов
// к провайдерам: метаданные запроса, таймаут, логирование, метрики и
// троттлинг. Порядок сборки задаёт Chain.
package transport

import (
	"context"
	"net/http"
)

type CtxKey string

const CtxRequestID CtxKey = "request_id"

// Middleware — обёртка над RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc — адаптер функции к http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain применяет обёртки в порядке перечисления: первая — самая внешняя.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}

	return rt
}

// WithRequestID кладёт request id в контекст для исходящих вызовов.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// RequestID достаёт request id из контекста.
func RequestID(ctx context.Context) string {
	if v := ctx.Value(CtxRequestID); v != nil {
		if id, _ := v.(string); id != "" {
			return id
		}
	}

	return ""
}
