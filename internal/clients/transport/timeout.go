package transport

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Timeout ограничивает один исходящий вызов сроком d.
//
// Контракт:
//  1. d <= 0 — контекст не модифицируется;
//  2. иначе — context.WithTimeout(ctx, d): более ранний дедлайн родителя
//     (например, общий дедлайн входящего запроса) остаётся в силе;
//  3. cancel вызывается при ошибке или при закрытии тела ответа,
//     поэтому дедлайн покрывает и чтение тела.
//
// По истечении дедлайна вызов возвращает ошибку, оборачивающую context.DeadlineExceeded.
func Timeout(d time.Duration) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

// cancelBody отменяет контекст запроса при закрытии тела ответа.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
