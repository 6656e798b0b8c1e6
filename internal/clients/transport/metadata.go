package transport

import "net/http"

// Metadata добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте и не задан явно);
//   - User-Agent (если передан параметром).
//
// Исходный *http.Request не модифицируется.
func Metadata(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			rid := RequestID(r.Context())
			if rid == "" && userAgent == "" {
				return next.RoundTrip(r)
			}

			r = r.Clone(r.Context())
			if rid != "" && r.Header.Get("X-Request-Id") == "" {
				r.Header.Set("X-Request-Id", rid)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
