package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pribylovaa/x-assistant/internal/metrics"
)

// Metrics считает исходящие вызовы по провайдеру и статусу.
func Metrics(provider string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(r)
			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			metrics.ObserveUpstream(provider, status, time.Since(start))

			return resp, err
		})
	}
}
