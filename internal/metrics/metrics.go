// metrics — счётчики и гистограммы шлюза в реестре Prometheus по умолчанию.
// Экспортируются через promhttp.Handler() на /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xassistant"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests handled by the gateway.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of gateway HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Outgoing calls to third-party providers.",
	}, []string{"provider", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of outgoing provider calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
	}, []string{"provider"})

	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the gateway rate limiter.",
	}, []string{"scope"})

	skippedPosts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "normalize_skipped_posts_total",
		Help:      "Provider post items dropped by the normalizer.",
	})
)

// ObserveHTTP фиксирует завершённый входящий запрос.
func ObserveHTTP(route, method string, status int, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}

	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveUpstream фиксирует исходящий вызов; status "error" — транспортная ошибка.
func ObserveUpstream(provider, status string, dur time.Duration) {
	upstreamRequests.WithLabelValues(provider, status).Inc()
	upstreamDuration.WithLabelValues(provider).Observe(dur.Seconds())
}

func RateLimited(scope string) { rateLimited.WithLabelValues(scope).Inc() }

func SkippedPosts(n int) {
	if n > 0 {
		skippedPosts.Add(float64(n))
	}
}
