package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP_IncrementsByLabels(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/twitter/user", "GET", "200"))

	ObserveHTTP("/api/twitter/user", "GET", 200, 15*time.Millisecond)
	ObserveHTTP("/api/twitter/user", "GET", 200, 20*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("/api/twitter/user", "GET", "200"))
	require.Equal(t, before+2, after)
}

func TestObserveHTTP_EmptyRouteIsUnmatched(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404"))
	ObserveHTTP("", "GET", 404, time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestObserveUpstreamAndRateLimited(t *testing.T) {
	up := testutil.ToFloat64(upstreamRequests.WithLabelValues("social", "429"))
	ObserveUpstream("social", "429", time.Second)
	require.Equal(t, up+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("social", "429")))

	rl := testutil.ToFloat64(rateLimited.WithLabelValues("assistant"))
	RateLimited("assistant")
	require.Equal(t, rl+1, testutil.ToFloat64(rateLimited.WithLabelValues("assistant")))
}

func TestSkippedPosts_IgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(skippedPosts)
	SkippedPosts(0)
	SkippedPosts(-1)
	SkippedPosts(3)
	require.Equal(t, before+3, testutil.ToFloat64(skippedPosts))
}
