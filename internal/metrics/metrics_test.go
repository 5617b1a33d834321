package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequestLabelsOutcome(t *testing.T) {
	m := New()

	m.ObserveRequest("list_votes", nil, 10*time.Millisecond)
	m.ObserveRequest("list_votes", nil, 10*time.Millisecond)
	m.ObserveRequest("list_votes", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("list_votes", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("list_votes", "error")))
}

func TestCacheCounters(t *testing.T) {
	m := New()

	m.CacheMiss()
	m.CacheHit()
	m.CacheHit()
	m.PageApplied("cache")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VoteCacheLookup.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VoteCacheLookup.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LikedPages.WithLabelValues("cache")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("x", nil, time.Second)
		m.CacheHit()
		m.CacheMiss()
		m.PageApplied("network")
	})
	assert.Nil(t, m.Registry())
}
