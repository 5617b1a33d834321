package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the client-side collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	APIRequests     *prometheus.CounterVec
	APIDuration     *prometheus.HistogramVec
	VoteCacheLookup *prometheus.CounterVec
	LikedPages      *prometheus.CounterVec
}

// New creates collectors registered on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		APIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mittens_api_requests_total",
				Help: "Total number of cat API requests.",
			},
			[]string{"op", "outcome"},
		),
		APIDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mittens_api_request_duration_seconds",
				Help:    "Duration of cat API requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		VoteCacheLookup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mittens_vote_cache_lookups_total",
				Help: "Vote-list cache lookups by result.",
			},
			[]string{"result"},
		),
		LikedPages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mittens_liked_pages_total",
				Help: "Liked pages applied by source.",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(m.APIRequests, m.APIDuration, m.VoteCacheLookup, m.LikedPages)
	return m
}

// Registry exposes the private registry (for tests and the HTTP handler)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records one API call
func (m *Metrics) ObserveRequest(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.APIRequests.WithLabelValues(op, outcome).Inc()
	m.APIDuration.WithLabelValues(op).Observe(d.Seconds())
}

// CacheHit records a vote-cache hit
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.VoteCacheLookup.WithLabelValues("hit").Inc()
}

// CacheMiss records a vote-cache miss
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.VoteCacheLookup.WithLabelValues("miss").Inc()
}

// PageApplied records a liked page applied from "network" or "cache"
func (m *Metrics) PageApplied(source string) {
	if m == nil {
		return
	}
	m.LikedPages.WithLabelValues(source).Inc()
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", "error", err)
		return err
	}
	return nil
}
