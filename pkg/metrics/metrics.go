// Package metrics exposes prometheus instrumentation for the upstream client
// and the catalog aggregation.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector holds all metrics for one process. Every method is safe to call
// on a nil *Collector so instrumentation stays optional.
type Collector struct {
	registry *prometheus.Registry

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	AggregationProgress prometheus.Gauge
	DroppedItems        prometheus.Counter
	WorkingSetSize      prometheus.Gauge
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests sent to the upstream API",
		}, []string{"endpoint", "status"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		AggregationProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregation_progress_ratio",
			Help:      "Completed batches over total batches of the current aggregation",
		}),
		DroppedItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_dropped_items_total",
			Help:      "Items excluded from the working set because a fetch failed",
		}),
		WorkingSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "working_set_size",
			Help:      "Number of items in the last assembled working set",
		}),
	}

	registry.MustRegister(
		c.CacheHits,
		c.CacheMisses,
		c.UpstreamRequests,
		c.UpstreamDuration,
		c.AggregationProgress,
		c.DroppedItems,
		c.WorkingSetSize,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) CacheHit() {
	if c == nil {
		return
	}
	c.CacheHits.Inc()
}

func (c *Collector) CacheMiss() {
	if c == nil {
		return
	}
	c.CacheMisses.Inc()
}

// ObserveRequest records one upstream round trip. status is 0 for transport errors.
func (c *Collector) ObserveRequest(endpoint string, status int, took time.Duration) {
	if c == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.UpstreamRequests.WithLabelValues(endpoint, label).Inc()
	c.UpstreamDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (c *Collector) SetProgress(ratio float64) {
	if c == nil {
		return
	}
	c.AggregationProgress.Set(ratio)
}

func (c *Collector) ItemDropped() {
	if c == nil {
		return
	}
	c.DroppedItems.Inc()
}

func (c *Collector) SetWorkingSet(n int) {
	if c == nil {
		return
	}
	c.WorkingSetSize.Set(float64(n))
}

// Handler serves the collector's registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
