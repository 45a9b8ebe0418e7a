package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedCacheHits counts home feed pages served from cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_feed_cache_hits_total",
		Help: "Total number of home feed cache hits",
	})

	// FeedCacheMisses counts home feed pages recomputed from the store.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_feed_cache_misses_total",
		Help: "Total number of home feed cache misses",
	})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The default registry rejects duplicate collectors, so the instance is
// created once and shared by every server built in the process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the Fiber handler recording per-route HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
