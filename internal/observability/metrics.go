package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

const namespace = "learnpath"

// Metrics owns a private Prometheus registry. Every method is a no-op on a
// nil receiver, so callers never need to check whether metrics are enabled.
type Metrics struct {
	reg *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	aggregateOps       *prometheus.HistogramVec
	aggregateConflicts *prometheus.CounterVec
	aggregateRetries   *prometheus.CounterVec

	recommendations    *prometheus.CounterVec
	recommendationSize *prometheus.HistogramVec
	learningPaths      *prometheus.CounterVec
	progressUpdates    *prometheus.CounterVec

	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "inflight_requests",
			Help:      "In-flight API requests.",
		}),
		aggregateOps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "operation_duration_seconds",
			Help:      "Aggregate write latency by operation and outcome code.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}, []string{"operation", "status"}),
		aggregateConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "conflicts_total",
			Help:      "Aggregate writes rejected with a conflict.",
		}, []string{"operation"}),
		aggregateRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "retryable_failures_total",
			Help:      "Aggregate writes that failed with a retryable error.",
		}, []string{"operation"}),
		recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "requests_total",
			Help:      "Recommendation requests by item type and outcome.",
		}, []string{"item_type", "status"}),
		recommendationSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "result_size",
			Help:      "Number of items returned per recommendation request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}, []string{"item_type"}),
		learningPaths: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "learning_path",
			Name:      "synthesized_total",
			Help:      "Learning paths synthesized, split by whether any course matched.",
		}, []string{"outcome"}),
		progressUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "updates_total",
			Help:      "Progress updates by kind and outcome code.",
		}, []string{"kind", "status"}),
		redisUp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "up",
			Help:      "1 when the last Redis ping succeeded.",
		}),
		redisPing: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "ping_seconds",
			Help:      "Latency of the last successful Redis ping.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.WithLabelValues(op, status).Observe(dur.Seconds())
}

func (m *Metrics) IncAggregateConflict(op string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.WithLabelValues(op).Inc()
}

func (m *Metrics) IncAggregateRetry(op string) {
	if m == nil {
		return
	}
	m.aggregateRetries.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRecommendation(itemType, status string, size int) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(itemType, status).Inc()
	if status == "success" {
		m.recommendationSize.WithLabelValues(itemType).Observe(float64(size))
	}
}

func (m *Metrics) IncLearningPath(empty bool) {
	if m == nil {
		return
	}
	outcome := "matched"
	if empty {
		outcome = "empty"
	}
	m.learningPaths.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncProgressUpdate(kind, status string) {
	if m == nil {
		return
	}
	m.progressUpdates.WithLabelValues(kind, status).Inc()
}

// RegisterDBStats exports database/sql pool statistics for db.
func (m *Metrics) RegisterDBStats(log *logger.Logger, db *gorm.DB, name string) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	if err := m.reg.Register(collectors.NewDBStatsCollector(sqlDB, name)); err != nil && log != nil {
		log.Warn("metrics: db stats collector not registered", "error", err)
	}
}

// StartRedisCollector pings rdb every interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb goredis.UniversalClient, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
