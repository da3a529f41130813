package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// Hooks receives one event per aggregate write attempt.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

// MultiHooks fans every event out to each non-nil hook in order.
func MultiHooks(hooks ...Hooks) Hooks {
	out := make(multiHooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	switch len(out) {
	case 0:
		return noopHooks{}
	case 1:
		return out[0]
	}
	return out
}

type multiHooks []Hooks

func (m multiHooks) ObserveOperation(name, status string, dur time.Duration) {
	for _, h := range m {
		h.ObserveOperation(name, status, dur)
	}
}

func (m multiHooks) IncConflict(name string) {
	for _, h := range m {
		h.IncConflict(name)
	}
}

func (m multiHooks) IncRetry(name string) {
	for _, h := range m {
		h.IncRetry(name)
	}
}

type metricsHooks struct {
	metrics *observability.Metrics
}

func NewMetricsHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &metricsHooks{metrics: metrics}
}

func (h *metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h *metricsHooks) IncConflict(name string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(name))
}

func (h *metricsHooks) IncRetry(name string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(name))
}

// logHooks surfaces contention in logs. Successful operations and plain
// failures are left to the callers, which already log them with context.
type logHooks struct {
	log *logger.Logger
}

func NewLogHooks(log *logger.Logger) Hooks {
	if log == nil {
		return noopHooks{}
	}
	return &logHooks{log: log.With("component", "AggregateHooks")}
}

func (h *logHooks) ObserveOperation(name, status string, dur time.Duration) {
	if dur >= slowOperation {
		h.log.Warn("slow aggregate operation", "operation", name, "status", status, "duration_ms", dur.Milliseconds())
	}
}

func (h *logHooks) IncConflict(name string) {
	h.log.Warn("aggregate write conflict", "operation", name)
}

func (h *logHooks) IncRetry(name string) {
	h.log.Info("aggregate write retryable failure", "operation", name)
}

const slowOperation = 2 * time.Second
