package aggregates_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/learnpath-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func TestMultiHooksFansOut(t *testing.T) {
	a, b := &aggtest.HooksRecorder{}, &aggtest.HooksRecorder{}
	h := aggregates.MultiHooks(a, nil, b, aggregates.NewLogHooks(logger.Nop()))

	h.ObserveOperation("progress.apply", "success", time.Millisecond)
	h.IncConflict("progress.apply")
	h.IncRetry("progress.apply")

	for i, rec := range []*aggtest.HooksRecorder{a, b} {
		if len(rec.Operations) != 1 || len(rec.Conflicts) != 1 || len(rec.Retries) != 1 {
			t.Fatalf("recorder %d: ops=%d conflicts=%d retries=%d", i, len(rec.Operations), len(rec.Conflicts), len(rec.Retries))
		}
	}
}

func TestMultiHooksWithNothingIsSafe(t *testing.T) {
	h := aggregates.MultiHooks(nil, nil)
	h.ObserveOperation("x", "success", 0)
	h.IncConflict("x")
	h.IncRetry("x")
}

func TestMetricsHooksCountConflicts(t *testing.T) {
	m := observability.NewMetrics()
	h := aggregates.NewMetricsHooks(m)
	h.IncConflict(" progress.apply ")
	h.IncConflict("progress.apply")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `learnpath_aggregate_conflicts_total{operation="progress.apply"} 2`
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("exposition missing %q", want)
	}
}
