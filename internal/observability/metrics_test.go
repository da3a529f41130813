package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAggregateOperation("op", "success", time.Millisecond)
	m.IncAggregateConflict("op")
	m.IncAggregateRetry("op")
	m.ObserveRecommendation("course", "success", 3)
	m.IncLearningPath(true)
	m.IncProgressUpdate("content", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics handler: want=503 got=%d", rec.Code)
	}
}

func TestMetricsCountAndExpose(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/recommendations/courses", "200", 20*time.Millisecond)
	m.IncAggregateConflict("Learning.CourseProgress.ApplyContentUpdate")
	m.IncAggregateConflict("Learning.CourseProgress.ApplyContentUpdate")
	m.ObserveRecommendation("course", "success", 4)

	if got := testutil.ToFloat64(m.aggregateConflicts.WithLabelValues("Learning.CourseProgress.ApplyContentUpdate")); got != 2 {
		t.Fatalf("conflicts: want=2 got=%v", got)
	}
	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/recommendations/courses", "200")); got != 1 {
		t.Fatalf("api requests: want=1 got=%v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("handler status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"learnpath_api_requests_total",
		"learnpath_aggregate_conflicts_total",
		"learnpath_recommendation_result_size_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %s", want)
		}
	}
}
