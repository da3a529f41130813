package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/learnpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/learnpath-backend/internal/http/middleware"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

func TestRouterOpsAndAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	r := NewRouter(RouterConfig{
		Log:             log,
		Metrics:         observability.NewMetrics(),
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, services.NewAuthService(log, "router-secret")),
		HealthHandler:   httpH.NewHealthHandler(nil),
		ProgressHandler: httpH.NewProgressHandler(log, nil),
	})

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	if rec := get("/healthcheck"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: code=%d body=%q", rec.Code, rec.Body.String())
	}
	if rec := get("/api/progress/courses"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("protected route without token: want=401 got=%d", rec.Code)
	}
	rec := get("/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: want=200 got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "learnpath_") {
		t.Fatalf("metrics exposition missing learnpath series")
	}
}
