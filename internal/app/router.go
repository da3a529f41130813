package app

import (
	httpserver "github.com/yungbote/learnpath-backend/internal/http"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) httpserver.RouterConfig {
	return httpserver.RouterConfig{
		Log:                   log,
		ServiceName:           cfg.Otel.ServiceName,
		AllowedOrigins:        cfg.CORSAllowedOrigins,
		Metrics:               metrics,
		AuthMiddleware:        mw.Auth,
		RecommendationHandler: h.Recommendation,
		LearningPathHandler:   h.LearningPath,
		ProgressHandler:       h.Progress,
		HealthHandler:         h.Health,
	}
}

func wireServer(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) *httpserver.Server {
	log.Info("Wiring router...")
	return httpserver.NewServer(routerConfig(log, cfg, h, mw, metrics))
}
