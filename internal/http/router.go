package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/learnpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/learnpath-backend/internal/http/middleware"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	RecommendationHandler *httpH.RecommendationHandler
	LearningPathHandler   *httpH.LearningPathHandler
	ProgressHandler       *httpH.ProgressHandler
	HealthHandler         *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "learnpath-backend"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Ops
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Recommendations
	if h := cfg.RecommendationHandler; h != nil {
		api.GET("/recommendations/courses", h.RecommendCourses)
		api.GET("/recommendations/exercises", h.RecommendExercises)
		api.POST("/recommendations/:id/viewed", h.MarkViewed)
		api.POST("/recommendations/:id/clicked", h.MarkClicked)
	}

	// Learning paths
	if h := cfg.LearningPathHandler; h != nil {
		api.POST("/recommendations/learning-path", h.Create)
		api.GET("/recommendations/learning-paths", h.List)
		api.GET("/recommendations/learning-paths/:id", h.Get)
		api.POST("/recommendations/learning-paths/:id/items/:order/complete", h.CompleteItem)
	}

	// Progress
	if h := cfg.ProgressHandler; h != nil {
		api.POST("/progress/content/:course_id/:module_order/:content_order", h.UpdateContent)
		api.POST("/progress/courses/:course_id/time", h.RecordCourseTime)
		api.GET("/progress/courses", h.ListCourses)
		api.GET("/progress/courses/:course_id/next", h.NextContent)
	}

	return r
}
