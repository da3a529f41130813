package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/http/handlers"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Handlers struct {
	Recommendation *handlers.RecommendationHandler
	LearningPath   *handlers.LearningPathHandler
	Progress       *handlers.ProgressHandler
	Health         *handlers.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	var pinger handlers.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	return Handlers{
		Recommendation: handlers.NewRecommendationHandler(log, s.Recommendation),
		LearningPath:   handlers.NewLearningPathHandler(log, s.Recommendation),
		Progress:       handlers.NewProgressHandler(log, s.Progress),
		Health:         handlers.NewHealthHandler(pinger),
	}
}
