package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/clients/redis"
	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	"github.com/yungbote/learnpath-backend/internal/modules/progress"
	"github.com/yungbote/learnpath-backend/internal/modules/recommendation"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Recommendation recommendation.Usecases
	Progress       progress.Usecases
}

// wireLocker picks the per-(user, course) lock backend. A configured but
// unreachable Redis is a startup error rather than a silent fallback, since
// replicas on the in-process locker would not exclude each other.
func wireLocker(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (aggregates.KeyLocker, goredis.UniversalClient, error) {
	if cfg.LockBackend != LockBackendRedis {
		log.Info("Using in-process progress locker")
		return aggregates.NewMemoryLocker(), nil, nil
	}
	rdb, err := redis.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis locker: %w", err)
	}
	metrics.StartRedisCollector(ctx, log, rdb, 0)
	locker := redis.NewLocker(rdb, redis.LockerConfig{
		Prefix: "learnpath:lock:",
		TTL:    cfg.LockTTL,
		Wait:   cfg.LockWait,
	}, log)
	return locker, rdb, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, locker aggregates.KeyLocker, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	weights := recommendation.DefaultWeights()
	if cfg.ScoringWeightsPath != "" {
		w, err := recommendation.LoadWeights(cfg.ScoringWeightsPath)
		if err != nil {
			return Services{}, fmt.Errorf("load scoring weights: %w", err)
		}
		weights = w
		log.Info("Loaded scoring weights", "path", cfg.ScoringWeightsPath)
	}

	if cfg.JWTSecretKey == "" {
		return Services{}, fmt.Errorf("missing JWT_SECRET_KEY")
	}

	progressAgg := aggregates.NewCourseProgressAggregate(aggregates.CourseProgressAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     db,
			Log:    log,
			Runner: aggregates.NewRetryingTxRunner(aggregates.NewGormTxRunner(db), cfg.TxRetryAttempts, cfg.TxRetryBackoff),
			Hooks:  aggregates.MultiHooks(aggregates.NewMetricsHooks(metrics), aggregates.NewLogHooks(log)),
			Locker: locker,
		},
		Courses:  r.Courses,
		Progress: r.CourseProgress,
		Entries:  r.ContentProgress,
	})

	return Services{
		Auth: services.NewAuthService(log, cfg.JWTSecretKey),
		Recommendation: recommendation.New(recommendation.UsecasesDeps{
			Log:             log,
			Catalog:         r.Catalog,
			History:         r.Progress,
			Recommendations: r.Recommendations,
			Paths:           r.LearningPaths,
			Weights:         weights,
			MaxLimit:        cfg.RecommendationMaxLimit,
			Metrics:         metrics,
		}),
		Progress: progress.New(progress.UsecasesDeps{
			Log:       log,
			Aggregate: progressAgg,
			Courses:   r.Catalog,
			Progress:  r.CourseProgress,
			Entries:   r.ContentProgress,
			Metrics:   metrics,
		}),
	}, nil
}
