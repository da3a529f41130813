package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

var tracer = otel.Tracer("learnpath.recommendation")

const (
	DefaultLimit = 5
	MaxLimit     = 50
)

// ContentRepository is the read-only catalog view. Missing rows come back as
// (nil, nil), never as an error.
type ContentRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetCourses(ctx context.Context, courseIDs []uuid.UUID) ([]*types.Course, error)
	FindCourses(ctx context.Context, filter types.CourseFilter) ([]*types.Course, error)
	GetExercises(ctx context.Context, exerciseIDs []uuid.UUID) ([]*types.Exercise, error)
	FindExercises(ctx context.Context, filter types.ExerciseFilter) ([]*types.Exercise, error)
}

// ProgressReader answers which courses a user finished or started and which
// exercises they passed.
type ProgressReader interface {
	ListProgressCourseIDs(ctx context.Context, userID uuid.UUID, completed bool) ([]uuid.UUID, error)
	ListPassedExerciseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type UsecasesDeps struct {
	Log *logger.Logger

	Catalog ContentRepository
	History ProgressReader

	// Persistence is optional; the pure recommend and synthesize paths never touch it.
	Recommendations repos.RecommendationRepo
	Paths           repos.LearningPathRepo

	Weights  Weights
	MaxLimit int

	Metrics *observability.Metrics
	Now     func() time.Time
}

type Usecases struct {
	deps   UsecasesDeps
	scorer Scorer
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.With("service", "RecommendationUsecases")
	if deps.Weights == (Weights{}) {
		deps.Weights = DefaultWeights()
	}
	if deps.MaxLimit <= 0 {
		deps.MaxLimit = MaxLimit
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return Usecases{deps: deps, scorer: NewScorer(deps.Weights)}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

// normalizeLimit maps a non-positive limit to DefaultLimit and caps at max.
func normalizeLimit(limit, max int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
