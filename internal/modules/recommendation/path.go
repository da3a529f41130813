package recommendation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
)

const perTierLimit = 2

// TimeframeWeeks resolves a timeframe token; unknown tokens mean medium.
func TimeframeWeeks(timeframe string) int {
	switch strings.ToLower(strings.TrimSpace(timeframe)) {
	case learning.TimeframeShort:
		return 4
	case learning.TimeframeLong:
		return 24
	default:
		return 12
	}
}

type tier struct {
	difficulty  string
	minWeeks    int
	defaultTime int
}

// tiers are visited in this order; order values follow it.
var tiers = []tier{
	{difficulty: learning.DifficultyBeginner, minWeeks: 0, defaultTime: 120},
	{difficulty: learning.DifficultyIntermediate, minWeeks: 8, defaultTime: 180},
	{difficulty: learning.DifficultyAdvanced, minWeeks: 16, defaultTime: 240},
}

// SynthesizeLearningPath builds, without persisting, a goal-driven path of up
// to two courses per difficulty tier. No matching course is not an error: the
// path simply has no items.
func (u Usecases) SynthesizeLearningPath(ctx context.Context, userID uuid.UUID, goal, timeframe string) (*types.LearningPath, error) {
	const op = "Recommendation.SynthesizeLearningPath"
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, domainagg.Validation(op, "goal is required")
	}
	weeks := TimeframeWeeks(timeframe)

	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.Int("weeks", weeks),
	))
	defer span.End()

	candidates, err := u.deps.Catalog.FindCourses(ctx, types.CourseFilter{Match: goal})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, aggregates.MapError(op, err)
	}

	path := &types.LearningPath{
		UserID:            userID,
		Goal:              goal,
		Timeframe:         strings.ToLower(strings.TrimSpace(timeframe)),
		EstimatedDuration: weeks,
		Items:             selectPathItems(candidates, weeks),
	}
	span.SetAttributes(attribute.Int("item_count", len(path.Items)))
	u.deps.Metrics.IncLearningPath(len(path.Items) == 0)
	return path, nil
}

// selectPathItems partitions candidates by exact difficulty, keeping query
// order within each tier, and assigns dense zero-based order values.
func selectPathItems(candidates []*types.Course, weeks int) []types.LearningPathItem {
	byTier := make(map[string][]*types.Course, len(tiers))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		byTier[c.Difficulty] = append(byTier[c.Difficulty], c)
	}

	items := []types.LearningPathItem{}
	for _, t := range tiers {
		if weeks < t.minWeeks {
			continue
		}
		picked := byTier[t.difficulty]
		if len(picked) > perTierLimit {
			picked = picked[:perTierLimit]
		}
		for _, c := range picked {
			est := t.defaultTime
			if c.EstimatedDuration != nil {
				est = *c.EstimatedDuration
			}
			items = append(items, types.LearningPathItem{
				Order:         len(items),
				ItemID:        c.ID,
				ItemType:      learning.ItemTypeCourse,
				Completed:     false,
				EstimatedTime: est,
			})
		}
	}
	return items
}
