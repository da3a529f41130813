package recommendation

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
)

// RecommendedItem is one ranked candidate. Exactly one of Course or Exercise is set.
type RecommendedItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemType string          `json:"item_type"`
	Score    float64         `json:"score"`
	Reason   string          `json:"reason,omitempty"`
	Course   *types.Course   `json:"course,omitempty"`
	Exercise *types.Exercise `json:"exercise,omitempty"`
}

// RecommendCourses ranks the user's eligible courses. Completed courses are
// excluded from the pool; started ones stay eligible with a penalty. An
// unknown user yields an empty list.
func (u Usecases) RecommendCourses(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendedItem, error) {
	const op = "Recommendation.RecommendCourses"
	limit = normalizeLimit(limit, u.deps.MaxLimit)
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.Int("limit", limit),
	))
	defer span.End()

	out, err := u.recommendCourses(ctx, userID, limit)
	u.finish(span, learning.ItemTypeCourse, out, err)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (u Usecases) recommendCourses(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendedItem, error) {
	user, err := u.deps.Catalog.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		u.deps.Log.Debug("recommend courses for unknown user", "user_id", userID)
		return []RecommendedItem{}, nil
	}

	var completed, started []uuid.UUID
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := u.deps.History.ListProgressCourseIDs(gctx, userID, true)
		completed = ids
		return err
	})
	g.Go(func() error {
		ids, err := u.deps.History.ListProgressCourseIDs(gctx, userID, false)
		started = ids
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool, err := u.deps.Catalog.FindCourses(ctx, types.CourseFilter{
		Difficulty: preferredDifficulty(user),
		ExcludeIDs: completed,
	})
	if err != nil {
		return nil, err
	}

	excluded := idSet(completed)
	inProgress := idSet(started)
	scored := make([]RecommendedItem, 0, len(pool))
	for _, c := range pool {
		if c == nil {
			continue
		}
		if _, done := excluded[c.ID]; done {
			continue
		}
		_, active := inProgress[c.ID]
		s := u.scorer.ScoreCourse(user, c, active)
		scored = append(scored, RecommendedItem{
			ItemID:   c.ID,
			ItemType: learning.ItemTypeCourse,
			Score:    s.Value,
			Reason:   s.Reason,
			Course:   c,
		})
	}
	return rankAndTruncate(scored, limit), nil
}

// RecommendExercises ranks exercises the user has not passed yet.
func (u Usecases) RecommendExercises(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendedItem, error) {
	const op = "Recommendation.RecommendExercises"
	limit = normalizeLimit(limit, u.deps.MaxLimit)
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.Int("limit", limit),
	))
	defer span.End()

	out, err := u.recommendExercises(ctx, userID, limit)
	u.finish(span, learning.ItemTypeExercise, out, err)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (u Usecases) recommendExercises(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendedItem, error) {
	user, err := u.deps.Catalog.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		u.deps.Log.Debug("recommend exercises for unknown user", "user_id", userID)
		return []RecommendedItem{}, nil
	}

	passed, err := u.deps.History.ListPassedExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	pool, err := u.deps.Catalog.FindExercises(ctx, types.ExerciseFilter{
		Difficulty: preferredDifficulty(user),
		ExcludeIDs: passed,
	})
	if err != nil {
		return nil, err
	}

	excluded := idSet(passed)
	scored := make([]RecommendedItem, 0, len(pool))
	for _, e := range pool {
		if e == nil {
			continue
		}
		if _, done := excluded[e.ID]; done {
			continue
		}
		s := u.scorer.ScoreExercise(user, e)
		scored = append(scored, RecommendedItem{
			ItemID:   e.ID,
			ItemType: learning.ItemTypeExercise,
			Score:    s.Value,
			Reason:   s.Reason,
			Exercise: e,
		})
	}
	return rankAndTruncate(scored, limit), nil
}

// rankAndTruncate sorts by score descending; equal scores keep pool order.
func rankAndTruncate(items []RecommendedItem, limit int) []RecommendedItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (u Usecases) finish(span trace.Span, itemType string, out []RecommendedItem, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		u.deps.Metrics.ObserveRecommendation(itemType, "error", 0)
		u.deps.Log.Warn("recommendation failed", "item_type", itemType, "error", err)
		return
	}
	span.SetAttributes(attribute.Int("result_count", len(out)))
	u.deps.Metrics.ObserveRecommendation(itemType, "success", len(out))
}

// preferredDifficulty is the candidate-pool filter; unknown values are ignored.
func preferredDifficulty(user *types.User) string {
	if user == nil || !learning.IsDifficulty(user.DifficultyPreference) {
		return ""
	}
	return user.DifficultyPreference
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
