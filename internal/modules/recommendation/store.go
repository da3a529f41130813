package recommendation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	repolearning "github.com/yungbote/learnpath-backend/internal/data/repos/learning"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

// PersistRecommendations stores a produced list as recommendation records
// with viewed and clicked unset.
func (u Usecases) PersistRecommendations(ctx context.Context, userID uuid.UUID, items []RecommendedItem) ([]*types.Recommendation, error) {
	const op = "Recommendation.PersistRecommendations"
	if u.deps.Recommendations == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recommendation store not configured", nil)
	}
	now := u.deps.Now()
	rows := make([]*types.Recommendation, 0, len(items))
	for _, it := range items {
		score := it.Score
		if score < 0 {
			score = 0
		}
		rows = append(rows, &types.Recommendation{
			UserID:    userID,
			ItemID:    it.ItemID,
			ItemType:  it.ItemType,
			Reason:    it.Reason,
			Score:     score,
			CreatedAt: now,
		})
	}
	out, err := u.deps.Recommendations.Create(dbctx.From(ctx), rows)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

// MarkRecommendation sets the viewed or clicked flag on one of the user's
// recommendations.
func (u Usecases) MarkRecommendation(ctx context.Context, userID, recID uuid.UUID, flag string) error {
	const op = "Recommendation.MarkRecommendation"
	flag = strings.ToLower(strings.TrimSpace(flag))
	switch flag {
	case repolearning.RecommendationFlagViewed, repolearning.RecommendationFlagClicked:
	default:
		return domainagg.Validation(op, "unknown recommendation flag %q", flag)
	}
	if u.deps.Recommendations == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "recommendation store not configured", nil)
	}
	ok, err := u.deps.Recommendations.SetFlag(dbctx.From(ctx), userID, recID, flag)
	if err != nil {
		return aggregates.MapError(op, err)
	}
	if !ok {
		return domainagg.NotFound(op, "recommendation %s not found", recID)
	}
	return nil
}

// CreateLearningPath synthesizes and persists a path in one call.
func (u Usecases) CreateLearningPath(ctx context.Context, userID uuid.UUID, goal, timeframe string) (*types.LearningPath, error) {
	const op = "Recommendation.CreateLearningPath"
	path, err := u.SynthesizeLearningPath(ctx, userID, goal, timeframe)
	if err != nil {
		return nil, err
	}
	if u.deps.Paths == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "learning path store not configured", nil)
	}
	saved, err := u.deps.Paths.Create(dbctx.From(ctx), path)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	u.deps.Log.Info("learning path created", "user_id", userID, "path_id", saved.ID, "items", len(saved.Items))
	return saved, nil
}

func (u Usecases) ListLearningPaths(ctx context.Context, userID uuid.UUID) ([]*types.LearningPath, error) {
	const op = "Recommendation.ListLearningPaths"
	if u.deps.Paths == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "learning path store not configured", nil)
	}
	out, err := u.deps.Paths.ListByUser(dbctx.From(ctx), userID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

// GetLearningPath returns one of the user's paths with item details filled in
// from the catalog. Items whose course or exercise is gone keep nil details.
func (u Usecases) GetLearningPath(ctx context.Context, userID, pathID uuid.UUID) (*types.LearningPath, error) {
	const op = "Recommendation.GetLearningPath"
	if u.deps.Paths == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "learning path store not configured", nil)
	}
	path, err := u.deps.Paths.GetForUser(dbctx.From(ctx), userID, pathID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if path == nil {
		return nil, domainagg.NotFound(op, "learning path %s not found", pathID)
	}
	if err := u.attachDetails(ctx, path); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return path, nil
}

func (u Usecases) attachDetails(ctx context.Context, path *types.LearningPath) error {
	var courseIDs, exerciseIDs []uuid.UUID
	for _, it := range path.Items {
		switch it.ItemType {
		case learning.ItemTypeCourse:
			courseIDs = append(courseIDs, it.ItemID)
		case learning.ItemTypeExercise:
			exerciseIDs = append(exerciseIDs, it.ItemID)
		}
	}

	details := map[uuid.UUID]*types.ItemDetails{}
	if len(courseIDs) > 0 {
		courses, err := u.deps.Catalog.GetCourses(ctx, courseIDs)
		if err != nil {
			return err
		}
		for _, c := range courses {
			details[c.ID] = &types.ItemDetails{Title: c.Title, Description: c.Description, Difficulty: c.Difficulty}
		}
	}
	if len(exerciseIDs) > 0 {
		exercises, err := u.deps.Catalog.GetExercises(ctx, exerciseIDs)
		if err != nil {
			return err
		}
		for _, e := range exercises {
			details[e.ID] = &types.ItemDetails{Title: e.Title, Description: e.Description, Difficulty: e.Difficulty}
		}
	}
	for i := range path.Items {
		path.Items[i].Details = details[path.Items[i].ItemID]
	}
	return nil
}

// CompleteLearningPathItem marks the item at order as completed. Repeating
// the call is a no-op success.
func (u Usecases) CompleteLearningPathItem(ctx context.Context, userID, pathID uuid.UUID, order int) error {
	const op = "Recommendation.CompleteLearningPathItem"
	if order < 0 {
		return domainagg.Validation(op, "order must be >= 0, got %d", order)
	}
	if u.deps.Paths == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "learning path store not configured", nil)
	}
	ok, err := u.deps.Paths.CompleteItem(dbctx.From(ctx), userID, pathID, order)
	if err != nil {
		return aggregates.MapError(op, err)
	}
	if !ok {
		return domainagg.NotFound(op, "learning path item %d not found", order)
	}
	return nil
}
