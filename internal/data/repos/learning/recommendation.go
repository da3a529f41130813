package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

const (
	RecommendationFlagViewed  = "viewed"
	RecommendationFlagClicked = "clicked"
)

type RecommendationRepo interface {
	Create(dbc dbctx.Context, recs []*types.Recommendation) ([]*types.Recommendation, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, itemType string, limit int) ([]*types.Recommendation, error)
	// SetFlag sets viewed or clicked on one of the user's recommendations.
	// It reports false when the recommendation is not the user's.
	SetFlag(dbc dbctx.Context, userID, recID uuid.UUID, flag string) (bool, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (r *recommendationRepo) Create(dbc dbctx.Context, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(recs) == 0 {
		return []*types.Recommendation{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, itemType string, limit int) ([]*types.Recommendation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Recommendation
	q := t.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if itemType != "" {
		q = q.Where("item_type = ?", itemType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("created_at DESC").Order("score DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendationRepo) SetFlag(dbc dbctx.Context, userID, recID uuid.UUID, flag string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	switch flag {
	case RecommendationFlagViewed, RecommendationFlagClicked:
	default:
		return false, nil
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Recommendation{}).
		Where("id = ? AND user_id = ?", recID, userID).
		Update(flag, true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
