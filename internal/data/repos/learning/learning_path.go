package learning

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type LearningPathRepo interface {
	// Create stores the path together with its items.
	Create(dbc dbctx.Context, path *types.LearningPath) (*types.LearningPath, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearningPath, error)
	// GetForUser returns (nil, nil) when the path does not exist or belongs to someone else.
	GetForUser(dbc dbctx.Context, userID, pathID uuid.UUID) (*types.LearningPath, error)
	// CompleteItem reports false when no item of the user's path has that order.
	CompleteItem(dbc dbctx.Context, userID, pathID uuid.UUID, order int) (bool, error)
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	repoLog := baseLog.With("repo", "LearningPathRepo")
	return &learningPathRepo{db: db, log: repoLog}
}

func (r *learningPathRepo) Create(dbc dbctx.Context, path *types.LearningPath) (*types.LearningPath, error) {
	if path == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(path).Error; err != nil {
		return nil, err
	}
	return path, nil
}

func (r *learningPathRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearningPath, error) {
	var out []*types.LearningPath
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningPathRepo) GetForUser(dbc dbctx.Context, userID, pathID uuid.UUID) (*types.LearningPath, error) {
	var p types.LearningPath
	err := dbc.DB(r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ? AND user_id = ?", pathID, userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *learningPathRepo) CompleteItem(dbc dbctx.Context, userID, pathID uuid.UUID, order int) (bool, error) {
	tx := dbc.DB(r.db)
	owned := tx.Session(&gorm.Session{NewDB: true}).
		Model(&types.LearningPath{}).
		Select("id").
		Where("id = ? AND user_id = ?", pathID, userID)

	res := tx.
		Model(&types.LearningPathItem{}).
		Where("path_id IN (?) AND sort_order = ?", owned, order).
		Update("completed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
