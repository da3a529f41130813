package learning

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type ExerciseRepo interface {
	Create(dbc dbctx.Context, exercises []*types.Exercise) ([]*types.Exercise, error)
	GetByIDs(dbc dbctx.Context, exerciseIDs []uuid.UUID) ([]*types.Exercise, error)
	FindByFilter(dbc dbctx.Context, filter types.ExerciseFilter, limit int) ([]*types.Exercise, error)
}

type exerciseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExerciseRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseRepo {
	return &exerciseRepo{db: db, log: baseLog.With("repo", "ExerciseRepo")}
}

func (r *exerciseRepo) Create(dbc dbctx.Context, exercises []*types.Exercise) ([]*types.Exercise, error) {
	if len(exercises) == 0 {
		return []*types.Exercise{}, nil
	}
	if err := dbc.DB(r.db).Create(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepo) GetByIDs(dbc dbctx.Context, exerciseIDs []uuid.UUID) ([]*types.Exercise, error) {
	var out []*types.Exercise
	if len(exerciseIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", exerciseIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *exerciseRepo) FindByFilter(dbc dbctx.Context, filter types.ExerciseFilter, limit int) ([]*types.Exercise, error) {
	q := dbc.DB(r.db).Model(&types.Exercise{})
	if d := strings.TrimSpace(filter.Difficulty); d != "" {
		q = q.Where("difficulty = ?", d)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.Exercise
	if err := q.Order("created_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
