package learning

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// ContentPatch is a partial update. Nil flags are left alone; a true flag
// latches and a false flag never clears an already set one.
type ContentPatch struct {
	Viewed    *bool
	Completed *bool
	TimeSpent int64
	At        time.Time
}

type ContentProgressRepo interface {
	Ensure(dbc dbctx.Context, progressID uuid.UUID, moduleOrder, contentOrder int, at time.Time) (created bool, err error)
	// Apply runs the patch as one UPDATE statement so concurrent writers never lose increments.
	Apply(dbc dbctx.Context, progressID uuid.UUID, contentKey string, patch ContentPatch) error
	Get(dbc dbctx.Context, progressID uuid.UUID, contentKey string) (*types.ContentProgress, error)
	ListByProgressID(dbc dbctx.Context, progressID uuid.UUID) ([]*types.ContentProgress, error)
	// CountCompleted counts completed entries whose key is in keys.
	CountCompleted(dbc dbctx.Context, progressID uuid.UUID, keys []string) (int64, error)
}

type contentProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentProgressRepo(db *gorm.DB, baseLog *logger.Logger) ContentProgressRepo {
	return &contentProgressRepo{db: db, log: baseLog.With("repo", "ContentProgressRepo")}
}

func (r *contentProgressRepo) Ensure(dbc dbctx.Context, progressID uuid.UUID, moduleOrder, contentOrder int, at time.Time) (bool, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	row := &types.ContentProgress{
		ID:               uuid.New(),
		CourseProgressID: progressID,
		ContentKey:       types.ContentKey(moduleOrder, contentOrder),
		ModuleOrder:      moduleOrder,
		ContentOrder:     contentOrder,
		LastAccessed:     at,
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_progress_id"}, {Name: "content_key"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *contentProgressRepo) Apply(dbc dbctx.Context, progressID uuid.UUID, contentKey string, patch ContentPatch) error {
	at := patch.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	updates := map[string]interface{}{
		"last_accessed": at,
		"updated_at":    time.Now().UTC(),
	}
	if patch.Viewed != nil {
		updates["viewed"] = gorm.Expr("viewed OR ?", *patch.Viewed)
	}
	if patch.Completed != nil {
		updates["completed"] = gorm.Expr("completed OR ?", *patch.Completed)
	}
	if patch.TimeSpent != 0 {
		updates["time_spent"] = gorm.Expr("time_spent + ?", patch.TimeSpent)
	}
	res := dbc.DB(r.db).
		Model(&types.ContentProgress{}).
		Where("course_progress_id = ? AND content_key = ?", progressID, contentKey).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentProgressRepo) Get(dbc dbctx.Context, progressID uuid.UUID, contentKey string) (*types.ContentProgress, error) {
	var row types.ContentProgress
	err := dbc.DB(r.db).
		Where("course_progress_id = ? AND content_key = ?", progressID, contentKey).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *contentProgressRepo) ListByProgressID(dbc dbctx.Context, progressID uuid.UUID) ([]*types.ContentProgress, error) {
	var out []*types.ContentProgress
	if err := dbc.DB(r.db).
		Where("course_progress_id = ?", progressID).
		Order("module_order ASC").
		Order("content_order ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentProgressRepo) CountCompleted(dbc dbctx.Context, progressID uuid.UUID, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.ContentProgress{}).
		Where("course_progress_id = ? AND completed = ? AND content_key IN ?", progressID, true, keys).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
