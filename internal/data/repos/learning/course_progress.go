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

type CourseProgressRepo interface {
	// Ensure creates the (user, course) record if missing and returns the
	// stored row. created is true only for the call that inserted it.
	Ensure(dbc dbctx.Context, userID, courseID uuid.UUID, at time.Time) (row *types.CourseProgress, created bool, err error)
	// Get returns (nil, nil) when the user has no record for the course.
	Get(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.CourseProgress, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CourseProgress, error)
	ListCourseIDs(dbc dbctx.Context, userID uuid.UUID, completed bool) ([]uuid.UUID, error)
	// AddTime increments time_spent in a single UPDATE.
	AddTime(dbc dbctx.Context, progressID uuid.UUID, delta int64, at time.Time) error
	// UpdateRollup writes the derived percentage. completed only ever latches to true.
	UpdateRollup(dbc dbctx.Context, progressID uuid.UUID, pct float64, completed bool, at time.Time) error
}

type courseProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseProgressRepo(db *gorm.DB, baseLog *logger.Logger) CourseProgressRepo {
	return &courseProgressRepo{db: db, log: baseLog.With("repo", "CourseProgressRepo")}
}

func (r *courseProgressRepo) Ensure(dbc dbctx.Context, userID, courseID uuid.UUID, at time.Time) (*types.CourseProgress, bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	row := &types.CourseProgress{
		ID:           uuid.New(),
		UserID:       userID,
		CourseID:     courseID,
		LastAccessed: at,
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	stored, err := r.Get(dbc, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	return stored, created, nil
}

func (r *courseProgressRepo) Get(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.CourseProgress, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.CourseProgress
	err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *courseProgressRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CourseProgress, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CourseProgress
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseProgressRepo) ListCourseIDs(dbc dbctx.Context, userID uuid.UUID, completed bool) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if userID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.CourseProgress{}).
		Where("user_id = ? AND completed = ?", userID, completed).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *courseProgressRepo) AddTime(dbc dbctx.Context, progressID uuid.UUID, delta int64, at time.Time) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.CourseProgress{}).
		Where("id = ?", progressID).
		Updates(map[string]interface{}{
			"time_spent":    gorm.Expr("time_spent + ?", delta),
			"last_accessed": at,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *courseProgressRepo) UpdateRollup(dbc dbctx.Context, progressID uuid.UUID, pct float64, completed bool, at time.Time) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.CourseProgress{}).
		Where("id = ?", progressID).
		Updates(map[string]interface{}{
			"progress_percentage": pct,
			"completed":           gorm.Expr("completed OR ?", completed),
			"last_accessed":       at,
			"updated_at":          time.Now().UTC(),
		}).Error
}
