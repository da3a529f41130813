package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type SubmissionRepo interface {
	Create(dbc dbctx.Context, subs []*types.Submission) ([]*types.Submission, error)
	// ListPassedExerciseIDs returns each exercise the user has at least one
	// all-tests-passing submission for, once.
	ListPassedExerciseIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) Create(dbc dbctx.Context, subs []*types.Submission) ([]*types.Submission, error) {
	if len(subs) == 0 {
		return []*types.Submission{}, nil
	}
	if err := dbc.DB(r.db).Create(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) ListPassedExerciseIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if userID == uuid.Nil {
		return ids, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Submission{}).
		Where("user_id = ? AND passed_all = ?", userID, true).
		Distinct("exercise_id").
		Pluck("exercise_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
