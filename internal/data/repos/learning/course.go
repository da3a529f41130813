package learning

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error)
	// GetByID loads the full module/content tree in order. (nil, nil) when absent.
	GetByID(dbc dbctx.Context, courseID uuid.UUID) (*types.Course, error)
	// GetByIDs loads course rows only, without the content tree.
	GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error)
	FindByFilter(dbc dbctx.Context, filter types.CourseFilter, limit int) ([]*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courses) == 0 {
		return []*types.Course{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, courseID uuid.UUID) (*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if courseID == uuid.Nil {
		return nil, nil
	}

	var c types.Course
	err := transaction.WithContext(dbc.Ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Modules.ContentItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", courseID).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindByFilter returns candidate courses in catalog order (created_at, id).
// Each returned course has its full content tree so the scorer can count
// style matches. The Match filter is narrowed in SQL and then confirmed
// against the normalized tag list.
func (r *courseRepo) FindByFilter(dbc dbctx.Context, filter types.CourseFilter, limit int) ([]*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).Model(&types.Course{})
	if d := strings.TrimSpace(filter.Difficulty); d != "" {
		q = q.Where("difficulty = ?", d)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	match := strings.ToLower(strings.TrimSpace(filter.Match))
	if match != "" {
		pattern := "%" + escapeLike(match) + "%"
		q = q.Where(
			`(LOWER(category) LIKE ? ESCAPE '\' OR LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern,
		)
	}
	if limit > 0 && match == "" {
		q = q.Limit(limit)
	}

	var results []*types.Course
	if err := q.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Modules.ContentItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	if match == "" {
		return results, nil
	}
	out := make([]*types.Course, 0, len(results))
	for _, c := range results {
		if CourseMatches(c, match) {
			out = append(out, c)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// CourseMatches reports whether needle is a case-insensitive substring of the
// course's category, title, description, or any single tag.
func CourseMatches(c *types.Course, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if c == nil || needle == "" {
		return false
	}
	if strings.Contains(strings.ToLower(c.Category), needle) ||
		strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
