package repos

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

// Catalog is the read-only content accessor used by the recommender and the
// progress use cases. Lookups of missing rows return (nil, nil).
type Catalog struct {
	users     UserRepo
	courses   CourseRepo
	exercises ExerciseRepo
}

func NewCatalog(users UserRepo, courses CourseRepo, exercises ExerciseRepo) *Catalog {
	return &Catalog{users: users, courses: courses, exercises: exercises}
}

func (c *Catalog) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return c.users.GetByID(dbctx.From(ctx), userID)
}

func (c *Catalog) GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	return c.courses.GetByID(dbctx.From(ctx), courseID)
}

func (c *Catalog) GetCourses(ctx context.Context, courseIDs []uuid.UUID) ([]*types.Course, error) {
	return c.courses.GetByIDs(dbctx.From(ctx), courseIDs)
}

func (c *Catalog) FindCourses(ctx context.Context, filter types.CourseFilter) ([]*types.Course, error) {
	return c.courses.FindByFilter(dbctx.From(ctx), filter, 0)
}

func (c *Catalog) GetExercises(ctx context.Context, exerciseIDs []uuid.UUID) ([]*types.Exercise, error) {
	return c.exercises.GetByIDs(dbctx.From(ctx), exerciseIDs)
}

func (c *Catalog) FindExercises(ctx context.Context, filter types.ExerciseFilter) ([]*types.Exercise, error) {
	return c.exercises.FindByFilter(dbctx.From(ctx), filter, 0)
}

// ProgressIndex answers the set-membership questions the selector asks
// about a user's history.
type ProgressIndex struct {
	progress    CourseProgressRepo
	submissions SubmissionRepo
}

func NewProgressIndex(progress CourseProgressRepo, submissions SubmissionRepo) *ProgressIndex {
	return &ProgressIndex{progress: progress, submissions: submissions}
}

func (p *ProgressIndex) ListProgressCourseIDs(ctx context.Context, userID uuid.UUID, completed bool) ([]uuid.UUID, error) {
	return p.progress.ListCourseIDs(dbctx.From(ctx), userID, completed)
}

func (p *ProgressIndex) ListPassedExerciseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return p.submissions.ListPassedExerciseIDs(dbctx.From(ctx), userID)
}
