package recommendation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
)

type fakeCatalog struct {
	users     map[uuid.UUID]*types.User
	courses   []*types.Course
	exercises []*types.Exercise

	err          error
	lastFilter   types.CourseFilter
	lastExFilter types.ExerciseFilter
}

func (f *fakeCatalog) GetUser(_ context.Context, userID uuid.UUID) (*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[userID], nil
}

func (f *fakeCatalog) GetCourses(_ context.Context, ids []uuid.UUID) ([]*types.Course, error) {
	want := idSet(ids)
	var out []*types.Course
	for _, c := range f.courses {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindCourses(_ context.Context, filter types.CourseFilter) ([]*types.Course, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	excluded := idSet(filter.ExcludeIDs)
	needle := strings.ToLower(filter.Match)
	var out []*types.Course
	for _, c := range f.courses {
		if filter.Difficulty != "" && c.Difficulty != filter.Difficulty {
			continue
		}
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Category+" "+c.Title+" "+c.Description+" "+strings.Join(c.Tags, ",")), needle) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCatalog) GetExercises(_ context.Context, ids []uuid.UUID) ([]*types.Exercise, error) {
	want := idSet(ids)
	var out []*types.Exercise
	for _, e := range f.exercises {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindExercises(_ context.Context, filter types.ExerciseFilter) ([]*types.Exercise, error) {
	f.lastExFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	excluded := idSet(filter.ExcludeIDs)
	var out []*types.Exercise
	for _, e := range f.exercises {
		if filter.Difficulty != "" && e.Difficulty != filter.Difficulty {
			continue
		}
		if _, skip := excluded[e.ID]; skip {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeHistory struct {
	completed []uuid.UUID
	started   []uuid.UUID
	passed    []uuid.UUID
	err       error
}

func (f *fakeHistory) ListProgressCourseIDs(_ context.Context, _ uuid.UUID, completed bool) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	if completed {
		return f.completed, nil
	}
	return f.started, nil
}

func (f *fakeHistory) ListPassedExerciseIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.passed, nil
}

func course(title, difficulty, category string, tags ...string) *types.Course {
	return &types.Course{
		ID:         uuid.New(),
		Title:      title,
		Difficulty: difficulty,
		Category:   category,
		Tags:       tags,
	}
}

// withStyledItems appends one module holding n items of the given style.
func withStyledItems(c *types.Course, order, n int, style string) *types.Course {
	m := types.CourseModule{ID: uuid.New(), Order: order}
	for i := 0; i < n; i++ {
		m.ContentItems = append(m.ContentItems, types.ContentItem{ID: uuid.New(), Order: i, LearningStyle: style})
	}
	c.Modules = append(c.Modules, m)
	return c
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
