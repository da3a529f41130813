package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

func TestCourseRepoGetByIDLoadsOrderedTree(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{
		Title:          "Go",
		Difficulty:     "beginner",
		Category:       "programming",
		Tags:           []string{"go"},
		ItemsPerModule: []int{3, 2},
	})

	got, err := repo.GetByID(dbc, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if len(got.Modules) != 2 {
		t.Fatalf("modules: want=2 got=%d", len(got.Modules))
	}
	if got.Modules[0].Order != 1 || got.Modules[1].Order != 2 {
		t.Fatalf("modules out of order: %d,%d", got.Modules[0].Order, got.Modules[1].Order)
	}
	if got.ContentItemCount() != 5 {
		t.Fatalf("ContentItemCount: want=5 got=%d", got.ContentItemCount())
	}
	for i, item := range got.Modules[0].ContentItems {
		if item.Order != i+1 {
			t.Fatalf("content out of order at %d: %d", i, item.Order)
		}
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): err=%v got=%v", err, missing)
	}
}

func TestCourseRepoNormalizesDelimitedTags(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{Title: "legacy"})
	// Older catalog rows store tags as one comma-delimited string.
	if err := tx.Model(&types.Course{}).
		Where("id = ?", c.ID).
		UpdateColumn("tags", datatypes.JSON([]byte(`"python, data ,,ml"`))).Error; err != nil {
		t.Fatalf("rewrite tags: %v", err)
	}

	got, err := repo.GetByID(dbc, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	want := []string{"python", "data", "ml"}
	if len(got.Tags) != len(want) {
		t.Fatalf("tags: want=%v got=%v", want, got.Tags)
	}
	for i := range want {
		if got.Tags[i] != want[i] {
			t.Fatalf("tags: want=%v got=%v", want, got.Tags)
		}
	}
}

func TestCourseRepoFindByFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	pyBeg := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{
		Title: "Intro", Difficulty: "beginner", Category: "Python Basics", ItemsPerModule: []int{1},
	})
	pyAdv := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{
		Title: "Deep dive", Difficulty: "advanced", Category: "programming", Tags: []string{"PYTHON"},
	})
	goBeg := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{
		Title: "Go tour", Difficulty: "beginner", Category: "programming", Description: "100% practical",
	})

	rows, err := repo.FindByFilter(dbc, types.CourseFilter{Difficulty: "beginner"}, 0)
	if err != nil || len(rows) != 2 {
		t.Fatalf("difficulty filter: err=%v len=%d", err, len(rows))
	}
	for _, row := range rows {
		if row.ID == pyBeg.ID && row.ContentItemCount() != 1 {
			t.Fatalf("candidate should carry its content tree")
		}
	}

	rows, err = repo.FindByFilter(dbc, types.CourseFilter{Difficulty: "beginner", ExcludeIDs: []uuid.UUID{pyBeg.ID}}, 0)
	if err != nil || len(rows) != 1 || rows[0].ID != goBeg.ID {
		t.Fatalf("exclude filter: err=%v rows=%v", err, rows)
	}

	rows, err = repo.FindByFilter(dbc, types.CourseFilter{Match: "python"}, 0)
	if err != nil || len(rows) != 2 {
		t.Fatalf("match filter: err=%v len=%d", err, len(rows))
	}
	ids := map[uuid.UUID]bool{rows[0].ID: true, rows[1].ID: true}
	if !ids[pyBeg.ID] || !ids[pyAdv.ID] {
		t.Fatalf("match filter returned wrong courses")
	}

	rows, err = repo.FindByFilter(dbc, types.CourseFilter{Match: "100%"}, 0)
	if err != nil || len(rows) != 1 || rows[0].ID != goBeg.ID {
		t.Fatalf("literal percent should match only the description: err=%v rows=%d", err, len(rows))
	}

	rows, err = repo.FindByFilter(dbc, types.CourseFilter{}, 1)
	if err != nil || len(rows) != 1 {
		t.Fatalf("limit: err=%v len=%d", err, len(rows))
	}
}

func TestCourseMatches(t *testing.T) {
	c := &types.Course{Title: "Data", Category: "science", Tags: []string{"Machine Learning"}}
	cases := []struct {
		needle string
		want   bool
	}{
		{"learning", true},
		{"SCI", true},
		{"dat", true},
		{"rust", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := CourseMatches(c, tc.needle); got != tc.want {
			t.Fatalf("CourseMatches(%q): want=%v got=%v", tc.needle, tc.want, got)
		}
	}
}
