package learning

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/learnpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

func TestCourseProgressRepoEnsureIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseProgressRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "cp@example.com")
	c := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{ItemsPerModule: []int{2}})
	now := time.Now().UTC()

	first, created, err := repo.Ensure(dbc, u.ID, c.ID, now)
	if err != nil || !created || first == nil {
		t.Fatalf("Ensure(first): err=%v created=%v row=%v", err, created, first)
	}
	second, created, err := repo.Ensure(dbc, u.ID, c.ID, now)
	if err != nil || created {
		t.Fatalf("Ensure(second): err=%v created=%v", err, created)
	}
	if second.ID != first.ID {
		t.Fatalf("Ensure should return the existing row: %s vs %s", second.ID, first.ID)
	}

	if err := repo.AddTime(dbc, first.ID, 30, now); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	if err := repo.AddTime(dbc, first.ID, 12, now); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	if err := repo.UpdateRollup(dbc, first.ID, 100, true, now); err != nil {
		t.Fatalf("UpdateRollup: %v", err)
	}
	if err := repo.UpdateRollup(dbc, first.ID, 50, false, now); err != nil {
		t.Fatalf("UpdateRollup: %v", err)
	}

	got, err := repo.Get(dbc, u.ID, c.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: err=%v row=%v", err, got)
	}
	if got.TimeSpent != 42 {
		t.Fatalf("time_spent: want=42 got=%d", got.TimeSpent)
	}
	if !got.Completed {
		t.Fatalf("completed must not revert once set")
	}
	if got.ProgressPercentage != 50 {
		t.Fatalf("percentage: want=50 got=%v", got.ProgressPercentage)
	}

	done, err := repo.ListCourseIDs(dbc, u.ID, true)
	if err != nil || len(done) != 1 || done[0] != c.ID {
		t.Fatalf("ListCourseIDs(completed): err=%v ids=%v", err, done)
	}
	open, err := repo.ListCourseIDs(dbc, u.ID, false)
	if err != nil || len(open) != 0 {
		t.Fatalf("ListCourseIDs(in progress): err=%v ids=%v", err, open)
	}
	if rows, err := repo.ListByUser(dbc, u.ID); err != nil || len(rows) != 1 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(rows))
	}
}

func TestContentProgressRepoApplyLatchesAndAccumulates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	courses := NewCourseProgressRepo(db, log)
	entries := NewContentProgressRepo(db, log)

	u := testutil.SeedUser(t, ctx, tx, "content@example.com")
	c := testutil.SeedCourse(t, ctx, tx, testutil.CourseSeed{ItemsPerModule: []int{2}})
	now := time.Now().UTC()
	rec, _, err := courses.Ensure(dbc, u.ID, c.ID, now)
	if err != nil {
		t.Fatalf("Ensure record: %v", err)
	}

	created, err := entries.Ensure(dbc, rec.ID, 1, 1, now)
	if err != nil || !created {
		t.Fatalf("Ensure entry: err=%v created=%v", err, created)
	}
	if created, err := entries.Ensure(dbc, rec.ID, 1, 1, now); err != nil || created {
		t.Fatalf("Ensure entry again: err=%v created=%v", err, created)
	}

	key := types.ContentKey(1, 1)
	steps := []ContentPatch{
		{Viewed: testutil.PtrBool(true), TimeSpent: 10, At: now},
		{Completed: testutil.PtrBool(true), TimeSpent: 5, At: now},
		{Viewed: testutil.PtrBool(false), Completed: testutil.PtrBool(false), At: now},
	}
	for i, p := range steps {
		if err := entries.Apply(dbc, rec.ID, key, p); err != nil {
			t.Fatalf("Apply step %d: %v", i, err)
		}
	}

	got, err := entries.Get(dbc, rec.ID, key)
	if err != nil || got == nil {
		t.Fatalf("Get: err=%v row=%v", err, got)
	}
	if !got.Viewed || !got.Completed {
		t.Fatalf("flags must latch: viewed=%v completed=%v", got.Viewed, got.Completed)
	}
	if got.TimeSpent != 15 {
		t.Fatalf("time_spent: want=15 got=%d", got.TimeSpent)
	}
	if got.ModuleOrder != 1 || got.ContentOrder != 1 {
		t.Fatalf("orders: %d/%d", got.ModuleOrder, got.ContentOrder)
	}

	if err := entries.Apply(dbc, rec.ID, types.ContentKey(9, 9), ContentPatch{At: now}); err == nil {
		t.Fatalf("Apply on a missing entry should fail")
	}

	if _, err := entries.Ensure(dbc, rec.ID, 7, 1, now); err != nil {
		t.Fatalf("Ensure stale entry: %v", err)
	}
	if err := entries.Apply(dbc, rec.ID, types.ContentKey(7, 1), ContentPatch{Completed: testutil.PtrBool(true), At: now}); err != nil {
		t.Fatalf("Apply stale: %v", err)
	}

	n, err := entries.CountCompleted(dbc, rec.ID, []string{types.ContentKey(1, 1), types.ContentKey(1, 2)})
	if err != nil || n != 1 {
		t.Fatalf("CountCompleted restricted to tree: err=%v n=%d", err, n)
	}
	if rows, err := entries.ListByProgressID(dbc, rec.ID); err != nil || len(rows) != 2 {
		t.Fatalf("ListByProgressID: err=%v len=%d", err, len(rows))
	}
}
