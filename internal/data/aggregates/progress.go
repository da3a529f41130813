package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

type CourseProgressAggregateDeps struct {
	Base BaseDeps

	Courses  repos.CourseRepo
	Progress repos.CourseProgressRepo
	Entries  repos.ContentProgressRepo

	// Now is overridable in tests.
	Now func() time.Time
}

type courseProgressAggregate struct {
	deps CourseProgressAggregateDeps
}

func NewCourseProgressAggregate(deps CourseProgressAggregateDeps) domainagg.CourseProgressAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &courseProgressAggregate{deps: deps}
}

func (a *courseProgressAggregate) Contract() domainagg.Contract {
	return domainagg.CourseProgressAggregateContract
}

func (a *courseProgressAggregate) ApplyContentUpdate(ctx context.Context, in domainagg.ApplyContentUpdateInput) (domainagg.ApplyContentUpdateResult, error) {
	const op = "Learning.CourseProgress.ApplyContentUpdate"
	var out domainagg.ApplyContentUpdateResult
	start := time.Now()

	if err := validateKeys(op, in.UserID, in.CourseID); err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	var delta int64
	if in.TimeSpent != nil {
		if *in.TimeSpent < 0 {
			err := domainagg.Validation(op, "time_spent must be >= 0, got %d", *in.TimeSpent)
			observe(a.deps.Base, op, err, time.Since(start))
			return out, err
		}
		delta = *in.TimeSpent
	}

	// Existence checks run before any write so a bad position never creates
	// an empty progress record.
	course, err := a.loadCourse(ctx, op, in.CourseID)
	if err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	if _, _, ok := course.FindContent(in.ModuleOrder, in.ContentOrder); !ok {
		err := domainagg.NotFound(op, "content %d:%d not found in course %s", in.ModuleOrder, in.ContentOrder, in.CourseID)
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}

	release, err := a.acquire(ctx, op, in.UserID, in.CourseID)
	if err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	defer release()

	at := a.at(in.At)
	key := types.ContentKey(in.ModuleOrder, in.ContentOrder)

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, created, err := a.deps.Progress.Ensure(dbc, in.UserID, in.CourseID, at)
		if err != nil {
			return err
		}
		if _, err := a.deps.Entries.Ensure(dbc, rec.ID, in.ModuleOrder, in.ContentOrder, at); err != nil {
			return err
		}
		if err := a.deps.Entries.Apply(dbc, rec.ID, key, repos.ContentPatch{
			Viewed:    in.Viewed,
			Completed: in.Completed,
			TimeSpent: delta,
			At:        at,
		}); err != nil {
			return err
		}
		if delta > 0 {
			if err := a.deps.Progress.AddTime(dbc, rec.ID, delta, at); err != nil {
				return err
			}
		}

		res, err := a.rollup(dbc, course, rec, at)
		if err != nil {
			return err
		}
		res.Created = created

		entry, err := a.deps.Entries.Get(dbc, rec.ID, key)
		if err != nil {
			return err
		}
		if entry != nil {
			res.Entry = &domainagg.ContentEntrySummary{
				ContentKey:   entry.ContentKey,
				Viewed:       entry.Viewed,
				Completed:    entry.Completed,
				TimeSpent:    entry.TimeSpent,
				LastAccessed: entry.LastAccessed,
			}
		}
		out = res
		return nil
	})
	if err != nil {
		return domainagg.ApplyContentUpdateResult{}, err
	}
	a.deps.Base.Log.Debug("Applied content update",
		"user_id", in.UserID,
		"course_id", in.CourseID,
		"content_id", key,
		"progress_percentage", out.ProgressPercentage,
		"completed", out.Completed,
	)
	return out, nil
}

func (a *courseProgressAggregate) RecordCourseTime(ctx context.Context, in domainagg.RecordCourseTimeInput) (domainagg.ApplyContentUpdateResult, error) {
	const op = "Learning.CourseProgress.RecordCourseTime"
	var out domainagg.ApplyContentUpdateResult
	start := time.Now()

	if err := validateKeys(op, in.UserID, in.CourseID); err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	if in.TimeSpent < 0 {
		err := domainagg.Validation(op, "time_spent must be >= 0, got %d", in.TimeSpent)
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	course, err := a.loadCourse(ctx, op, in.CourseID)
	if err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}

	release, err := a.acquire(ctx, op, in.UserID, in.CourseID)
	if err != nil {
		observe(a.deps.Base, op, err, time.Since(start))
		return out, err
	}
	defer release()

	at := a.at(in.At)
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, created, err := a.deps.Progress.Ensure(dbc, in.UserID, in.CourseID, at)
		if err != nil {
			return err
		}
		if err := a.deps.Progress.AddTime(dbc, rec.ID, in.TimeSpent, at); err != nil {
			return err
		}
		res, err := a.rollup(dbc, course, rec, at)
		if err != nil {
			return err
		}
		res.Created = created
		out = res
		return nil
	})
	if err != nil {
		return domainagg.ApplyContentUpdateResult{}, err
	}
	return out, nil
}

// rollup recomputes the derived percentage from the entries whose keys exist
// in the current content tree and returns the stored summary.
func (a *courseProgressAggregate) rollup(dbc dbctx.Context, course *types.Course, rec *types.CourseProgress, at time.Time) (domainagg.ApplyContentUpdateResult, error) {
	keys := course.ContentKeys()
	total := len(keys)
	completed, err := a.deps.Entries.CountCompleted(dbc, rec.ID, keys)
	if err != nil {
		return domainagg.ApplyContentUpdateResult{}, err
	}
	pct := learning.RollupPercentage(int(completed), total, rec.ProgressPercentage)
	done := total > 0 && pct >= 100
	if err := a.deps.Progress.UpdateRollup(dbc, rec.ID, pct, done, at); err != nil {
		return domainagg.ApplyContentUpdateResult{}, err
	}

	stored, err := a.deps.Progress.Get(dbc, rec.UserID, rec.CourseID)
	if err != nil {
		return domainagg.ApplyContentUpdateResult{}, err
	}
	if stored == nil {
		return domainagg.ApplyContentUpdateResult{}, InvariantError("progress record vanished inside its own transaction")
	}
	return domainagg.ApplyContentUpdateResult{
		CourseProgressID:   stored.ID,
		UserID:             stored.UserID,
		CourseID:           stored.CourseID,
		ProgressPercentage: stored.ProgressPercentage,
		Completed:          stored.Completed,
		TimeSpent:          stored.TimeSpent,
		LastAccessed:       stored.LastAccessed,
		CompletedItems:     int(completed),
		TotalItems:         total,
	}, nil
}

func (a *courseProgressAggregate) loadCourse(ctx context.Context, op string, courseID uuid.UUID) (*types.Course, error) {
	course, err := a.deps.Courses.GetByID(dbctx.From(ctx), courseID)
	if err != nil {
		return nil, MapError(op, err)
	}
	if course == nil {
		return nil, domainagg.NotFound(op, "course %s not found", courseID)
	}
	return course, nil
}

func (a *courseProgressAggregate) acquire(ctx context.Context, op string, userID, courseID uuid.UUID) (func(), error) {
	release, err := a.deps.Base.Locker.Acquire(ctx, ProgressLockKey(userID, courseID))
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, "progress record is busy, retry", err)
	}
	return release, nil
}

func (a *courseProgressAggregate) at(in time.Time) time.Time {
	if in.IsZero() {
		return a.deps.Now()
	}
	return in.UTC()
}

func validateKeys(op string, userID, courseID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainagg.Validation(op, "user_id is required")
	}
	if courseID == uuid.Nil {
		return domainagg.Validation(op, "course_id is required")
	}
	return nil
}
