package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

var tracer = otel.Tracer("learnpath.progress")

// CourseReader is the slice of the catalog progress reads need.
type CourseReader interface {
	GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	GetCourses(ctx context.Context, courseIDs []uuid.UUID) ([]*types.Course, error)
}

type UsecasesDeps struct {
	Log *logger.Logger

	Aggregate domainagg.CourseProgressAggregate
	Courses   CourseReader
	Progress  repos.CourseProgressRepo
	Entries   repos.ContentProgressRepo

	Metrics *observability.Metrics
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.With("service", "ProgressUsecases")
	return Usecases{deps: deps}
}

type ContentUpdate struct {
	UserID       uuid.UUID
	CourseID     uuid.UUID
	ModuleOrder  int
	ContentOrder int
	Viewed       *bool
	Completed    *bool
	TimeSpent    *int64
}

// UpdateContentProgress merges a partial content update and returns the new
// course summary. Absent fields leave stored state alone.
func (u Usecases) UpdateContentProgress(ctx context.Context, in ContentUpdate) (domainagg.ApplyContentUpdateResult, error) {
	ctx, span := tracer.Start(ctx, "Progress.UpdateContentProgress", trace.WithAttributes(
		attribute.String("user_id", in.UserID.String()),
		attribute.String("course_id", in.CourseID.String()),
		attribute.String("content_id", types.ContentKey(in.ModuleOrder, in.ContentOrder)),
	))
	defer span.End()

	out, err := u.deps.Aggregate.ApplyContentUpdate(ctx, domainagg.ApplyContentUpdateInput{
		UserID:       in.UserID,
		CourseID:     in.CourseID,
		ModuleOrder:  in.ModuleOrder,
		ContentOrder: in.ContentOrder,
		Viewed:       in.Viewed,
		Completed:    in.Completed,
		TimeSpent:    in.TimeSpent,
		At:           time.Now().UTC(),
	})
	u.record(span, "content", err)
	if err == nil {
		span.SetAttributes(attribute.Float64("progress_percentage", out.ProgressPercentage))
	}
	return out, err
}

// RecordCourseTime adds seconds to the course-level accumulator.
func (u Usecases) RecordCourseTime(ctx context.Context, userID, courseID uuid.UUID, seconds int64) (domainagg.ApplyContentUpdateResult, error) {
	ctx, span := tracer.Start(ctx, "Progress.RecordCourseTime", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("course_id", courseID.String()),
	))
	defer span.End()

	out, err := u.deps.Aggregate.RecordCourseTime(ctx, domainagg.RecordCourseTimeInput{
		UserID:    userID,
		CourseID:  courseID,
		TimeSpent: seconds,
		At:        time.Now().UTC(),
	})
	u.record(span, "course_time", err)
	return out, err
}

func (u Usecases) record(span trace.Span, kind string, err error) {
	status := "success"
	if err != nil {
		status = string(domainagg.CodeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if domainagg.IsCode(err, domainagg.CodeInternal) {
			u.deps.Log.Error("progress update failed", "kind", kind, "error", err)
		}
	}
	u.deps.Metrics.IncProgressUpdate(kind, status)
}

type CourseSummary struct {
	CourseID           uuid.UUID `json:"course_id"`
	CourseTitle        string    `json:"course_title"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Completed          bool      `json:"completed"`
	TimeSpent          int64     `json:"time_spent"`
	LastAccessed       time.Time `json:"last_accessed"`
}

// ListCourseProgress returns the user's progress records, most recently
// touched first. Records whose course left the catalog keep an empty title.
func (u Usecases) ListCourseProgress(ctx context.Context, userID uuid.UUID) ([]CourseSummary, error) {
	const op = "Progress.ListCourseProgress"
	rows, err := u.deps.Progress.ListByUser(dbctx.From(ctx), userID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	out := make([]CourseSummary, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CourseID)
	}
	courses, err := u.deps.Courses.GetCourses(ctx, ids)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	titles := make(map[uuid.UUID]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	for _, r := range rows {
		out = append(out, CourseSummary{
			CourseID:           r.CourseID,
			CourseTitle:        titles[r.CourseID],
			ProgressPercentage: r.ProgressPercentage,
			Completed:          r.Completed,
			TimeSpent:          r.TimeSpent,
			LastAccessed:       r.LastAccessed,
		})
	}
	return out, nil
}

type NextContent struct {
	ContentKey   string             `json:"content_id"`
	ModuleOrder  int                `json:"module_order"`
	ContentOrder int                `json:"content_order"`
	ModuleTitle  string             `json:"module_title"`
	Item         *types.ContentItem `json:"item"`
}

// NextContent is the first item, in module then content order, the user has
// not completed. It is nil when everything is done or the course is empty.
func (u Usecases) NextContent(ctx context.Context, userID, courseID uuid.UUID) (*NextContent, error) {
	const op = "Progress.NextContent"
	course, err := u.deps.Courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if course == nil {
		return nil, domainagg.NotFound(op, "course %s not found", courseID)
	}

	done := map[string]bool{}
	rec, err := u.deps.Progress.Get(dbctx.From(ctx), userID, courseID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if rec != nil {
		entries, err := u.deps.Entries.ListByProgressID(dbctx.From(ctx), rec.ID)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		for _, e := range entries {
			if e.Completed {
				done[e.ContentKey] = true
			}
		}
	}

	for _, m := range course.Modules {
		for i := range m.ContentItems {
			item := m.ContentItems[i]
			key := types.ContentKey(m.Order, item.Order)
			if done[key] {
				continue
			}
			return &NextContent{
				ContentKey:   key,
				ModuleOrder:  m.Order,
				ContentOrder: item.Order,
				ModuleTitle:  m.Title,
				Item:         &item,
			}, nil
		}
	}
	return nil, nil
}
