package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var CourseProgressAggregateContract = Contract{
	Name:             "Learning.CourseProgressAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	Serialization:    SerializePerKeyLock,
	Notes: "Owns the (user, course) progress record: lazy creation, content entry merge, " +
		"time accumulation and the derived percentage, in one write boundary per key.",
}

// CourseProgressAggregate owns every write to course_progress and content_progress.
//
// Failures are *aggregates.Error with codes CodeValidation, CodeNotFound,
// CodeConflict, CodeRetryable or CodeInternal.
type CourseProgressAggregate interface {
	Aggregate

	// ApplyContentUpdate merges a partial content update and recomputes the rollup.
	ApplyContentUpdate(ctx context.Context, in ApplyContentUpdateInput) (ApplyContentUpdateResult, error)

	// RecordCourseTime adds to the course-level time accumulator only.
	RecordCourseTime(ctx context.Context, in RecordCourseTimeInput) (ApplyContentUpdateResult, error)
}

// ApplyContentUpdateInput is a partial update: nil fields leave prior state untouched.
type ApplyContentUpdateInput struct {
	UserID       uuid.UUID
	CourseID     uuid.UUID
	ModuleOrder  int
	ContentOrder int
	Viewed       *bool
	Completed    *bool
	TimeSpent    *int64
	At           time.Time
}

type RecordCourseTimeInput struct {
	UserID    uuid.UUID
	CourseID  uuid.UUID
	TimeSpent int64
	At        time.Time
}

type ContentEntrySummary struct {
	ContentKey   string    `json:"content_id"`
	Viewed       bool      `json:"viewed"`
	Completed    bool      `json:"completed"`
	TimeSpent    int64     `json:"time_spent"`
	LastAccessed time.Time `json:"last_accessed"`
}

type ApplyContentUpdateResult struct {
	CourseProgressID   uuid.UUID            `json:"id"`
	UserID             uuid.UUID            `json:"user_id"`
	CourseID           uuid.UUID            `json:"course_id"`
	ProgressPercentage float64              `json:"progress_percentage"`
	Completed          bool                 `json:"completed"`
	TimeSpent          int64                `json:"time_spent"`
	LastAccessed       time.Time            `json:"last_accessed"`
	CompletedItems     int                  `json:"completed_items"`
	TotalItems         int                  `json:"total_items"`
	Created            bool                 `json:"created"`
	Entry              *ContentEntrySummary `json:"content,omitempty"`
}
