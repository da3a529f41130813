package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Exercise struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Difficulty  string    `gorm:"column:difficulty;index" json:"difficulty"`
	Topic       string    `gorm:"column:topic;index" json:"topic"`

	// Grading material stays server side; never part of a recommendation payload.
	TestCases    datatypes.JSON `gorm:"column:test_cases" json:"-"`
	SolutionCode string         `gorm:"column:solution_code;type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Exercise) TableName() string { return "exercise" }

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Submission is written by the code-execution service; this backend only reads it.
type Submission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_submission_user_passed,priority:1" json:"user_id"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null;index" json:"exercise_id"`
	PassedAll  bool      `gorm:"column:passed_all;not null;default:false;index:idx_submission_user_passed,priority:2" json:"passed_all"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Submission) TableName() string { return "exercise_submission" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ExerciseFilter struct {
	Difficulty string
	ExcludeIDs []uuid.UUID
}
