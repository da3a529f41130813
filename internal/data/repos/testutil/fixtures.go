package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/learnpath-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, interests ...string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:                   uuid.New(),
		Email:                email,
		Name:                 "Test User",
		LearningStyle:        "visual",
		DifficultyPreference: "beginner",
		Interests:            interests,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// CourseSeed describes a catalog course. ItemsPerModule[i] is the number of
// content items in module order i+1; item orders also start at 1.
type CourseSeed struct {
	Title             string
	Description       string
	Difficulty        string
	Category          string
	Tags              []string
	EstimatedDuration *int
	LearningStyle     string
	ItemsPerModule    []int
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, seed CourseSeed) *types.Course {
	tb.Helper()
	title := seed.Title
	if title == "" {
		title = "course"
	}
	c := &types.Course{
		ID:                uuid.New(),
		Title:             title,
		Description:       seed.Description,
		Difficulty:        seed.Difficulty,
		Category:          seed.Category,
		Tags:              seed.Tags,
		EstimatedDuration: seed.EstimatedDuration,
	}
	for mi, n := range seed.ItemsPerModule {
		m := types.CourseModule{
			ID:    uuid.New(),
			Order: mi + 1,
			Title: fmt.Sprintf("module %d", mi+1),
		}
		for ci := 0; ci < n; ci++ {
			m.ContentItems = append(m.ContentItems, types.ContentItem{
				ID:            uuid.New(),
				Order:         ci + 1,
				Title:         fmt.Sprintf("item %d.%d", mi+1, ci+1),
				ContentType:   "text",
				LearningStyle: seed.LearningStyle,
				EstimatedTime: 10,
			})
		}
		c.Modules = append(c.Modules, m)
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedExercise(tb testing.TB, ctx context.Context, tx *gorm.DB, title, difficulty, topic string) *types.Exercise {
	tb.Helper()
	e := &types.Exercise{
		ID:           uuid.New(),
		Title:        title,
		Difficulty:   difficulty,
		Topic:        topic,
		SolutionCode: "pass",
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed exercise: %v", err)
	}
	return e
}

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, passed bool) *types.Submission {
	tb.Helper()
	s := &types.Submission{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
		PassedAll:  passed,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}

func PtrInt(v int) *int { return &v }

func PtrBool(v bool) *bool { return &v }

func PtrInt64(v int64) *int64 { return &v }
