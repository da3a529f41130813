package domain

import (
	"github.com/yungbote/learnpath-backend/internal/domain/learning"
	"github.com/yungbote/learnpath-backend/internal/domain/user"
)

type User = user.User

type Course = learning.Course
type CourseModule = learning.CourseModule
type ContentItem = learning.ContentItem
type CourseFilter = learning.CourseFilter

type Exercise = learning.Exercise
type ExerciseFilter = learning.ExerciseFilter
type Submission = learning.Submission

type CourseProgress = learning.CourseProgress
type ContentProgress = learning.ContentProgress

type Recommendation = learning.Recommendation
type LearningPath = learning.LearningPath
type LearningPathItem = learning.LearningPathItem
type ItemDetails = learning.ItemDetails

// ContentKey builds the composite "<module_order>:<content_order>" identifier.
func ContentKey(moduleOrder, contentOrder int) string {
	return learning.ContentKey(moduleOrder, contentOrder)
}

// AllModels is the automigration set, parents before children.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&CourseModule{},
		&ContentItem{},
		&Exercise{},
		&Submission{},
		&CourseProgress{},
		&ContentProgress{},
		&Recommendation{},
		&LearningPath{},
		&LearningPathItem{},
	}
}
