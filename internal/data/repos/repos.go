package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos/learning"
	"github.com/yungbote/learnpath-backend/internal/data/repos/user"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type ExerciseRepo = learning.ExerciseRepo
type SubmissionRepo = learning.SubmissionRepo

type CourseProgressRepo = learning.CourseProgressRepo
type ContentProgressRepo = learning.ContentProgressRepo
type ContentPatch = learning.ContentPatch

type RecommendationRepo = learning.RecommendationRepo
type LearningPathRepo = learning.LearningPathRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewExerciseRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseRepo {
	return learning.NewExerciseRepo(db, baseLog)
}
func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return learning.NewSubmissionRepo(db, baseLog)
}

func NewCourseProgressRepo(db *gorm.DB, baseLog *logger.Logger) CourseProgressRepo {
	return learning.NewCourseProgressRepo(db, baseLog)
}
func NewContentProgressRepo(db *gorm.DB, baseLog *logger.Logger) ContentProgressRepo {
	return learning.NewContentProgressRepo(db, baseLog)
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return learning.NewRecommendationRepo(db, baseLog)
}
func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return learning.NewLearningPathRepo(db, baseLog)
}

// Set is every repo the service needs, built over one handle.
type Set struct {
	Users           UserRepo
	Courses         CourseRepo
	Exercises       ExerciseRepo
	Submissions     SubmissionRepo
	CourseProgress  CourseProgressRepo
	ContentProgress ContentProgressRepo
	Recommendations RecommendationRepo
	LearningPaths   LearningPathRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Users:           NewUserRepo(db, baseLog),
		Courses:         NewCourseRepo(db, baseLog),
		Exercises:       NewExerciseRepo(db, baseLog),
		Submissions:     NewSubmissionRepo(db, baseLog),
		CourseProgress:  NewCourseProgressRepo(db, baseLog),
		ContentProgress: NewContentProgressRepo(db, baseLog),
		Recommendations: NewRecommendationRepo(db, baseLog),
		LearningPaths:   NewLearningPathRepo(db, baseLog),
	}
}
