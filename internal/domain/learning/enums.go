package learning

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	LearningStyleVisual      = "visual"
	LearningStyleAuditory    = "auditory"
	LearningStyleReading     = "reading"
	LearningStyleKinesthetic = "kinesthetic"
)

const (
	ItemTypeCourse   = "course"
	ItemTypeExercise = "exercise"
)

const (
	TimeframeShort  = "short"
	TimeframeMedium = "medium"
	TimeframeLong   = "long"
)

func IsDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func IsLearningStyle(s string) bool {
	switch s {
	case LearningStyleVisual, LearningStyleAuditory, LearningStyleReading, LearningStyleKinesthetic:
		return true
	}
	return false
}
