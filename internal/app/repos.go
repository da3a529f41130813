package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Repos struct {
	repos.Set

	Catalog  *repos.Catalog
	Progress *repos.ProgressIndex
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	set := repos.NewSet(db, log)
	return Repos{
		Set:      set,
		Catalog:  repos.NewCatalog(set.Users, set.Courses, set.Exercises),
		Progress: repos.NewProgressIndex(set.CourseProgress, set.Submissions),
	}
}
