package db

import (
	"fmt"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Goal matching lowercases every column it scans.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_course_lower_category
		ON course (lower(category));
	`).Error; err != nil {
		return fmt.Errorf("create idx_course_lower_category: %w", err)
	}

	// Rollup counts only completed entries of one record.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_content_progress_completed
		ON content_progress (course_progress_id)
		WHERE completed;
	`).Error; err != nil {
		return fmt.Errorf("create idx_content_progress_completed: %w", err)
	}
	return nil
}
