package learning

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseProgress is the single per-(user, course) record. ProgressPercentage
// and Completed are derived from the content entries and never client-set.
type CourseProgress struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_course_progress_user_course,priority:1" json:"user_id"`
	CourseID           uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_course_progress_user_course,priority:2;index" json:"course_id"`
	ProgressPercentage float64           `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
	Completed          bool              `gorm:"column:completed;not null;default:false;index" json:"completed"`
	TimeSpent          int64             `gorm:"column:time_spent;not null;default:0" json:"time_spent"` // seconds
	LastAccessed       time.Time         `gorm:"column:last_accessed;not null" json:"last_accessed"`
	ContentProgress    []ContentProgress `gorm:"foreignKey:CourseProgressID;constraint:OnDelete:CASCADE" json:"content_progress,omitempty"`
	CreatedAt          time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"not null" json:"updated_at"`
}

func (CourseProgress) TableName() string { return "course_progress" }

func (p *CourseProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ContentProgress struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseProgressID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_content_progress_key,priority:1" json:"course_progress_id"`
	ContentKey       string    `gorm:"column:content_key;not null;uniqueIndex:idx_content_progress_key,priority:2" json:"content_id"`
	ModuleOrder      int       `gorm:"column:module_order;not null" json:"module_order"`
	ContentOrder     int       `gorm:"column:content_order;not null" json:"content_order"`
	Viewed           bool      `gorm:"column:viewed;not null;default:false" json:"viewed"`
	Completed        bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	TimeSpent        int64     `gorm:"column:time_spent;not null;default:0" json:"time_spent"`
	LastAccessed     time.Time `gorm:"column:last_accessed;not null" json:"last_accessed"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (ContentProgress) TableName() string { return "content_progress" }

func (p *ContentProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ContentKey builds the composite "<module_order>:<content_order>" identifier.
func ContentKey(moduleOrder, contentOrder int) string {
	return strconv.Itoa(moduleOrder) + ":" + strconv.Itoa(contentOrder)
}

func ParseContentKey(key string) (moduleOrder, contentOrder int, err error) {
	parts := strings.Split(strings.TrimSpace(key), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed content key %q", key)
	}
	if moduleOrder, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed module order in %q: %w", key, err)
	}
	if contentOrder, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed content order in %q: %w", key, err)
	}
	return moduleOrder, contentOrder, nil
}

// RollupPercentage is 100*completed/total, or prev when the course has no content.
func RollupPercentage(completed, total int, prev float64) float64 {
	if total <= 0 {
		return prev
	}
	return 100 * float64(completed) / float64(total)
}
