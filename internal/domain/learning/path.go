package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningPath struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Goal   string    `gorm:"column:goal;not null" json:"goal"`
	// Timeframe is the token the caller asked for; EstimatedDuration is the resolved weeks.
	Timeframe         string             `gorm:"column:timeframe" json:"timeframe"`
	EstimatedDuration int                `gorm:"column:estimated_duration;not null" json:"estimated_duration"`
	Items             []LearningPathItem `gorm:"foreignKey:PathID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"not null" json:"updated_at"`
}

func (LearningPath) TableName() string { return "learning_path" }

func (p *LearningPath) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type LearningPathItem struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"-"`
	PathID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_learning_path_item_order,priority:1" json:"-"`
	Order         int          `gorm:"column:sort_order;not null;uniqueIndex:idx_learning_path_item_order,priority:2" json:"order"`
	ItemID        uuid.UUID    `gorm:"type:uuid;not null" json:"item_id"`
	ItemType      string       `gorm:"column:item_type;not null" json:"item_type"`
	Completed     bool         `gorm:"column:completed;not null;default:false" json:"completed"`
	EstimatedTime int          `gorm:"column:estimated_time;not null;default:0" json:"estimated_time"`
	Details       *ItemDetails `gorm:"-" json:"details,omitempty"`
}

func (LearningPathItem) TableName() string { return "learning_path_item" }

func (i *LearningPathItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ItemDetails is the display summary attached when a path is fetched.
type ItemDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}
