package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recommendation is an engine output a caller chose to persist. Score is an
// unbounded heuristic (>= 0), not a probability.
type Recommendation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null" json:"item_id"`
	ItemType  string    `gorm:"column:item_type;not null" json:"item_type"`
	Reason    string    `gorm:"column:reason" json:"reason"`
	Score     float64   `gorm:"column:score;not null" json:"score"`
	Viewed    bool      `gorm:"column:viewed;not null;default:false" json:"viewed"`
	Clicked   bool      `gorm:"column:clicked;not null;default:false" json:"clicked"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Recommendation) TableName() string { return "recommendation" }

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
