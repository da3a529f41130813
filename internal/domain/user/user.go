package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/domain/learning"
)

// User carries the profile fields the recommender reads. LearningStyle,
// DifficultyPreference and Interests are all optional.
type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name                 string    `gorm:"column:name" json:"name"`
	LearningStyle        string    `gorm:"column:learning_style" json:"learning_style,omitempty"`
	DifficultyPreference string    `gorm:"column:difficulty_preference" json:"difficulty_preference,omitempty"`

	RawInterests datatypes.JSON `gorm:"column:interests" json:"-"`
	Interests    []string       `gorm:"-" json:"interests"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Interests != nil || len(u.RawInterests) == 0 {
		u.RawInterests = learning.EncodeStringList(u.Interests)
	}
	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	u.Interests = learning.NormalizeStringList(u.RawInterests)
	return nil
}
