package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Difficulty  string    `gorm:"column:difficulty;index" json:"difficulty"`
	Category    string    `gorm:"column:category;index" json:"category"`

	// RawTags is whatever the catalog stored: a JSON array or a single
	// comma-delimited string. Tags is the normalized view filled in AfterFind.
	RawTags datatypes.JSON `gorm:"column:tags" json:"-"`
	Tags    []string       `gorm:"-" json:"tags"`

	// Minutes. Nil when the catalog does not say.
	EstimatedDuration *int `gorm:"column:estimated_duration" json:"estimated_duration,omitempty"`

	Modules   []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	if c.Tags != nil || len(c.RawTags) == 0 {
		c.RawTags = EncodeStringList(c.Tags)
	}
	return nil
}

func (c *Course) AfterFind(tx *gorm.DB) error {
	c.Tags = NormalizeStringList(c.RawTags)
	return nil
}

// ContentItemCount is the rollup denominator: every content item in every module.
func (c *Course) ContentItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, m := range c.Modules {
		n += len(m.ContentItems)
	}
	return n
}

// FindContent reports whether the (module order, content order) position exists.
func (c *Course) FindContent(moduleOrder, contentOrder int) (*CourseModule, *ContentItem, bool) {
	if c == nil {
		return nil, nil, false
	}
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.Order != moduleOrder {
			continue
		}
		for j := range m.ContentItems {
			if m.ContentItems[j].Order == contentOrder {
				return m, &m.ContentItems[j], true
			}
		}
		return m, nil, false
	}
	return nil, nil, false
}

// ContentKeys lists every composite key of the current content tree.
func (c *Course) ContentKeys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, c.ContentItemCount())
	for _, m := range c.Modules {
		for _, item := range m.ContentItems {
			keys = append(keys, ContentKey(m.Order, item.Order))
		}
	}
	return keys
}

type CourseModule struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_course_module_order,priority:1" json:"course_id"`
	Order        int           `gorm:"column:sort_order;not null;uniqueIndex:idx_course_module_order,priority:2" json:"order"`
	Title        string        `gorm:"column:title;not null" json:"title"`
	Description  string        `gorm:"column:description;type:text" json:"description,omitempty"`
	ContentItems []ContentItem `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"content_items,omitempty"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

func (CourseModule) TableName() string { return "course_module" }

func (m *CourseModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type ContentItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_content_item_order,priority:1" json:"module_id"`
	Order         int       `gorm:"column:sort_order;not null;uniqueIndex:idx_content_item_order,priority:2" json:"order"`
	Title         string    `gorm:"column:title;not null" json:"title"`
	ContentType   string    `gorm:"column:content_type" json:"content_type"` // video|text|quiz|...
	ContentURL    string    `gorm:"column:content_url" json:"content_url,omitempty"`
	Difficulty    string    `gorm:"column:difficulty" json:"difficulty,omitempty"`
	LearningStyle string    `gorm:"column:learning_style" json:"learning_style,omitempty"`
	EstimatedTime int       `gorm:"column:estimated_time;not null;default:0" json:"estimated_time"` // minutes
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (ContentItem) TableName() string { return "course_content_item" }

func (i *ContentItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CourseFilter is the candidate-pool query shared by the selector and the
// path synthesizer. Zero values mean "no constraint".
type CourseFilter struct {
	Difficulty string
	ExcludeIDs []uuid.UUID
	// Match is a case-insensitive substring tested against category, tags,
	// title and description.
	Match string
}
