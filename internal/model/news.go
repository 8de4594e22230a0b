package model

import "time"

// News is a legal news item or announcement. Slugs are generated from the
// title when absent and are unique when present.
type News struct {
	ID       int64      `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"size:500;not null" json:"title"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	Summary  *string    `gorm:"size:500" json:"summary,omitempty"`
	Slug     *string    `gorm:"size:500;uniqueIndex" json:"slug,omitempty"`
	Category string     `gorm:"size:100;not null;index" json:"category"`
	Tags     StringList `json:"tags,omitempty"`
	Priority Priority   `gorm:"size:10;not null;default:medium;index" json:"priority"`

	BranchID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"branch_id,omitempty"`

	RelatedLegislationIDs IDList `json:"related_legislation_ids,omitempty"`
	RelatedLawIDs         IDList `json:"related_law_ids,omitempty"`

	FeaturedImageURL *string    `gorm:"size:500" json:"featured_image_url,omitempty"`
	Author           *string    `gorm:"size:255" json:"author,omitempty"`
	Source           *string    `gorm:"size:500" json:"source,omitempty"`
	IsPublished      bool       `gorm:"default:false;index" json:"is_published"`
	IsFeatured       bool       `gorm:"default:false" json:"is_featured"`
	PublishedDate    *time.Time `gorm:"index" json:"published_date,omitempty"`
	ViewCount        int64      `gorm:"not null;default:0" json:"view_count"`
	CreatedBy        *string    `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (News) TableName() string {
	return "news"
}
