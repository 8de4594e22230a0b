package model

import "time"

// KnowledgeBase is a curated knowledge-bank entry: reference content
// classified by category and tags, loosely cross-referenced against
// legislation and laws. Titles are unique across the knowledge bank.
type KnowledgeBase struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:500;not null;uniqueIndex" json:"title"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	Summary     *string         `gorm:"type:text" json:"summary,omitempty"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	Subcategory *string         `gorm:"size:100" json:"subcategory,omitempty"`
	Tags        StringList      `json:"tags,omitempty"`
	Keywords    StringList      `json:"keywords,omitempty"`
	Priority    Priority        `gorm:"size:10;not null;default:medium;index" json:"priority"`
	Status      KnowledgeStatus `gorm:"size:20;not null;default:draft;index" json:"status"`

	BranchID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"branch_id,omitempty"`

	// Weak references: ids only, existence not enforced.
	RelatedLegislationIDs IDList `json:"related_legislation_ids,omitempty"`
	RelatedLawIDs         IDList `json:"related_law_ids,omitempty"`

	Author    *string   `gorm:"size:255" json:"author,omitempty"`
	Source    *string   `gorm:"size:500" json:"source,omitempty"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	ViewCount int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedBy *string   `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (KnowledgeBase) TableName() string {
	return "knowledge_base"
}
