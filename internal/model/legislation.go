package model

import "time"

// Legislation represents a top-level legislative instrument. A later
// legislation can amend an earlier one through ParentLegislationID,
// forming a parent-pointer forest. The store rejects parent references
// that would create a cycle.
type Legislation struct {
	ID               int64        `gorm:"primaryKey" json:"id"`
	LegislationCode  string       `gorm:"size:100;not null;uniqueIndex" json:"legislation_code"`
	Title            string       `gorm:"size:500;not null" json:"title"`
	Description      *string      `gorm:"type:text" json:"description,omitempty"`
	Content          string       `gorm:"type:text;not null" json:"content"`
	DocumentType     DocumentType `gorm:"size:20;not null;default:legislation" json:"document_type"`
	Status           LegalStatus  `gorm:"size:20;not null;default:active;index" json:"status"`
	IssuedDate       time.Time    `gorm:"not null;index" json:"issued_date"`
	EffectiveDate    *time.Time   `json:"effective_date,omitempty"`
	RepealDate       *time.Time   `json:"repeal_date,omitempty"`
	IssuingAuthority *string      `gorm:"size:255" json:"issuing_authority,omitempty"`
	Category         *string      `gorm:"size:100;index" json:"category,omitempty"`
	Keywords         StringList   `json:"keywords,omitempty"`

	// Nullable associations; nulled out when the referenced row is deleted.
	BranchID            *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"branch_id,omitempty"`
	SectionID           *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"section_id,omitempty"`
	ParentLegislationID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"parent_legislation_id,omitempty"`

	VersionNumber  int       `gorm:"not null;default:1" json:"version_number"`
	AmendmentNotes *string   `gorm:"type:text" json:"amendment_notes,omitempty"`
	CreatedBy      *string   `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (Legislation) TableName() string {
	return "legislations"
}
