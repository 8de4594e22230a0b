package model

import "time"

// Branch represents an organizational branch or department that owns
// legal content for a jurisdiction.
type Branch struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	HeadName    *string   `gorm:"size:255" json:"head_name,omitempty"`
	Email       *string   `gorm:"size:255" json:"email,omitempty"`
	Phone       *string   `gorm:"size:20" json:"phone,omitempty"`
	Address     *string   `gorm:"type:text" json:"address,omitempty"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Sections are owned exclusively: deleting a branch deletes them.
	Sections []Section `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

// TableName specifies the table name.
func (Branch) TableName() string {
	return "branches"
}

// Section represents a section within a branch. Section codes are unique
// per branch, not globally.
type Section struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	BranchID    int64     `gorm:"not null;index;uniqueIndex:uq_branch_section_code" json:"branch_id"`
	Code        string    `gorm:"size:50;not null;uniqueIndex:uq_branch_section_code" json:"code"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	HeadName    *string   `gorm:"size:255" json:"head_name,omitempty"`
	Email       *string   `gorm:"size:255" json:"email,omitempty"`
	Phone       *string   `gorm:"size:20" json:"phone,omitempty"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (Section) TableName() string {
	return "sections"
}
