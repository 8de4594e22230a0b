package model

import "time"

// LibraryItem is the metadata record for a stored legal document (PDF,
// scan, resource file). Only metadata lives here; blob storage is out of
// scope.
type LibraryItem struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"size:500;not null" json:"title"`
	Description  *string      `gorm:"type:text" json:"description,omitempty"`
	Category     string       `gorm:"size:100;not null;index" json:"category"`
	DocumentType DocumentType `gorm:"size:20;not null;index" json:"document_type"`
	FileName     string       `gorm:"size:500;not null" json:"file_name"`
	FilePath     string       `gorm:"size:1000;not null" json:"file_path"`
	FileSize     *int64       `json:"file_size,omitempty"`
	FileMimeType *string      `gorm:"size:100" json:"file_mime_type,omitempty"`
	Tags         StringList   `json:"tags,omitempty"`
	Keywords     StringList   `json:"keywords,omitempty"`

	BranchID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"branch_id,omitempty"`

	RelatedLegislationIDs IDList `json:"related_legislation_ids,omitempty"`
	RelatedLawIDs         IDList `json:"related_law_ids,omitempty"`

	Author          *string    `gorm:"size:255" json:"author,omitempty"`
	Source          *string    `gorm:"size:500" json:"source,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	IsActive        bool       `gorm:"default:true;index" json:"is_active"`
	DownloadCount   int64      `gorm:"not null;default:0" json:"download_count"`
	CreatedBy       *string    `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (LibraryItem) TableName() string {
	return "library_items"
}
