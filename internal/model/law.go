package model

import "time"

// Law represents a legal instrument broken into articles and clauses.
// Articles and clauses are owned exclusively: deleting a law deletes them.
type Law struct {
	ID               int64       `gorm:"primaryKey" json:"id"`
	LawCode          string      `gorm:"size:100;not null;uniqueIndex" json:"law_code"`
	Title            string      `gorm:"size:500;not null" json:"title"`
	Description      *string     `gorm:"type:text" json:"description,omitempty"`
	Content          string      `gorm:"type:text;not null" json:"content"`
	FullText         *string     `gorm:"type:text" json:"full_text,omitempty"`
	Status           LegalStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	IssuedDate       time.Time   `gorm:"not null;index" json:"issued_date"`
	EffectiveDate    *time.Time  `json:"effective_date,omitempty"`
	RepealDate       *time.Time  `json:"repeal_date,omitempty"`
	IssuingAuthority *string     `gorm:"size:255" json:"issuing_authority,omitempty"`
	Jurisdiction     *string     `gorm:"size:255" json:"jurisdiction,omitempty"`
	Category         *string     `gorm:"size:100;index" json:"category,omitempty"`
	ArticlesCount    *int        `json:"articles_count,omitempty"`
	Keywords         StringList  `json:"keywords,omitempty"`

	BranchID             *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"branch_id,omitempty"`
	SectionID            *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"section_id,omitempty"`
	RelatedLegislationID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"related_legislation_id,omitempty"`

	VersionNumber  int       `gorm:"not null;default:1" json:"version_number"`
	AmendmentNotes *string   `gorm:"type:text" json:"amendment_notes,omitempty"`
	CreatedBy      *string   `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Articles []Article `gorm:"foreignKey:LawID;constraint:OnDelete:CASCADE" json:"articles,omitempty"`
	Clauses  []Clause  `gorm:"foreignKey:LawID;constraint:OnDelete:CASCADE" json:"clauses,omitempty"`
}

// TableName specifies the table name.
func (Law) TableName() string {
	return "laws"
}

// Article represents a numbered article within a law. Article numbers are
// unique per law.
type Article struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	LawID         int64     `gorm:"not null;index;uniqueIndex:uq_law_article_number" json:"law_id"`
	ArticleNumber int       `gorm:"not null;uniqueIndex:uq_law_article_number" json:"article_number"`
	Title         string    `gorm:"size:500;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Clauses []Clause `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"clauses,omitempty"`
}

// TableName specifies the table name.
func (Article) TableName() string {
	return "articles"
}

// Clause represents a clause within a law, optionally attached to a
// specific article. SubClauses keeps nested sub-clause text as a JSON list.
type Clause struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	LawID        int64      `gorm:"not null;index" json:"law_id"`
	ArticleID    *int64     `gorm:"index" json:"article_id,omitempty"`
	ClauseNumber string     `gorm:"size:50;not null" json:"clause_number"`
	Title        string     `gorm:"size:500;not null" json:"title"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	SubClauses   StringList `json:"sub_clauses,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name.
func (Clause) TableName() string {
	return "clauses"
}
