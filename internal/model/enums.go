package model

import "fmt"

// LegalStatus is the lifecycle status of a legal instrument.
type LegalStatus string

const (
	StatusActive   LegalStatus = "active"
	StatusInactive LegalStatus = "inactive"
	StatusRepealed LegalStatus = "repealed"
	StatusAmended  LegalStatus = "amended"
	StatusPending  LegalStatus = "pending"
)

// Valid reports whether the status is one of the closed value set.
func (s LegalStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusRepealed, StatusAmended, StatusPending:
		return true
	}
	return false
}

// ParseLegalStatus validates a raw status value.
func ParseLegalStatus(raw string) (LegalStatus, error) {
	s := LegalStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid legal status %q", raw)
	}
	return s, nil
}

// DocumentType classifies library documents and legal instruments.
type DocumentType string

const (
	DocLegislation DocumentType = "legislation"
	DocLaw         DocumentType = "law"
	DocRegulation  DocumentType = "regulation"
	DocDecree      DocumentType = "decree"
	DocResolution  DocumentType = "resolution"
	DocDirective   DocumentType = "directive"
	DocArticle     DocumentType = "article"
	DocClause      DocumentType = "clause"
)

// Valid reports whether the document type is one of the closed value set.
func (d DocumentType) Valid() bool {
	switch d {
	case DocLegislation, DocLaw, DocRegulation, DocDecree,
		DocResolution, DocDirective, DocArticle, DocClause:
		return true
	}
	return false
}

// ParseDocumentType validates a raw document type value.
func ParseDocumentType(raw string) (DocumentType, error) {
	d := DocumentType(raw)
	if !d.Valid() {
		return "", fmt.Errorf("invalid document type %q", raw)
	}
	return d, nil
}

// Priority ranks knowledge-base entries and news items.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is one of the closed value set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority validates a raw priority value.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q", raw)
	}
	return p, nil
}

// KnowledgeStatus is the editorial status of a knowledge-bank entry.
type KnowledgeStatus string

const (
	KnowledgeDraft     KnowledgeStatus = "draft"
	KnowledgePublished KnowledgeStatus = "published"
	KnowledgeArchived  KnowledgeStatus = "archived"
)

// Valid reports whether the status is one of the closed value set.
func (s KnowledgeStatus) Valid() bool {
	switch s {
	case KnowledgeDraft, KnowledgePublished, KnowledgeArchived:
		return true
	}
	return false
}

// ParseKnowledgeStatus validates a raw knowledge status value.
func ParseKnowledgeStatus(raw string) (KnowledgeStatus, error) {
	s := KnowledgeStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid knowledge status %q", raw)
	}
	return s, nil
}
