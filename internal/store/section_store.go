package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// SectionStore handles database operations for sections.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, branch_id, code, name, description, head_name, email, phone,
	       is_active, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (*model.Section, error) {
	var sec model.Section
	err := row.Scan(
		&sec.ID,
		&sec.BranchID,
		&sec.Code,
		&sec.Name,
		&sec.Description,
		&sec.HeadName,
		&sec.Email,
		&sec.Phone,
		&sec.IsActive,
		&sec.CreatedAt,
		&sec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// Create inserts a section. A duplicate (branch_id, code) pair yields
// ErrConflict; an unknown branch yields ErrForeignKey.
func (s *SectionStore) Create(ctx context.Context, sec *model.Section) error {
	query := `
		INSERT INTO sections (branch_id, code, name, description, head_name,
		                      email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	sec.CreatedAt = now
	sec.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		sec.BranchID, sec.Code, sec.Name, sec.Description,
		sec.HeadName, sec.Email, sec.Phone, sec.IsActive, now,
	).Scan(&sec.ID)
	if err != nil {
		return fmt.Errorf("failed to create section %s: %w", sec.Code, mapError(err))
	}

	return nil
}

// GetByID retrieves a section by id, or nil when absent.
func (s *SectionStore) GetByID(ctx context.Context, id int64) (*model.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`

	sec, err := scanSection(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section %d: %w", id, err)
	}

	return sec, nil
}

// ListByBranch returns all sections of a branch in code order.
func (s *SectionStore) ListByBranch(ctx context.Context, branchID int64) ([]model.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE branch_id = $1 ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections for branch %d: %w", branchID, err)
	}
	defer rows.Close()

	sections := []model.Section{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, *sec)
	}

	return sections, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *SectionStore) Update(ctx context.Context, sec *model.Section) error {
	query := `
		UPDATE sections
		SET branch_id = $2, code = $3, name = $4, description = $5,
		    head_name = $6, email = $7, phone = $8, is_active = $9,
		    updated_at = $10
		WHERE id = $1
	`

	now := time.Now().UTC()
	sec.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		sec.ID, sec.BranchID, sec.Code, sec.Name, sec.Description,
		sec.HeadName, sec.Email, sec.Phone, sec.IsActive, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update section %d: %w", sec.ID, mapError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a section. Returns false when the id was already absent.
func (s *SectionStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete section %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
