package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// ErrAmendmentCycle reports a parent reference that would make a
// legislation its own ancestor.
var ErrAmendmentCycle = errors.New("parent legislation would create a cycle")

// maxAmendmentDepth bounds the ancestor walk; amendment chains deeper
// than this are treated as cycles.
const maxAmendmentDepth = 100

// LegislationStore handles database operations for legislation.
type LegislationStore struct {
	db *sql.DB
}

// NewLegislationStore creates a new LegislationStore.
func NewLegislationStore(db *sql.DB) *LegislationStore {
	return &LegislationStore{db: db}
}

// LegislationFilter narrows List results; predicates compose with AND.
type LegislationFilter struct {
	Status   string
	Category string
	BranchID int64
}

const legislationColumns = `id, legislation_code, title, description, content, document_type,
	       status, issued_date, effective_date, repeal_date, issuing_authority,
	       category, keywords, branch_id, section_id, parent_legislation_id,
	       version_number, amendment_notes, created_by, created_at, updated_at`

func scanLegislation(row interface{ Scan(...any) error }) (*model.Legislation, error) {
	var l model.Legislation
	err := row.Scan(
		&l.ID,
		&l.LegislationCode,
		&l.Title,
		&l.Description,
		&l.Content,
		&l.DocumentType,
		&l.Status,
		&l.IssuedDate,
		&l.EffectiveDate,
		&l.RepealDate,
		&l.IssuingAuthority,
		&l.Category,
		&l.Keywords,
		&l.BranchID,
		&l.SectionID,
		&l.ParentLegislationID,
		&l.VersionNumber,
		&l.AmendmentNotes,
		&l.CreatedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// checkParent walks the amendment chain upward from parentID and rejects
// it when selfID appears among the ancestors. The walk is bounded so a
// corrupted chain cannot loop forever.
func (s *LegislationStore) checkParent(ctx context.Context, selfID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		return ErrAmendmentCycle
	}

	current := *parentID
	for i := 0; i < maxAmendmentDepth; i++ {
		var next sql.NullInt64
		err := s.db.QueryRowContext(ctx,
			`SELECT parent_legislation_id FROM legislations WHERE id = $1`,
			current,
		).Scan(&next)
		if err == sql.ErrNoRows {
			// Parent does not exist; the FK constraint reports that.
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to walk amendment chain: %w", err)
		}
		if !next.Valid {
			return nil
		}
		if selfID != 0 && next.Int64 == selfID {
			return ErrAmendmentCycle
		}
		current = next.Int64
	}

	return ErrAmendmentCycle
}

// Create inserts a legislation. A duplicate code yields ErrConflict; a
// cycle-forming parent yields ErrAmendmentCycle.
func (s *LegislationStore) Create(ctx context.Context, l *model.Legislation) error {
	if err := s.checkParent(ctx, 0, l.ParentLegislationID); err != nil {
		return err
	}

	query := `
		INSERT INTO legislations (legislation_code, title, description, content,
		                          document_type, status, issued_date, effective_date,
		                          repeal_date, issuing_authority, category, keywords,
		                          branch_id, section_id, parent_legislation_id,
		                          version_number, amendment_notes, created_by,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING id
	`

	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		l.LegislationCode, l.Title, l.Description, l.Content,
		l.DocumentType, l.Status, l.IssuedDate, l.EffectiveDate,
		l.RepealDate, l.IssuingAuthority, l.Category, l.Keywords,
		l.BranchID, l.SectionID, l.ParentLegislationID,
		l.VersionNumber, l.AmendmentNotes, l.CreatedBy, now,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to create legislation %s: %w",
			l.LegislationCode, mapError(err))
	}

	return nil
}

// GetByID retrieves a legislation by id, or nil when absent.
func (s *LegislationStore) GetByID(ctx context.Context, id int64) (*model.Legislation, error) {
	query := `SELECT ` + legislationColumns + ` FROM legislations WHERE id = $1`

	l, err := scanLegislation(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get legislation %d: %w", id, err)
	}

	return l, nil
}

// List returns one page of legislation in creation order with the total
// count of rows matching the filter.
func (s *LegislationStore) List(
	ctx context.Context, f LegislationFilter, skip, limit int,
) ([]model.Legislation, int, error) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.BranchID != 0 {
		args = append(args, f.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM legislations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count legislations: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+legislationColumns+` FROM legislations%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list legislations: %w", err)
	}
	defer rows.Close()

	items := []model.Legislation{}
	for rows.Next() {
		l, err := scanLegislation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan legislation: %w", err)
		}
		items = append(items, *l)
	}

	return items, total, rows.Err()
}

// ListAmendments returns the legislation directly amending the given one.
func (s *LegislationStore) ListAmendments(ctx context.Context, id int64) ([]model.Legislation, error) {
	query := `SELECT ` + legislationColumns + `
		FROM legislations WHERE parent_legislation_id = $1 ORDER BY issued_date`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list amendments of %d: %w", id, err)
	}
	defer rows.Close()

	items := []model.Legislation{}
	for rows.Next() {
		l, err := scanLegislation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan amendment: %w", err)
		}
		items = append(items, *l)
	}

	return items, rows.Err()
}

// Update persists the full record, refreshing updated_at. The parent
// reference is re-validated against cycles.
func (s *LegislationStore) Update(ctx context.Context, l *model.Legislation) error {
	if err := s.checkParent(ctx, l.ID, l.ParentLegislationID); err != nil {
		return err
	}

	query := `
		UPDATE legislations
		SET legislation_code = $2, title = $3, description = $4, content = $5,
		    document_type = $6, status = $7, issued_date = $8,
		    effective_date = $9, repeal_date = $10, issuing_authority = $11,
		    category = $12, keywords = $13, branch_id = $14, section_id = $15,
		    parent_legislation_id = $16, version_number = $17,
		    amendment_notes = $18, created_by = $19, updated_at = $20
		WHERE id = $1
	`

	now := time.Now().UTC()
	l.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		l.ID, l.LegislationCode, l.Title, l.Description, l.Content,
		l.DocumentType, l.Status, l.IssuedDate, l.EffectiveDate,
		l.RepealDate, l.IssuingAuthority, l.Category, l.Keywords,
		l.BranchID, l.SectionID, l.ParentLegislationID,
		l.VersionNumber, l.AmendmentNotes, l.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update legislation %d: %w", l.ID, mapError(err))
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

// Delete removes a legislation. References from amendments and laws are
// set to NULL by their constraints.
func (s *LegislationStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM legislations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete legislation %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
