package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// LawStore handles database operations for laws.
type LawStore struct {
	db *sql.DB
}

// NewLawStore creates a new LawStore.
func NewLawStore(db *sql.DB) *LawStore {
	return &LawStore{db: db}
}

// LawFilter narrows List results; predicates compose with AND.
type LawFilter struct {
	Status       string
	Category     string
	Jurisdiction string
	BranchID     int64
}

const lawColumns = `id, law_code, title, description, content, full_text, status,
	       issued_date, effective_date, repeal_date, issuing_authority,
	       jurisdiction, category, articles_count, keywords, branch_id,
	       section_id, related_legislation_id, version_number,
	       amendment_notes, created_by, created_at, updated_at`

func scanLaw(row interface{ Scan(...any) error }) (*model.Law, error) {
	var l model.Law
	err := row.Scan(
		&l.ID,
		&l.LawCode,
		&l.Title,
		&l.Description,
		&l.Content,
		&l.FullText,
		&l.Status,
		&l.IssuedDate,
		&l.EffectiveDate,
		&l.RepealDate,
		&l.IssuingAuthority,
		&l.Jurisdiction,
		&l.Category,
		&l.ArticlesCount,
		&l.Keywords,
		&l.BranchID,
		&l.SectionID,
		&l.RelatedLegislationID,
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

// Create inserts a law. A duplicate code yields ErrConflict.
func (s *LawStore) Create(ctx context.Context, l *model.Law) error {
	query := `
		INSERT INTO laws (law_code, title, description, content, full_text,
		                  status, issued_date, effective_date, repeal_date,
		                  issuing_authority, jurisdiction, category,
		                  articles_count, keywords, branch_id, section_id,
		                  related_legislation_id, version_number,
		                  amendment_notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21)
		RETURNING id
	`

	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		l.LawCode, l.Title, l.Description, l.Content, l.FullText,
		l.Status, l.IssuedDate, l.EffectiveDate, l.RepealDate,
		l.IssuingAuthority, l.Jurisdiction, l.Category,
		l.ArticlesCount, l.Keywords, l.BranchID, l.SectionID,
		l.RelatedLegislationID, l.VersionNumber,
		l.AmendmentNotes, l.CreatedBy, now,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to create law %s: %w", l.LawCode, mapError(err))
	}

	return nil
}

// GetByID retrieves a law by id, or nil when absent.
func (s *LawStore) GetByID(ctx context.Context, id int64) (*model.Law, error) {
	query := `SELECT ` + lawColumns + ` FROM laws WHERE id = $1`

	l, err := scanLaw(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get law %d: %w", id, err)
	}

	return l, nil
}

// GetByCode retrieves a law by its unique code, or nil when absent.
func (s *LawStore) GetByCode(ctx context.Context, code string) (*model.Law, error) {
	query := `SELECT ` + lawColumns + ` FROM laws WHERE law_code = $1`

	l, err := scanLaw(s.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get law %s: %w", code, err)
	}

	return l, nil
}

// List returns one page of laws in creation order with the total count of
// rows matching the filter.
func (s *LawStore) List(
	ctx context.Context, f LawFilter, skip, limit int,
) ([]model.Law, int, error) {
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
	if f.Jurisdiction != "" {
		args = append(args, f.Jurisdiction)
		conds = append(conds, fmt.Sprintf("jurisdiction = $%d", len(args)))
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
		`SELECT COUNT(*) FROM laws`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count laws: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+lawColumns+` FROM laws%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list laws: %w", err)
	}
	defer rows.Close()

	items := []model.Law{}
	for rows.Next() {
		l, err := scanLaw(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan law: %w", err)
		}
		items = append(items, *l)
	}

	return items, total, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *LawStore) Update(ctx context.Context, l *model.Law) error {
	query := `
		UPDATE laws
		SET law_code = $2, title = $3, description = $4, content = $5,
		    full_text = $6, status = $7, issued_date = $8,
		    effective_date = $9, repeal_date = $10, issuing_authority = $11,
		    jurisdiction = $12, category = $13, articles_count = $14,
		    keywords = $15, branch_id = $16, section_id = $17,
		    related_legislation_id = $18, version_number = $19,
		    amendment_notes = $20, created_by = $21, updated_at = $22
		WHERE id = $1
	`

	now := time.Now().UTC()
	l.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		l.ID, l.LawCode, l.Title, l.Description, l.Content, l.FullText,
		l.Status, l.IssuedDate, l.EffectiveDate, l.RepealDate,
		l.IssuingAuthority, l.Jurisdiction, l.Category, l.ArticlesCount,
		l.Keywords, l.BranchID, l.SectionID, l.RelatedLegislationID,
		l.VersionNumber, l.AmendmentNotes, l.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update law %d: %w", l.ID, mapError(err))
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

// Delete removes a law. The articles and clauses foreign keys cascade,
// so the law's articles and clauses go with it atomically.
func (s *LawStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM laws WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete law %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
