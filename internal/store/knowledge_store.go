package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// KnowledgeStore handles database operations for knowledge-bank entries.
type KnowledgeStore struct {
	db *sql.DB
}

// NewKnowledgeStore creates a new KnowledgeStore.
func NewKnowledgeStore(db *sql.DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// KnowledgeFilter narrows List results. Zero-value fields are ignored;
// supplied predicates compose with AND.
type KnowledgeFilter struct {
	Category string
	Status   string
	Author   string
	Tag      string
	// Search is a case-insensitive substring match on title and summary.
	Search string
}

const knowledgeColumns = `id, title, description, content, summary, category, subcategory,
	       tags, keywords, priority, status, branch_id,
	       related_legislation_ids, related_law_ids, author, source,
	       is_active, view_count, created_by, created_at, updated_at`

func scanKnowledge(row interface{ Scan(...any) error }) (*model.KnowledgeBase, error) {
	var kb model.KnowledgeBase
	err := row.Scan(
		&kb.ID,
		&kb.Title,
		&kb.Description,
		&kb.Content,
		&kb.Summary,
		&kb.Category,
		&kb.Subcategory,
		&kb.Tags,
		&kb.Keywords,
		&kb.Priority,
		&kb.Status,
		&kb.BranchID,
		&kb.RelatedLegislationIDs,
		&kb.RelatedLawIDs,
		&kb.Author,
		&kb.Source,
		&kb.IsActive,
		&kb.ViewCount,
		&kb.CreatedBy,
		&kb.CreatedAt,
		&kb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &kb, nil
}

// Create inserts a new entry and fills in its server-assigned id and
// timestamps. A duplicate title yields ErrConflict.
func (s *KnowledgeStore) Create(ctx context.Context, kb *model.KnowledgeBase) error {
	query := `
		INSERT INTO knowledge_base (title, description, content, summary, category,
		                            subcategory, tags, keywords, priority, status,
		                            branch_id, related_legislation_ids, related_law_ids,
		                            author, source, is_active, view_count, created_by,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING id
	`

	now := time.Now().UTC()
	kb.CreatedAt = now
	kb.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		kb.Title,
		kb.Description,
		kb.Content,
		kb.Summary,
		kb.Category,
		kb.Subcategory,
		kb.Tags,
		kb.Keywords,
		kb.Priority,
		kb.Status,
		kb.BranchID,
		kb.RelatedLegislationIDs,
		kb.RelatedLawIDs,
		kb.Author,
		kb.Source,
		kb.IsActive,
		kb.ViewCount,
		kb.CreatedBy,
		now,
	).Scan(&kb.ID)
	if err != nil {
		return fmt.Errorf("failed to create knowledge entry: %w", mapError(err))
	}

	return nil
}

// GetByID retrieves an entry by id, or nil when absent.
func (s *KnowledgeStore) GetByID(ctx context.Context, id int64) (*model.KnowledgeBase, error) {
	query := `SELECT ` + knowledgeColumns + ` FROM knowledge_base WHERE id = $1`

	kb, err := scanKnowledge(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge entry %d: %w", id, err)
	}

	return kb, nil
}

// buildFilter renders the filter into a WHERE clause and its arguments.
func buildFilter(f KnowledgeFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Author != "" {
		add("author = $%d", f.Author)
	}
	if f.Tag != "" {
		// jsonb text-element containment on the tags array.
		add("tags ? $%d", f.Tag)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR summary ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of entries in creation order along with the total
// number of rows matching the filter.
func (s *KnowledgeStore) List(
	ctx context.Context, f KnowledgeFilter, skip, limit int,
) ([]model.KnowledgeBase, int, error) {
	where, args := buildFilter(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM knowledge_base` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count knowledge entries: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+knowledgeColumns+` FROM knowledge_base%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list knowledge entries: %w", err)
	}
	defer rows.Close()

	items := []model.KnowledgeBase{}
	for rows.Next() {
		kb, err := scanKnowledge(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		items = append(items, *kb)
	}

	return items, total, rows.Err()
}

// Update persists the full record, refreshing updated_at. Retitling onto
// another record's title yields ErrConflict.
func (s *KnowledgeStore) Update(ctx context.Context, kb *model.KnowledgeBase) error {
	query := `
		UPDATE knowledge_base
		SET title = $2, description = $3, content = $4, summary = $5,
		    category = $6, subcategory = $7, tags = $8, keywords = $9,
		    priority = $10, status = $11, branch_id = $12,
		    related_legislation_ids = $13, related_law_ids = $14,
		    author = $15, source = $16, is_active = $17, created_by = $18,
		    updated_at = $19
		WHERE id = $1
	`

	now := time.Now().UTC()
	kb.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		kb.ID,
		kb.Title,
		kb.Description,
		kb.Content,
		kb.Summary,
		kb.Category,
		kb.Subcategory,
		kb.Tags,
		kb.Keywords,
		kb.Priority,
		kb.Status,
		kb.BranchID,
		kb.RelatedLegislationIDs,
		kb.RelatedLawIDs,
		kb.Author,
		kb.Source,
		kb.IsActive,
		kb.CreatedBy,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to update knowledge entry %d: %w", kb.ID, mapError(err))
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

// Delete removes an entry. Returns false when the id was already absent.
func (s *KnowledgeStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_base WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete knowledge entry %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementViewCount bumps the read counter without touching updated_at.
func (s *KnowledgeStore) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE knowledge_base SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count for %d: %w", id, err)
	}
	return nil
}
