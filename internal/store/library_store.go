package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// LibraryStore handles database operations for library items.
type LibraryStore struct {
	db *sql.DB
}

// NewLibraryStore creates a new LibraryStore.
func NewLibraryStore(db *sql.DB) *LibraryStore {
	return &LibraryStore{db: db}
}

// LibraryFilter narrows List results; predicates compose with AND.
type LibraryFilter struct {
	Category     string
	DocumentType string
	Tag          string
}

const libraryColumns = `id, title, description, category, document_type, file_name,
	       file_path, file_size, file_mime_type, tags, keywords, branch_id,
	       related_legislation_ids, related_law_ids, author, source,
	       publication_date, is_active, download_count, created_by,
	       created_at, updated_at`

func scanLibraryItem(row interface{ Scan(...any) error }) (*model.LibraryItem, error) {
	var li model.LibraryItem
	err := row.Scan(
		&li.ID,
		&li.Title,
		&li.Description,
		&li.Category,
		&li.DocumentType,
		&li.FileName,
		&li.FilePath,
		&li.FileSize,
		&li.FileMimeType,
		&li.Tags,
		&li.Keywords,
		&li.BranchID,
		&li.RelatedLegislationIDs,
		&li.RelatedLawIDs,
		&li.Author,
		&li.Source,
		&li.PublicationDate,
		&li.IsActive,
		&li.DownloadCount,
		&li.CreatedBy,
		&li.CreatedAt,
		&li.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &li, nil
}

// Create inserts a library item.
func (s *LibraryStore) Create(ctx context.Context, li *model.LibraryItem) error {
	query := `
		INSERT INTO library_items (title, description, category, document_type,
		                           file_name, file_path, file_size,
		                           file_mime_type, tags, keywords, branch_id,
		                           related_legislation_ids, related_law_ids,
		                           author, source, publication_date, is_active,
		                           download_count, created_by, created_at,
		                           updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)
		RETURNING id
	`

	now := time.Now().UTC()
	li.CreatedAt = now
	li.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		li.Title, li.Description, li.Category, li.DocumentType,
		li.FileName, li.FilePath, li.FileSize,
		li.FileMimeType, li.Tags, li.Keywords, li.BranchID,
		li.RelatedLegislationIDs, li.RelatedLawIDs,
		li.Author, li.Source, li.PublicationDate, li.IsActive,
		li.DownloadCount, li.CreatedBy, now,
	).Scan(&li.ID)
	if err != nil {
		return fmt.Errorf("failed to create library item: %w", mapError(err))
	}

	return nil
}

// GetByID retrieves a library item by id, or nil when absent.
func (s *LibraryStore) GetByID(ctx context.Context, id int64) (*model.LibraryItem, error) {
	query := `SELECT ` + libraryColumns + ` FROM library_items WHERE id = $1`

	li, err := scanLibraryItem(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library item %d: %w", id, err)
	}

	return li, nil
}

// List returns one page of library items in creation order with the total
// count of rows matching the filter.
func (s *LibraryStore) List(
	ctx context.Context, f LibraryFilter, skip, limit int,
) ([]model.LibraryItem, int, error) {
	var conds []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.DocumentType != "" {
		args = append(args, f.DocumentType)
		conds = append(conds, fmt.Sprintf("document_type = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf("tags ? $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM library_items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count library items: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+libraryColumns+` FROM library_items%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list library items: %w", err)
	}
	defer rows.Close()

	items := []model.LibraryItem{}
	for rows.Next() {
		li, err := scanLibraryItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan library item: %w", err)
		}
		items = append(items, *li)
	}

	return items, total, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *LibraryStore) Update(ctx context.Context, li *model.LibraryItem) error {
	query := `
		UPDATE library_items
		SET title = $2, description = $3, category = $4, document_type = $5,
		    file_name = $6, file_path = $7, file_size = $8,
		    file_mime_type = $9, tags = $10, keywords = $11, branch_id = $12,
		    related_legislation_ids = $13, related_law_ids = $14,
		    author = $15, source = $16, publication_date = $17,
		    is_active = $18, created_by = $19, updated_at = $20
		WHERE id = $1
	`

	now := time.Now().UTC()
	li.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		li.ID, li.Title, li.Description, li.Category, li.DocumentType,
		li.FileName, li.FilePath, li.FileSize, li.FileMimeType,
		li.Tags, li.Keywords, li.BranchID,
		li.RelatedLegislationIDs, li.RelatedLawIDs,
		li.Author, li.Source, li.PublicationDate,
		li.IsActive, li.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update library item %d: %w", li.ID, mapError(err))
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

// Delete removes a library item. Returns false when the id was already
// absent.
func (s *LibraryStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM library_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete library item %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementDownloadCount bumps the download counter.
func (s *LibraryStore) IncrementDownloadCount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE library_items SET download_count = download_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment download count for %d: %w", id, err)
	}
	return nil
}
