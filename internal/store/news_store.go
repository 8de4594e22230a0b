package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// NewsStore handles database operations for news items.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a new NewsStore.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

// NewsFilter narrows List results; predicates compose with AND.
type NewsFilter struct {
	Category string
	Author   string
	Tag      string
	// Published filters on the published flag when non-nil.
	Published *bool
}

const newsColumns = `id, title, content, summary, slug, category, tags, priority,
	       branch_id, related_legislation_ids, related_law_ids,
	       featured_image_url, author, source, is_published, is_featured,
	       published_date, view_count, created_by, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (*model.News, error) {
	var n model.News
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.Summary,
		&n.Slug,
		&n.Category,
		&n.Tags,
		&n.Priority,
		&n.BranchID,
		&n.RelatedLegislationIDs,
		&n.RelatedLawIDs,
		&n.FeaturedImageURL,
		&n.Author,
		&n.Source,
		&n.IsPublished,
		&n.IsFeatured,
		&n.PublishedDate,
		&n.ViewCount,
		&n.CreatedBy,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a news item. A duplicate slug yields ErrConflict.
func (s *NewsStore) Create(ctx context.Context, n *model.News) error {
	query := `
		INSERT INTO news (title, content, summary, slug, category, tags,
		                  priority, branch_id, related_legislation_ids,
		                  related_law_ids, featured_image_url, author, source,
		                  is_published, is_featured, published_date,
		                  view_count, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING id
	`

	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		n.Title, n.Content, n.Summary, n.Slug, n.Category, n.Tags,
		n.Priority, n.BranchID, n.RelatedLegislationIDs,
		n.RelatedLawIDs, n.FeaturedImageURL, n.Author, n.Source,
		n.IsPublished, n.IsFeatured, n.PublishedDate,
		n.ViewCount, n.CreatedBy, now,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to create news item: %w", mapError(err))
	}

	return nil
}

// GetByID retrieves a news item by id, or nil when absent.
func (s *NewsStore) GetByID(ctx context.Context, id int64) (*model.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`

	n, err := scanNews(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news item %d: %w", id, err)
	}

	return n, nil
}

// GetBySlug retrieves a news item by its unique slug, or nil when absent.
func (s *NewsStore) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE slug = $1`

	n, err := scanNews(s.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news item %s: %w", slug, err)
	}

	return n, nil
}

// List returns one page of news items in creation order with the total
// count of rows matching the filter.
func (s *NewsStore) List(
	ctx context.Context, f NewsFilter, skip, limit int,
) ([]model.News, int, error) {
	var conds []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf("tags ? $%d", len(args)))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		conds = append(conds, fmt.Sprintf("is_published = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count news items: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+newsColumns+` FROM news%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news items: %w", err)
	}
	defer rows.Close()

	items := []model.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, *n)
	}

	return items, total, rows.Err()
}

// Update persists the full record, refreshing updated_at. Reslugging
// onto another item's slug yields ErrConflict.
func (s *NewsStore) Update(ctx context.Context, n *model.News) error {
	query := `
		UPDATE news
		SET title = $2, content = $3, summary = $4, slug = $5, category = $6,
		    tags = $7, priority = $8, branch_id = $9,
		    related_legislation_ids = $10, related_law_ids = $11,
		    featured_image_url = $12, author = $13, source = $14,
		    is_published = $15, is_featured = $16, published_date = $17,
		    created_by = $18, updated_at = $19
		WHERE id = $1
	`

	now := time.Now().UTC()
	n.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, n.Summary, n.Slug, n.Category,
		n.Tags, n.Priority, n.BranchID,
		n.RelatedLegislationIDs, n.RelatedLawIDs,
		n.FeaturedImageURL, n.Author, n.Source,
		n.IsPublished, n.IsFeatured, n.PublishedDate,
		n.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update news item %d: %w", n.ID, mapError(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a news item. Returns false when the id was already absent.
func (s *NewsStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete news item %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementViewCount bumps the read counter without touching updated_at.
func (s *NewsStore) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE news SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count for %d: %w", id, err)
	}
	return nil
}
