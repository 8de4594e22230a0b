package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// ArticleStore handles database operations for articles.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, law_id, article_number, title, content, notes,
	       created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID,
		&a.LawID,
		&a.ArticleNumber,
		&a.Title,
		&a.Content,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an article. A duplicate (law_id, article_number) pair
// yields ErrConflict; an unknown law yields ErrForeignKey.
func (s *ArticleStore) Create(ctx context.Context, a *model.Article) error {
	query := `
		INSERT INTO articles (law_id, article_number, title, content, notes,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		a.LawID, a.ArticleNumber, a.Title, a.Content, a.Notes, now,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create article %d of law %d: %w",
			a.ArticleNumber, a.LawID, mapError(err))
	}

	return nil
}

// GetByID retrieves an article by id, or nil when absent.
func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	a, err := scanArticle(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}

	return a, nil
}

// ListByLaw returns all articles of a law ordered by article number.
func (s *ArticleStore) ListByLaw(ctx context.Context, lawID int64) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE law_id = $1 ORDER BY article_number`

	rows, err := s.db.QueryContext(ctx, query, lawID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles for law %d: %w", lawID, err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}

	return articles, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *ArticleStore) Update(ctx context.Context, a *model.Article) error {
	query := `
		UPDATE articles
		SET law_id = $2, article_number = $3, title = $4, content = $5,
		    notes = $6, updated_at = $7
		WHERE id = $1
	`

	now := time.Now().UTC()
	a.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		a.ID, a.LawID, a.ArticleNumber, a.Title, a.Content, a.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update article %d: %w", a.ID, mapError(err))
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

// Delete removes an article. The clauses foreign key cascades, so the
// article's clauses go with it atomically.
func (s *ArticleStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
