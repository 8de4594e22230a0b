package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// ClauseStore handles database operations for clauses.
type ClauseStore struct {
	db *sql.DB
}

// NewClauseStore creates a new ClauseStore.
func NewClauseStore(db *sql.DB) *ClauseStore {
	return &ClauseStore{db: db}
}

const clauseColumns = `id, law_id, article_id, clause_number, title, content,
	       sub_clauses, notes, created_at, updated_at`

func scanClause(row interface{ Scan(...any) error }) (*model.Clause, error) {
	var c model.Clause
	err := row.Scan(
		&c.ID,
		&c.LawID,
		&c.ArticleID,
		&c.ClauseNumber,
		&c.Title,
		&c.Content,
		&c.SubClauses,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a clause. An unknown law or article yields ErrForeignKey.
func (s *ClauseStore) Create(ctx context.Context, c *model.Clause) error {
	query := `
		INSERT INTO clauses (law_id, article_id, clause_number, title, content,
		                     sub_clauses, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		c.LawID, c.ArticleID, c.ClauseNumber, c.Title,
		c.Content, c.SubClauses, c.Notes, now,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create clause %s of law %d: %w",
			c.ClauseNumber, c.LawID, mapError(err))
	}

	return nil
}

// GetByID retrieves a clause by id, or nil when absent.
func (s *ClauseStore) GetByID(ctx context.Context, id int64) (*model.Clause, error) {
	query := `SELECT ` + clauseColumns + ` FROM clauses WHERE id = $1`

	c, err := scanClause(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clause %d: %w", id, err)
	}

	return c, nil
}

// ListByLaw returns all clauses of a law in clause-number order.
func (s *ClauseStore) ListByLaw(ctx context.Context, lawID int64) ([]model.Clause, error) {
	query := `SELECT ` + clauseColumns + ` FROM clauses WHERE law_id = $1 ORDER BY clause_number`

	rows, err := s.db.QueryContext(ctx, query, lawID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clauses for law %d: %w", lawID, err)
	}
	defer rows.Close()

	clauses := []model.Clause{}
	for rows.Next() {
		c, err := scanClause(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clause: %w", err)
		}
		clauses = append(clauses, *c)
	}

	return clauses, rows.Err()
}

// ListByArticle returns all clauses attached to an article.
func (s *ClauseStore) ListByArticle(ctx context.Context, articleID int64) ([]model.Clause, error) {
	query := `SELECT ` + clauseColumns + ` FROM clauses WHERE article_id = $1 ORDER BY clause_number`

	rows, err := s.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clauses for article %d: %w", articleID, err)
	}
	defer rows.Close()

	clauses := []model.Clause{}
	for rows.Next() {
		c, err := scanClause(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clause: %w", err)
		}
		clauses = append(clauses, *c)
	}

	return clauses, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *ClauseStore) Update(ctx context.Context, c *model.Clause) error {
	query := `
		UPDATE clauses
		SET law_id = $2, article_id = $3, clause_number = $4, title = $5,
		    content = $6, sub_clauses = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`

	now := time.Now().UTC()
	c.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		c.ID, c.LawID, c.ArticleID, c.ClauseNumber, c.Title,
		c.Content, c.SubClauses, c.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update clause %d: %w", c.ID, mapError(err))
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

// Delete removes a clause. Returns false when the id was already absent.
func (s *ClauseStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clauses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete clause %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
