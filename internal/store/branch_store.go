package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openjuris/lexbank/internal/model"
)

// BranchStore handles database operations for branches.
type BranchStore struct {
	db *sql.DB
}

// NewBranchStore creates a new BranchStore.
func NewBranchStore(db *sql.DB) *BranchStore {
	return &BranchStore{db: db}
}

const branchColumns = `id, code, name, description, head_name, email, phone, address,
	       is_active, created_at, updated_at`

func scanBranch(row interface{ Scan(...any) error }) (*model.Branch, error) {
	var b model.Branch
	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.Name,
		&b.Description,
		&b.HeadName,
		&b.Email,
		&b.Phone,
		&b.Address,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a branch. A duplicate code yields ErrConflict.
func (s *BranchStore) Create(ctx context.Context, b *model.Branch) error {
	query := `
		INSERT INTO branches (code, name, description, head_name, email, phone,
		                      address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, query,
		b.Code, b.Name, b.Description, b.HeadName,
		b.Email, b.Phone, b.Address, b.IsActive, now,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", b.Code, mapError(err))
	}

	return nil
}

// GetByID retrieves a branch by id, or nil when absent.
func (s *BranchStore) GetByID(ctx context.Context, id int64) (*model.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`

	b, err := scanBranch(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch %d: %w", id, err)
	}

	return b, nil
}

// GetByCode retrieves a branch by its unique code, or nil when absent.
func (s *BranchStore) GetByCode(ctx context.Context, code string) (*model.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE code = $1`

	b, err := scanBranch(s.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch %s: %w", code, err)
	}

	return b, nil
}

// List returns one page of branches in creation order with the total count.
func (s *BranchStore) List(ctx context.Context, skip, limit int) ([]model.Branch, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM branches`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count branches: %w", err)
	}

	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := s.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	branches := []model.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, *b)
	}

	return branches, total, rows.Err()
}

// Update persists the full record, refreshing updated_at.
func (s *BranchStore) Update(ctx context.Context, b *model.Branch) error {
	query := `
		UPDATE branches
		SET code = $2, name = $3, description = $4, head_name = $5,
		    email = $6, phone = $7, address = $8, is_active = $9,
		    updated_at = $10
		WHERE id = $1
	`

	now := time.Now().UTC()
	b.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, query,
		b.ID, b.Code, b.Name, b.Description, b.HeadName,
		b.Email, b.Phone, b.Address, b.IsActive, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch %d: %w", b.ID, mapError(err))
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

// Delete removes a branch. The sections foreign key cascades, so the
// branch's sections go with it atomically; nullable references from other
// entities are set to NULL by their constraints.
func (s *BranchStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete branch %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
