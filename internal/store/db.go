// Package store implements database access for the legal content
// service. Each aggregate gets its own store over a shared *sql.DB;
// queries are hand-written SQL with positional parameters.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrConflict reports a unique-constraint violation. The database
// constraint, not an application-level existence check, serializes
// concurrent writers for the same key.
var ErrConflict = errors.New("duplicate value for unique field")

// ErrForeignKey reports a write referencing a row that does not exist.
var ErrForeignKey = errors.New("referenced row does not exist")

// ErrNotFound reports an update that matched no row. A row read just
// before the write can be deleted by a concurrent request; the zero
// rows-affected count is the authoritative signal.
var ErrNotFound = errors.New("row does not exist")

// NewDB opens a PostgreSQL connection pool and verifies connectivity.
func NewDB(dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// mapError translates storage-level integrity violations into the store
// error taxonomy so pq errors never leak to callers.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w (%s)", ErrConflict, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w (%s)", ErrForeignKey, pqErr.Constraint)
		}
	}
	return err
}
