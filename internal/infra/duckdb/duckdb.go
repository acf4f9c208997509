// Package duckdb is the record store gateway: a transaction repository
// backed by an embedded DuckDB database file.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/dvloznov/txledger/internal/store"
)

// Store implements store.Repository on top of a DuckDB file.
type Store struct {
	db *sql.DB
}

// Open opens the DuckDB database at path, creating the file and its parent
// directory if absent so first-run deployments never fail on a missing path.
// The caller owns the handle and must Close it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("Open: creating database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("Open: opening duckdb database at %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need raw queries, such
// as the batch ingestor's read_parquet scans.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the identity sequence and the transactions table.
// Both statements are create-if-absent, so repeat calls are no-ops.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, store.CreateSequenceQuery); err != nil {
		return fmt.Errorf("EnsureSchema: creating sequence: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, store.BaseTableQuery); err != nil {
		return fmt.Errorf("EnsureSchema: creating table: %w", err)
	}
	return nil
}

// selectColumns is the full column list, system columns included.
var selectColumns = store.IDColumn + ", " +
	strings.Join(store.TransactionDefinition.ExpectedColumns, ", ") +
	", " + store.CreatedAtColumn

// Insert writes one row; the store assigns id and created_at. The stored
// row is read back and returned.
func (s *Store) Insert(ctx context.Context, t *store.Transaction) (*store.Transaction, error) {
	cols := store.TransactionDefinition.ExpectedColumns
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf(
		"INSERT INTO transactions (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "), placeholders,
	)

	var id int64
	if err := s.db.QueryRowContext(ctx, query, t.InsertValues()...).Scan(&id); err != nil {
		return nil, fmt.Errorf("Insert: inserting row: %w", err)
	}

	return s.Get(ctx, id)
}

// List returns up to limit rows.
func (s *Store) List(ctx context.Context, limit int) ([]*store.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM transactions LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("List: querying rows: %w", err)
	}
	defer rows.Close()

	var result []*store.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scanning row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: iterating rows: %w", err)
	}

	return result, nil
}

// Get returns the row with the given id, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*store.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM transactions WHERE id = ?", id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: scanning row: %w", err)
	}

	return t, nil
}

// Update applies the provided fields of patch to the row with the given id
// and returns the updated row. Returns store.ErrEmptyUpdate when the patch
// carries no fields and store.ErrNotFound when the row does not exist.
func (s *Store) Update(ctx context.Context, id int64, patch *store.TransactionPatch) (*store.Transaction, error) {
	cols, vals := patch.Changes()
	if len(cols) == 0 {
		return nil, store.ErrEmptyUpdate
	}

	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = c + " = ?"
	}
	vals = append(vals, id)

	query := "UPDATE transactions SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, vals...); err != nil {
		return nil, fmt.Errorf("Update: updating row: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes the row with the given id, or returns store.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("Delete: deleting row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: reading affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Count returns the total number of rows in the transactions table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: counting rows: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(sc scanner) (*store.Transaction, error) {
	var t store.Transaction
	err := sc.Scan(
		&t.ID,
		&t.Time,
		&t.V1,
		&t.V2,
		&t.V3,
		&t.V4,
		&t.V5,
		&t.V6,
		&t.V7,
		&t.V8,
		&t.V9,
		&t.V10,
		&t.V11,
		&t.V12,
		&t.V13,
		&t.V14,
		&t.V15,
		&t.V16,
		&t.V17,
		&t.V18,
		&t.V19,
		&t.V20,
		&t.V21,
		&t.V22,
		&t.V23,
		&t.V24,
		&t.V25,
		&t.V26,
		&t.V27,
		&t.V28,
		&t.Amount,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Ensure Store implements the repository interface.
var _ store.Repository = (*Store)(nil)
