package duckdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dvloznov/txledger/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.duckdb"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return s
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.duckdb")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Repeat calls must not error or duplicate anything.
	for i := 0; i < 3; i++ {
		if err := s.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema call %d failed: %v", i+2, err)
		}
	}

	var sequences int
	err := s.DB().QueryRowContext(ctx,
		"SELECT count(*) FROM duckdb_sequences() WHERE sequence_name = 'transaction_id_seq'").Scan(&sequences)
	if err != nil {
		t.Fatalf("counting sequences: %v", err)
	}
	if sequences != 1 {
		t.Errorf("sequences = %d, want 1", sequences)
	}

	var tables int
	err = s.DB().QueryRowContext(ctx,
		"SELECT count(*) FROM duckdb_tables() WHERE table_name = 'transactions'").Scan(&tables)
	if err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if tables != 1 {
		t.Errorf("tables = %d, want 1", tables)
	}
}

func TestInsertAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, &store.Transaction{Time: 7, V1: 1.25, Amount: 100.0})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first ID = %d, want 1", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned")
	}
	if first.Amount != 100.0 || first.Time != 7 || first.V1 != 1.25 {
		t.Errorf("stored row mismatch: %+v", first)
	}

	second, err := s.Insert(ctx, &store.Transaction{Amount: 50.0})
	if err != nil {
		t.Fatalf("second Insert failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ID = %d, want 2", second.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, &store.Transaction{Time: 7, V1: 1.25, Amount: 100.0})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	amount := 200.0
	updated, err := s.Update(ctx, created.ID, &store.TransactionPatch{Amount: &amount})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Amount != 200.0 {
		t.Errorf("Amount = %v, want 200.0", updated.Amount)
	}
	if updated.Time != 7 || updated.V1 != 1.25 {
		t.Errorf("untouched fields changed: time=%d v1=%v", updated.Time, updated.V1)
	}

	if _, err := s.Update(ctx, created.ID, &store.TransactionPatch{}); !errors.Is(err, store.ErrEmptyUpdate) {
		t.Errorf("empty update error = %v, want ErrEmptyUpdate", err)
	}
	if _, err := s.Update(ctx, 99, &store.TransactionPatch{Amount: &amount}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing row error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, &store.Transaction{Amount: 100.0})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Insert(ctx, &store.Transaction{Amount: float64(i)}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	rows, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}
