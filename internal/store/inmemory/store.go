// Package inmemory is a map-backed transaction repository.
// Data is lost on restart - for persistence, use the DuckDB-backed store.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dvloznov/txledger/internal/store"
)

// Store is an in-memory implementation of store.Repository.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*store.Transaction
}

// NewStore creates a new in-memory transaction store.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		rows:   make(map[int64]*store.Transaction),
	}
}

// EnsureSchema is a no-op; the map needs no setup and repeat calls are safe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

// Insert assigns the next sequence id and the creation timestamp, then
// stores a copy of the row.
func (s *Store) Insert(ctx context.Context, t *store.Transaction) (*store.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := *t
	row.ID = s.nextID
	row.CreatedAt = time.Now().UTC()
	s.nextID++

	s.rows[row.ID] = &row

	// Return a copy to avoid external modifications.
	result := row
	return &result, nil
}

// List returns up to limit rows in id order.
func (s *Store) List(ctx context.Context, limit int) ([]*store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*store.Transaction, 0, len(s.rows))
	for _, row := range s.rows {
		rowCopy := *row
		result = append(result, &rowCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}

// Get retrieves a row by id.
func (s *Store) Get(ctx context.Context, id int64) (*store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, exists := s.rows[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	rowCopy := *row
	return &rowCopy, nil
}

// Update applies the provided fields of patch to the row with the given id.
func (s *Store) Update(ctx context.Context, id int64, patch *store.TransactionPatch) (*store.Transaction, error) {
	if cols, _ := patch.Changes(); len(cols) == 0 {
		return nil, store.ErrEmptyUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.rows[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	patch.Apply(row)

	rowCopy := *row
	return &rowCopy, nil
}

// Delete removes a row by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[id]; !exists {
		return store.ErrNotFound
	}

	delete(s.rows, id)
	return nil
}

// Ensure Store implements the repository interface.
var _ store.Repository = (*Store)(nil)
