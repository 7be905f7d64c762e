// Package storage keeps named costing sessions.
// Supports backends: sqlite, postgres, memory.
package storage

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pottery-cost/core/session"
	"pottery-cost/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// Store is the storage interface
type Store interface {
	// Save inserts the record, or replaces the one with the same ID
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*Record, error)

	// List lists records, most recently updated first
	List(ctx context.Context, filter *ListFilter) ([]*Record, error)

	// Delete removes a record
	Delete(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// Record is a stored session
type Record struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// TotalCost is the per-piece total at save time
	TotalCost decimal.Decimal `json:"total_cost"`

	Session session.Session `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFilter filters record listing
type ListFilter struct {
	// NamePrefix matches the start of the name, ignoring case
	NamePrefix string
	Limit      int
	Offset     int
}

// CompareResult is the total cost change between two saved sessions
type CompareResult struct {
	OldID        string          `json:"old_id"`
	NewID        string          `json:"new_id"`
	OldCost      decimal.Decimal `json:"old_cost"`
	NewCost      decimal.Decimal `json:"new_cost"`
	Delta        decimal.Decimal `json:"delta"`
	DeltaPercent decimal.Decimal `json:"delta_percent"`
}

var hundred = decimal.NewFromInt(100)

// Compare loads two records and reports how the total moved
func Compare(ctx context.Context, s Store, oldID, newID string) (*CompareResult, error) {
	oldRec, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newRec, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}

	delta := newRec.TotalCost.Sub(oldRec.TotalCost)
	pct := decimal.Zero
	if oldRec.TotalCost.IsPositive() {
		pct = delta.Div(oldRec.TotalCost).Mul(hundred).Round(2)
	}
	return &CompareResult{
		OldID:        oldID,
		NewID:        newID,
		OldCost:      oldRec.TotalCost,
		NewCost:      newRec.TotalCost,
		Delta:        delta,
		DeltaPercent: pct,
	}, nil
}

// stamp assigns an ID and timestamps before a write
func stamp(rec *Record, now time.Time) error {
	if strings.TrimSpace(rec.Name) == "" {
		return errors.Input("session name is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return errors.Newf(errors.TypeInput, "invalid session id %q", rec.ID)
	}
	now = now.UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return nil
}

// MemoryStore is an in-memory storage backend
type MemoryStore struct {
	records map[string]Record
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Save implements Store
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.ID]; ok && rec.CreatedAt.IsZero() {
		rec.CreatedAt = existing.CreatedAt
	}
	if err := stamp(rec, s.now()); err != nil {
		return err
	}
	s.records[rec.ID] = *rec
	return nil
}

// Get implements Store
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	return &rec, nil
}

// List implements Store
func (s *MemoryStore) List(ctx context.Context, filter *ListFilter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == nil {
		filter = &ListFilter{}
	}
	prefix := strings.ToLower(filter.NamePrefix)

	results := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(rec.Name), prefix) {
			continue
		}
		rec := rec
		results = append(results, &rec)
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].UpdatedAt.Equal(results[j].UpdatedAt) {
			return results[i].UpdatedAt.After(results[j].UpdatedAt)
		}
		return results[i].ID < results[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return []*Record{}, nil
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results, nil
}

// Delete implements Store
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return errors.NotFound("session", id)
	}
	delete(s.records, id)
	return nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}

// Open creates a store for the backend. dsn is a file path or ":memory:"
// for sqlite, a connection URL for postgres, and ignored for memory.
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(backend))) {
	case BackendSQLite, "sqlite3":
		return OpenSQL(ctx, BackendSQLite, dsn)
	case BackendPostgres, "postgresql":
		return OpenSQL(ctx, BackendPostgres, dsn)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported storage backend: %s", backend)
	}
}

// Ensure interfaces are implemented
var (
	_ Store     = (*MemoryStore)(nil)
	_ Store     = (*SQLStore)(nil)
	_ io.Closer = (*SQLStore)(nil)
)
