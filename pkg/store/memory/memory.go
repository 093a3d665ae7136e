// Package memory provides an in-memory implementation of store.ResponseStore
// for testing and lightweight deployments. Records are lost when the process
// restarts. Optional LRU eviction limits memory usage.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/antiphon-dev/antiphon/pkg/store"
)

// entry holds a stored record and its eviction bookkeeping.
type entry struct {
	rec       *store.Record
	deletedAt *time.Time
	lruElem   *list.Element
}

// Store is an in-memory ResponseStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently used, back = least recently used
	maxSize int        // 0 = unlimited
}

// Ensure Store implements store.ResponseStore at compile time.
var _ store.ResponseStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the least recently used entry is evicted
// when the limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveResponse stores a record in memory.
func (s *Store) SaveResponse(_ context.Context, rec *store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.Response.ID
	if _, exists := s.entries[id]; exists {
		return store.ErrConflict
	}

	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(id)
	s.entries[id] = &entry{
		rec:     rec,
		lruElem: elem,
	}
	return nil
}

// GetResponse retrieves a record by response ID and refreshes its recency.
// Returns ErrNotFound if the response does not exist or has been deleted.
func (s *Store) GetResponse(_ context.Context, id string) (*store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.deletedAt != nil {
		return nil, store.ErrNotFound
	}
	s.lruList.MoveToFront(e.lruElem)
	return e.rec, nil
}

// GetResponseForChain retrieves a record for chain reconstruction. Deleted
// responses are included so chains remain intact, and chain reads refresh
// recency so live chains are not cut by eviction.
func (s *Store) GetResponseForChain(_ context.Context, id string) (*store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	s.lruList.MoveToFront(e.lruElem)
	return e.rec, nil
}

// DeleteResponse soft-deletes a record. The data remains available for chain
// reconstruction via GetResponseForChain.
func (s *Store) DeleteResponse(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.deletedAt != nil {
		return store.ErrNotFound
	}
	now := time.Now()
	e.deletedAt = &now
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}
	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
