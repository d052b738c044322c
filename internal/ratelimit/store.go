package ratelimit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Entry is one search held against a requester's quota
type Entry struct {
	ID string
	At time.Time
}

// Store keeps the recent searches per requester.
// Implementations must be safe for concurrent use.
type Store interface {
	// Count drops every entry at or before since and returns how many remain
	Count(ctx context.Context, nationID int, since time.Time) (int, error)
	// Reserve drops every entry at or before since, then adds entry only if
	// fewer than limit remain. Pruning, counting and adding happen atomically.
	Reserve(ctx context.Context, nationID int, since time.Time, entry Entry, limit int) (bool, error)
	// Release removes a previously reserved entry
	Release(ctx context.Context, nationID int, entryID string) error
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu   sync.Mutex
	logs map[int][]Entry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs: make(map[int][]Entry),
	}
}

func (s *MemoryStore) Count(ctx context.Context, nationID int, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.prune(nationID, since)), nil
}

func (s *MemoryStore) Reserve(ctx context.Context, nationID int, since time.Time, entry Entry, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := s.prune(nationID, since)
	if len(valid) >= limit {
		return false, nil
	}
	s.logs[nationID] = append(valid, entry)
	return true, nil
}

func (s *MemoryStore) Release(ctx context.Context, nationID int, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := slices.DeleteFunc(s.logs[nationID], func(e Entry) bool { return e.ID == entryID })
	if len(logs) == 0 {
		delete(s.logs, nationID)
	} else {
		s.logs[nationID] = logs
	}
	return nil
}

// prune keeps the entries made after since. Callers hold mu.
func (s *MemoryStore) prune(nationID int, since time.Time) []Entry {
	logs := s.logs[nationID]
	valid := logs[:0]
	for _, e := range logs {
		if e.At.After(since) {
			valid = append(valid, e)
		}
	}

	if len(valid) == 0 {
		delete(s.logs, nationID)
	} else {
		s.logs[nationID] = valid
	}
	return valid
}
