package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/catering/gstbill/internal/domain/catalog"
)

// MemoryCatalogStore keeps the item catalog in process memory.
// It serves tests and single-process demos; contents are lost on restart.
type MemoryCatalogStore struct {
	mu      sync.RWMutex
	order   []string
	members map[string]struct{}
}

// NewMemoryCatalogStore creates an empty in-memory catalog
func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{members: make(map[string]struct{})}
}

// AddAll unions entries under the write lock
func (s *MemoryCatalogStore) AddAll(_ context.Context, entries []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, e := range entries {
		if _, ok := s.members[e]; ok {
			continue
		}
		s.members[e] = struct{}{}
		s.order = append(s.order, e)
		added++
	}
	return added, nil
}

// All returns every entry in insertion order
func (s *MemoryCatalogStore) All(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// MatchPrefix returns entries starting with prefix in insertion order
func (s *MemoryCatalogStore) MatchPrefix(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []string{}
	for _, e := range s.order {
		if strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Ensure MemoryCatalogStore implements catalog.Store
var _ catalog.Store = (*MemoryCatalogStore)(nil)
