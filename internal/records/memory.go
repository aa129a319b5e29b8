package records

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by unit tests and local runs
// without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, clerkID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[clerkID][key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, clerkID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[clerkID] == nil {
		s.records[clerkID] = make(map[string]string)
	}
	s.records[clerkID][key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, clerkID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records[clerkID], key)
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, clerkID, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.records[clerkID] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context, clerkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, clerkID)
	return nil
}

func (s *MemoryStore) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []string
	for clerkID, recs := range s.records {
		if len(recs) > 0 {
			users = append(users, clerkID)
		}
	}
	sort.Strings(users)
	return users, nil
}
