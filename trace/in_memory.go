package trace

import (
	"sync"

	"github.com/hupe1980/conceptmesh/core"
)

// InMemoryStore is a volatile Store keeping completion histories in a
// process-local map. It is safe for concurrent access and best suited for
// tests, examples and short-lived processes. Returned slices are copies so
// callers cannot mutate the stored history.
type InMemoryStore struct {
	mu      sync.RWMutex
	byScope map[string][]core.Completion
}

// NewInMemoryStore constructs an empty in-memory trace store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byScope: make(map[string][]core.Completion)}
}

// Append records a completion under its causal key in arrival order.
func (s *InMemoryStore) Append(causalKey string, c core.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byScope[causalKey] = append(s.byScope[causalKey], c)
	return nil
}

// Get returns the completions recorded for a causal key, oldest first. An
// unknown key yields an empty slice.
func (s *InMemoryStore) Get(causalKey string) ([]core.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.byScope[causalKey]
	out := make([]core.Completion, len(history))
	copy(out, history)
	return out, nil
}

// Keys returns the causal keys with recorded history, in no particular order.
func (s *InMemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.byScope))
	for k := range s.byScope {
		keys = append(keys, k)
	}
	return keys
}
