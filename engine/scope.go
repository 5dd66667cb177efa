package engine

import (
	"sync"

	"github.com/hupe1980/conceptmesh/core"
)

// causalScope holds the completions of one logical request/transaction,
// keyed by their causal key. The `when` join resolves non-trigger patterns
// against this scope — never against global process history — which keeps
// joins bounded and deterministic.
//
// Scope rule: the join sees the most recent completion per ActionRef within
// the scope. Re-running an action inside one scope overwrites its slot.
//
// A scope is owned exclusively by the dispatch that created it; the mutex
// only coordinates that dispatch's own concurrent rule/frame goroutines.
type causalScope struct {
	key string

	mu     sync.RWMutex
	latest map[core.ActionRef]core.Completion
}

func newCausalScope(key string) *causalScope {
	return &causalScope{key: key, latest: make(map[core.ActionRef]core.Completion)}
}

// record stores c as the most recent completion for its ref. Completions
// from a different causal key are rejected silently; they belong to an
// unrelated dispatch and must never join here.
func (s *causalScope) record(c core.Completion) {
	if c.CausalKey != s.key {
		return
	}
	s.mu.Lock()
	s.latest[c.Ref] = c
	s.mu.Unlock()
}

// lookup returns the most recent completion for ref within the scope.
func (s *causalScope) lookup(ref core.ActionRef) (core.Completion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.latest[ref]
	return c, ok
}
