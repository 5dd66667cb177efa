package core

import (
	"context"
	"fmt"
)

// WhereFunc is the optional refinement stage of a rule. It receives the
// frames surviving the `when` join and returns the frames to fire `then`
// for. Implementations may filter, extend frames through concept queries
// (via the Querier), or construct frames wholesale — see the rule package
// for the stock combinators.
//
// The stage may perform I/O. It must preserve frame independence: evaluating
// one frame must not observe or affect another frame's evaluation.
type WhereFunc func(ctx context.Context, q Querier, frames Frames) (Frames, error)

// SyncRule is one declarative synchronization: a `when` join over completed
// actions, an optional `where` refinement, and a `then` list of actions to
// fire for every surviving frame. Rules are registered at startup and are
// immutable for the process lifetime.
type SyncRule struct {
	Name  string
	When  []ActionPattern
	Where WhereFunc
	Then  []ActionPattern
}

// Validate checks the structural requirements: a name, at least one `when`
// pattern, at least one `then` action, and fully named refs throughout.
func (r *SyncRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("sync rule requires a name")
	}
	if len(r.When) == 0 {
		return fmt.Errorf("sync rule %q requires at least one when pattern", r.Name)
	}
	if len(r.Then) == 0 {
		return fmt.Errorf("sync rule %q requires at least one then action", r.Name)
	}
	for _, p := range r.When {
		if p.Ref.Concept == "" || p.Ref.Action == "" {
			return fmt.Errorf("sync rule %q: when pattern has incomplete action ref %q", r.Name, p.Ref)
		}
	}
	for _, p := range r.Then {
		if p.Ref.Concept == "" || p.Ref.Action == "" {
			return fmt.Errorf("sync rule %q: then action has incomplete action ref %q", r.Name, p.Ref)
		}
	}
	return nil
}

// TriggerRefs returns the distinct action refs mentioned by the `when`
// clause. A completion of any of them can trigger the rule.
func (r *SyncRule) TriggerRefs() []ActionRef {
	seen := map[ActionRef]struct{}{}
	var out []ActionRef
	for _, p := range r.When {
		if _, dup := seen[p.Ref]; !dup {
			seen[p.Ref] = struct{}{}
			out = append(out, p.Ref)
		}
	}
	return out
}
