// Package rule provides a fluent builder for synchronization rules and the
// stock combinators for their where refinement stage (filter, query join,
// override).
package rule

import (
	"fmt"

	"github.com/hupe1980/conceptmesh/core"
)

// Builder assembles a core.SyncRule step by step. Construction errors are
// deferred to Build so call chains stay readable.
//
// Example:
//
//	r, err := rule.New("RouteLoginSuccess").
//	    When(core.NewActionRef("User", "login"),
//	        core.Pattern{"username": core.V("user")},
//	        core.Pattern{"status": core.Lit("success"), "session": core.V("session")}).
//	    Then(core.NewActionRef("Conversation", "create"),
//	        core.Pattern{"owner": core.V("user")}, nil).
//	    Build()
type Builder struct {
	r   core.SyncRule
	err error
}

// New starts a builder for a rule with the given name.
func New(name string) *Builder {
	return &Builder{r: core.SyncRule{Name: name}}
}

// When appends an action pattern to the rule's when join. Input or output
// patterns may be nil when the rule does not constrain that record.
func (b *Builder) When(ref core.ActionRef, input, output core.Pattern) *Builder {
	b.r.When = append(b.r.When, core.ActionPattern{Ref: ref, Input: input, Output: output})
	return b
}

// Where sets the refinement stage. Multiple stages are chained in order;
// each receives the previous stage's output frames.
func (b *Builder) Where(stages ...core.WhereFunc) *Builder {
	if b.r.Where != nil {
		b.err = fmt.Errorf("rule %q: where stage set twice", b.r.Name)
		return b
	}
	switch len(stages) {
	case 0:
	case 1:
		b.r.Where = stages[0]
	default:
		b.r.Where = Chain(stages...)
	}
	return b
}

// Then appends an action to fire for every surviving frame. The input
// pattern is instantiated with the frame's bindings; a non-nil output
// pattern binds the action's result for later actions of the same frame.
func (b *Builder) Then(ref core.ActionRef, input, output core.Pattern) *Builder {
	b.r.Then = append(b.r.Then, core.ActionPattern{Ref: ref, Input: input, Output: output})
	return b
}

// Build validates and returns the rule.
func (b *Builder) Build() (*core.SyncRule, error) {
	if b.err != nil {
		return nil, b.err
	}
	r := b.r
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// MustBuild is Build for startup code where an invalid rule is a programming
// error.
func (b *Builder) MustBuild() *core.SyncRule {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
