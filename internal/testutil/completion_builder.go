package testutil

import (
	"github.com/hupe1980/conceptmesh/core"
)

// CompletionBuilder provides a fluent helper for constructing completions in
// tests. Example:
//
//	c := NewCompletionBuilder("User", "login").
//	    In("username", "alice").
//	    Success("session", "sess-1").
//	    Causal("req-1").
//	    Build()
//
// Chain only the parts you need; sensible defaults are applied.
type CompletionBuilder struct {
	ref       core.ActionRef
	input     core.Record
	output    core.Record
	causalKey string
	depth     int
}

// NewCompletionBuilder creates a builder for a completion of the given
// concept action.
func NewCompletionBuilder(concept, action string) *CompletionBuilder {
	return &CompletionBuilder{
		ref:    core.NewActionRef(concept, action),
		input:  core.Record{},
		output: core.Record{},
	}
}

// In sets one input field (chainable).
func (b *CompletionBuilder) In(key string, value any) *CompletionBuilder {
	b.input[key] = value
	return b
}

// Out sets one output field (chainable).
func (b *CompletionBuilder) Out(key string, value any) *CompletionBuilder {
	b.output[key] = value
	return b
}

// Success replaces the output with a success-shaped record built from the
// given alternating key/value pairs.
func (b *CompletionBuilder) Success(kv ...any) *CompletionBuilder {
	b.output = core.SuccessRecord(pairs(kv))
	return b
}

// Error replaces the output with an error-shaped record.
func (b *CompletionBuilder) Error(msg string) *CompletionBuilder {
	b.output = core.ErrorRecord(msg)
	return b
}

// Causal sets the causal key (chainable). Defaults to a generated key.
func (b *CompletionBuilder) Causal(key string) *CompletionBuilder {
	b.causalKey = key
	return b
}

// Depth sets the cascade depth (chainable).
func (b *CompletionBuilder) Depth(d int) *CompletionBuilder {
	b.depth = d
	return b
}

// Build returns the completion.
func (b *CompletionBuilder) Build() core.Completion {
	key := b.causalKey
	if key == "" {
		key = core.NewID()
	}
	c := core.NewCompletion(b.ref, b.input, b.output, key)
	c.Depth = b.depth
	return c
}

func pairs(kv []any) core.Record {
	out := core.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}
