// Package concept provides adapters for implementing concepts: independently
// stateful modules exposed to the engine only through named actions and
// queries. The Func adapter exposes plain Go functions as a concept without
// boilerplate.
package concept

import (
	"context"
	"fmt"

	"github.com/hupe1980/conceptmesh/core"
)

// ActionFunc implements one state-changing operation. The returned record
// must be success- or error-shaped (core.SuccessRecord / core.ErrorRecord);
// a non-nil Go error is reserved for failures the function cannot express as
// a record and is surfaced by the engine as a fatal dispatch error.
type ActionFunc func(ctx context.Context, input core.Record) (core.Record, error)

// QueryFunc implements one read-only operation returning zero or more rows.
type QueryFunc func(ctx context.Context, input core.Record) ([]core.Record, error)

type actionDef struct {
	fn       ActionFunc
	required []string
}

type queryDef struct {
	fn       QueryFunc
	required []string
}

// Func is a generic adapter that exposes plain Go functions as a concept.
//
// Responsibilities:
//   - Routes named actions and queries to their registered functions
//   - Validates required input fields before execution, turning a missing
//     field into an error-shaped output so rules can route it
//   - Keeps the adapter contract honest: unknown operation names are
//     programming errors and return Go errors
//
// A Func has no internal mutable state after construction (the registered
// functions close over whatever state the concept owns) and is safe for
// concurrent use.
type Func struct {
	name    string
	actions map[string]actionDef
	queries map[string]queryDef
}

// NewFunc constructs an empty function concept with the given name. Register
// operations with WithAction and WithQuery before handing it to the engine.
//
// Example:
//
//	counter := 0
//	c := concept.NewFunc("Counter").
//	    WithAction("increment", func(ctx context.Context, in core.Record) (core.Record, error) {
//	        counter++
//	        return core.SuccessRecord(core.Record{"value": counter}), nil
//	    })
func NewFunc(name string) *Func {
	return &Func{
		name:    name,
		actions: make(map[string]actionDef),
		queries: make(map[string]queryDef),
	}
}

// WithAction registers a state-changing operation. required lists input fields
// validated before fn runs; a missing field yields an error-shaped output
// without invoking fn. Returns the receiver for chaining.
func (c *Func) WithAction(name string, fn ActionFunc, required ...string) *Func {
	c.actions[name] = actionDef{fn: fn, required: required}
	return c
}

// WithQuery registers a read-only operation. required works as in WithAction, except
// a missing field is a Go error: queries run inside where stages where an
// invalid input is rule-author error, not routable business state.
func (c *Func) WithQuery(name string, fn QueryFunc, required ...string) *Func {
	c.queries[name] = queryDef{fn: fn, required: required}
	return c
}

// Name implements core.Concept.
func (c *Func) Name() string { return c.name }

// Invoke implements core.Concept. Unknown actions are contract violations
// and return a Go error; validation failures return error-shaped records.
func (c *Func) Invoke(ctx context.Context, action string, input core.Record) (core.Record, error) {
	def, ok := c.actions[action]
	if !ok {
		return nil, fmt.Errorf("concept %s: unknown action %q", c.name, action)
	}
	if field, ok := missingField(input, def.required); !ok {
		return core.ErrorRecord(fmt.Sprintf("%s.%s: missing required field %q", c.name, action, field)), nil
	}
	return def.fn(ctx, input)
}

// Query implements core.Concept.
func (c *Func) Query(ctx context.Context, query string, input core.Record) ([]core.Record, error) {
	def, ok := c.queries[query]
	if !ok {
		return nil, fmt.Errorf("concept %s: unknown query %q", c.name, query)
	}
	if field, ok := missingField(input, def.required); !ok {
		return nil, fmt.Errorf("concept %s: query %q: missing required field %q", c.name, query, field)
	}
	return def.fn(ctx, input)
}

func missingField(input core.Record, required []string) (string, bool) {
	for _, field := range required {
		if !input.Has(field) {
			return field, false
		}
	}
	return "", true
}

var _ core.Concept = (*Func)(nil)
