// Package conceptmesh provides a high-level façade over the core Engine and
// its collaborators (concepts, rules, tracing & logging) enabling rapid
// composition of independent stateful modules through declarative
// synchronizations. Most applications interact with this package by:
//  1. Creating a ConceptMesh via New() (optionally overriding defaults)
//  2. Registering concepts and sync rules
//  3. Dispatching externally triggered actions (Dispatch)
//
// The façade delegates dispatching to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a structured logger, a
// trace store and a prometheus registerer.
package conceptmesh

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/conceptmesh/core"
	"github.com/hupe1980/conceptmesh/engine"
	"github.com/hupe1980/conceptmesh/logging"
	"github.com/hupe1980/conceptmesh/trace"
)

// Options configures the ConceptMesh instance.
type Options struct {
	// EngineConfig tunes dispatch behavior (cascade depth, concurrency).
	EngineConfig engine.Config

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Trace optionally records completions per causal key (nil disables).
	Trace trace.Store

	// Registerer optionally receives the engine's prometheus collectors.
	Registerer prometheus.Registerer
}

// ConceptMesh is the high-level façade aggregating the underlying engine.
type ConceptMesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new ConceptMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *ConceptMesh {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Logger = opts.Logger
		o.Trace = opts.Trace
		o.Registerer = opts.Registerer
	})

	return &ConceptMesh{opts: opts, engine: e}
}

// RegisterConcept adds a concept to the underlying engine.
func (m *ConceptMesh) RegisterConcept(c core.Concept) { m.engine.RegisterConcept(c) }

// RegisterRule adds a sync rule to the underlying engine after validation.
func (m *ConceptMesh) RegisterRule(r *core.SyncRule) error { return m.engine.RegisterRule(r) }

// MustRegisterRules registers rules, panicking on the first invalid one.
// Intended for startup code where an invalid rule is a programming error.
func (m *ConceptMesh) MustRegisterRules(rules ...*core.SyncRule) {
	for _, r := range rules {
		if err := m.engine.RegisterRule(r); err != nil {
			panic(err)
		}
	}
}

// Dispatch executes one externally triggered action and drains its cascade,
// returning the root completion. An empty causalKey starts a fresh causal
// scope with a generated key.
func (m *ConceptMesh) Dispatch(ctx context.Context, ref core.ActionRef, input core.Record, causalKey string) (core.Completion, error) {
	return m.engine.Dispatch(ctx, ref, input, causalKey)
}

// Query runs a read-only concept query outside any dispatch. Useful for
// inspection and tests; rules use the engine's Querier inside where stages.
func (m *ConceptMesh) Query(ctx context.Context, ref core.ActionRef, input core.Record) ([]core.Record, error) {
	return m.engine.Query(ctx, ref, input)
}

// Engine exposes the underlying engine for advanced use (hooks, registries).
func (m *ConceptMesh) Engine() *engine.Engine { return m.engine }
