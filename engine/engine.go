package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/conceptmesh/core"
	"github.com/hupe1980/conceptmesh/logging"
	"github.com/hupe1980/conceptmesh/trace"
)

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for dispatch behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOpLogger if nil.
	Logger logging.Logger

	// Trace optionally records every completion per causal key. Nil
	// disables tracing.
	Trace trace.Store

	// Registerer optionally receives the engine's prometheus collectors.
	// Nil leaves the collectors unregistered (still recorded, not exposed).
	Registerer prometheus.Registerer
}

// Engine is the synchronization dispatcher. It owns the concept registry and
// the rule registry, and runs the completion worklist for every dispatch.
//
// Registration happens at startup; once dispatching begins the rule set is
// treated as immutable and is shared freely across concurrent dispatches.
// Per-request causal state lives in the dispatch that created it.
type Engine struct {
	config  config
	logger  logging.Logger
	tracing trace.Store
	metrics *metrics
	hooks   *HookManager

	mu         sync.RWMutex
	concepts   map[string]core.Concept
	rules      []*core.SyncRule
	rulesByRef map[core.ActionRef][]*core.SyncRule

	// Bounds concurrent top-level dispatches; nil means unlimited.
	sem chan struct{}
}

// config is Config after validation/normalization.
type config struct {
	maxCascadeDepth  int
	worklistCapacity int
}

// New creates an Engine with sensible defaults. All collaborators are
// optional; a zero-configuration engine dispatches with a no-op logger, no
// tracing and unregistered metrics.
//
// Example:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Logger = logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	    o.Trace = trace.NewInMemoryStore()
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg.MaxCascadeDepth <= 0 {
		cfg.MaxCascadeDepth = DefaultConfig.MaxCascadeDepth
	}
	if cfg.WorklistCapacity <= 0 {
		cfg.WorklistCapacity = DefaultConfig.WorklistCapacity
	}

	var sem chan struct{}
	if cfg.MaxConcurrentDispatches > 0 {
		sem = make(chan struct{}, cfg.MaxConcurrentDispatches)
	}

	return &Engine{
		config: config{
			maxCascadeDepth:  cfg.MaxCascadeDepth,
			worklistCapacity: cfg.WorklistCapacity,
		},
		logger:     opts.Logger,
		tracing:    opts.Trace,
		metrics:    newMetrics(opts.Registerer),
		hooks:      NewHookManager(),
		concepts:   make(map[string]core.Concept),
		rulesByRef: make(map[core.ActionRef][]*core.SyncRule),
		sem:        sem,
	}
}

// RegisterConcept makes a concept available for invocation and querying. A
// concept with the same name replaces the previous registration.
func (e *Engine) RegisterConcept(c core.Concept) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.concepts[c.Name()] = c
}

// Concept retrieves a registered concept by name.
func (e *Engine) Concept(name string) (core.Concept, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.concepts[name]
	return c, ok
}

// RegisterRule adds a sync rule to the registry after validating it. Rules
// must be registered during startup, before the first dispatch.
func (e *Engine) RegisterRule(r *core.SyncRule) error {
	if err := r.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
	for _, ref := range r.TriggerRefs() {
		e.rulesByRef[ref] = append(e.rulesByRef[ref], r)
	}
	return nil
}

// Rules returns the registered rules in registration order.
func (e *Engine) Rules() []*core.SyncRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*core.SyncRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Hooks exposes the lifecycle hook manager for startup-time registration.
func (e *Engine) Hooks() *HookManager { return e.hooks }

// matchingRules returns the rules whose when clause mentions the ref.
func (e *Engine) matchingRules(ref core.ActionRef) []*core.SyncRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rulesByRef[ref]
}

// Query implements core.Querier: it resolves the ref against the concept
// registry and runs the named read-only query. Used by where stages.
func (e *Engine) Query(ctx context.Context, ref core.ActionRef, input core.Record) ([]core.Record, error) {
	concept, ok := e.Concept(ref.Concept)
	if !ok {
		return nil, fmt.Errorf("query %s: %w", ref, ErrUnknownConcept)
	}
	e.metrics.whereQueries.WithLabelValues(ref.Concept, ref.Action).Inc()
	rows, err := concept.Query(ctx, ref.Action, input)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ref, err)
	}
	return rows, nil
}

var _ core.Querier = (*Engine)(nil)
