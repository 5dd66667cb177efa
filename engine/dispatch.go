package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/conceptmesh/core"
)

// Dispatch executes one externally triggered concept action and drains the
// resulting cascade: the completion is matched against the rule registry,
// surviving frames fire their `then` actions, and the completions those
// produce re-enter the loop until the worklist is empty.
//
// causalKey scopes which completions may join together; pass the key of the
// enclosing request, or "" to start a fresh scope with a generated key.
//
// The returned completion is the root action's. A non-nil error means a
// structural failure somewhere in the cascade: an unknown concept, an
// adapter contract violation (the concept returned a Go error instead of an
// error-shaped record), an unbound `then` variable, or the cascade depth
// limit. Frame-local join and refinement misses are not errors; those
// frames are simply dropped.
func (e *Engine) Dispatch(ctx context.Context, ref core.ActionRef, input core.Record, causalKey string) (core.Completion, error) {
	if e.sem != nil {
		select {
		case e.sem <- struct{}{}:
			defer func() { <-e.sem }()
		case <-ctx.Done():
			return core.Completion{}, ctx.Err()
		}
	}

	if causalKey == "" {
		causalKey = core.NewID()
	}

	d := &dispatch{
		engine: e,
		scope:  newCausalScope(causalKey),
		queue:  make([]core.Completion, 0, e.config.worklistCapacity),
	}

	start := time.Now()
	root, err := d.invoke(ctx, ref, input, 0)
	if err == nil {
		err = d.drain(ctx)
	}

	e.metrics.cascadeDepth.Observe(float64(d.maxDepth))
	if err != nil {
		e.metrics.dispatchErrors.Inc()
		e.logger.Error("dispatch failed", "action", ref.String(), "causal_key", causalKey, "error", err)
	} else {
		e.logger.Debug("dispatch drained", "action", ref.String(), "causal_key", causalKey, "duration", time.Since(start), "max_depth", d.maxDepth)
	}
	return root, err
}

// dispatch is the per-request state machine: the worklist of completions
// still to be matched, the causal scope they join against, and the deepest
// cascade level reached. It is owned by a single Dispatch call; the mutex
// coordinates that call's own rule/frame goroutines.
type dispatch struct {
	engine *Engine
	scope  *causalScope

	mu       sync.Mutex
	queue    []core.Completion
	maxDepth int
}

// invoke runs one concept action through the adapter, records the completion
// and enqueues it for rule matching. depth is the cascade distance from the
// root action; exceeding the configured limit fails the dispatch.
func (d *dispatch) invoke(ctx context.Context, ref core.ActionRef, input core.Record, depth int) (core.Completion, error) {
	if depth > d.engine.config.maxCascadeDepth {
		return core.Completion{}, &DispatchError{Ref: ref, Err: ErrCascadeDepthExceeded}
	}

	concept, ok := d.engine.Concept(ref.Concept)
	if !ok {
		return core.Completion{}, &DispatchError{Ref: ref, Err: ErrUnknownConcept}
	}

	output, err := concept.Invoke(ctx, ref.Action, input)
	if err != nil {
		// Contract violation: failures must surface as error-shaped records.
		return core.Completion{}, &DispatchError{Ref: ref, Err: fmt.Errorf("adapter returned error instead of error-shaped record: %w", err)}
	}

	completion := core.NewCompletion(ref, input, output, d.scope.key)
	completion.Depth = depth

	d.engine.metrics.completions.WithLabelValues(ref.Concept, ref.Action).Inc()
	if d.engine.tracing != nil {
		if terr := d.engine.tracing.Append(d.scope.key, completion); terr != nil {
			d.engine.logger.Warn("trace append failed", "causal_key", d.scope.key, "error", terr)
		}
	}

	d.mu.Lock()
	d.queue = append(d.queue, completion)
	if depth > d.maxDepth {
		d.maxDepth = depth
	}
	d.mu.Unlock()

	return completion, nil
}

// drain processes the worklist until no completion is pending. Errors from
// independent branches are collected rather than aborting siblings; the
// joined error is surfaced to the original caller.
func (d *dispatch) drain(ctx context.Context) error {
	var errs []error
	for {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			break
		}
		completion := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		if err := d.process(ctx, completion); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// process records the completion in the causal scope and evaluates every
// rule whose when clause mentions its ref. Rules fan out concurrently; only
// "all matching rules eventually fire" is guaranteed, not an order.
func (d *dispatch) process(ctx context.Context, completion core.Completion) error {
	d.scope.record(completion)

	rules := d.engine.matchingRules(completion.Ref)
	if len(rules) == 0 {
		return nil
	}

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs []error
	)
	for _, rule := range rules {
		wg.Add(1)
		go func(r *core.SyncRule) {
			defer wg.Done()
			if err := d.evalRule(ctx, r, completion); err != nil {
				d.engine.hooks.runOnError(ctx, r.Name, &completion, err)
				emu.Lock()
				errs = append(errs, err)
				emu.Unlock()
			}
		}(rule)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// evalRule runs one rule against a triggering completion: when join, where
// refinement, then dispatch.
func (d *dispatch) evalRule(ctx context.Context, rule *core.SyncRule, trigger core.Completion) error {
	frames := d.joinWhen(rule, trigger)
	if frames.Empty() {
		return nil
	}

	hc := &HookContext{Rule: rule.Name, Completion: &trigger, Frames: frames}
	if err := d.engine.hooks.run(ctx, HookBeforeRule, hc); err != nil {
		return &DispatchError{Rule: rule.Name, Ref: trigger.Ref, Err: fmt.Errorf("before_rule hook: %w", err)}
	}

	if rule.Where != nil {
		refined, err := rule.Where(ctx, d.engine, frames)
		if err != nil {
			return &DispatchError{Rule: rule.Name, Ref: trigger.Ref, Err: fmt.Errorf("where stage: %w", err)}
		}
		frames = refined
	}
	if frames.Empty() {
		return nil
	}

	start := time.Now()
	if err := d.fireThen(ctx, rule, frames, trigger.Depth+1); err != nil {
		return err
	}

	d.engine.metrics.ruleFires.WithLabelValues(rule.Name).Inc()
	d.engine.logger.Debug("rule fired", "rule", rule.Name, "frames", len(frames), "causal_key", d.scope.key, "duration", time.Since(start))

	hc.Frames = frames
	if err := d.engine.hooks.run(ctx, HookAfterRule, hc); err != nil {
		return &DispatchError{Rule: rule.Name, Ref: trigger.Ref, Err: fmt.Errorf("after_rule hook: %w", err)}
	}
	return nil
}

// joinWhen evaluates the rule's when clause against the causal scope. The
// triggering completion unifies against the pattern(s) naming its ref; every
// other pattern resolves against the most recent completion for its ref
// within the scope. The running frame set is intersected pattern by pattern;
// frames that no completion satisfies are dropped. Pure; no I/O.
func (d *dispatch) joinWhen(rule *core.SyncRule, trigger core.Completion) core.Frames {
	frames := core.Single(core.NewFrame())
	for _, pattern := range rule.When {
		completion, ok := trigger, true
		if pattern.Ref != trigger.Ref {
			completion, ok = d.scope.lookup(pattern.Ref)
		}
		if !ok {
			return nil
		}
		var survivors core.Frames
		for _, frame := range frames {
			if next, matched := core.UnifyCompletion(pattern, completion, frame); matched {
				survivors = append(survivors, next)
			}
		}
		if survivors.Empty() {
			return nil
		}
		frames = survivors
	}
	return frames
}

// fireThen dispatches the rule's then actions for every surviving frame.
// Frames fan out concurrently; actions within one frame run in declared
// order so later entries may consume outputs bound by earlier ones.
func (d *dispatch) fireThen(ctx context.Context, rule *core.SyncRule, frames core.Frames, depth int) error {
	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs []error
	)
	for _, frame := range frames {
		wg.Add(1)
		go func(f core.Frame) {
			defer wg.Done()
			if err := d.fireFrame(ctx, rule, f, depth); err != nil {
				emu.Lock()
				errs = append(errs, err)
				emu.Unlock()
			}
		}(frame)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (d *dispatch) fireFrame(ctx context.Context, rule *core.SyncRule, frame core.Frame, depth int) error {
	for _, pattern := range rule.Then {
		input, err := core.Instantiate(pattern.Input, frame)
		if err != nil {
			return &DispatchError{Rule: rule.Name, Ref: pattern.Ref, Err: err}
		}

		completion, err := d.invoke(ctx, pattern.Ref, input, depth)
		if err != nil {
			var de *DispatchError
			if errors.As(err, &de) && de.Rule == "" {
				de.Rule = rule.Name
			}
			return err
		}

		if len(pattern.Output) == 0 {
			continue
		}
		next, matched := core.Unify(pattern.Output, completion.Output, frame)
		if !matched {
			// The action completed with a shape the rule did not bind (for
			// example an error-shaped output where success fields were
			// expected). Remaining actions of this frame are skipped;
			// error routing happens via rules matching the error shape.
			d.engine.logger.Debug("then output did not unify, frame stopped", "rule", rule.Name, "action", pattern.Ref.String())
			return nil
		}
		frame = next
	}
	return nil
}

// runOnError executes on_error hooks, swallowing their own failures: the
// original dispatch error always wins.
func (hm *HookManager) runOnError(ctx context.Context, rule string, completion *core.Completion, err error) {
	_ = hm.run(ctx, HookOnError, &HookContext{Rule: rule, Completion: completion, Err: err})
}
