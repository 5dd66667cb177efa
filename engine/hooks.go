package engine

import (
	"context"

	"github.com/hupe1980/conceptmesh/core"
)

// HookType identifies the dispatch lifecycle points where hooks run.
type HookType string

const (
	// HookBeforeRule runs after a rule's when join produced at least one
	// frame and before its where/then stages. A hook error aborts that
	// rule's firing for the current completion.
	HookBeforeRule HookType = "before_rule"

	// HookAfterRule runs after a rule's then stage completed for all frames.
	HookAfterRule HookType = "after_rule"

	// HookOnError runs when a rule evaluation or action invocation fails.
	// Hook errors at this point are ignored; the original error wins.
	HookOnError HookType = "on_error"
)

// HookContext carries the state available to a hook invocation. Fields are
// populated as far as the lifecycle point allows; Err is only set for
// HookOnError.
type HookContext struct {
	Rule       string
	Completion *core.Completion
	Frames     core.Frames
	Err        error
}

// Hook is a dispatch lifecycle extension point. Implementations must be fast
// (they run synchronously on the dispatch path) and safe for concurrent use.
type Hook interface {
	Type() HookType
	Execute(ctx context.Context, hc *HookContext) error
}

// FunctionHook wraps a plain function as a Hook.
type FunctionHook struct {
	hookType HookType
	fn       func(ctx context.Context, hc *HookContext) error
}

// NewFunctionHook creates a function-based hook for the given type.
func NewFunctionHook(hookType HookType, fn func(ctx context.Context, hc *HookContext) error) *FunctionHook {
	return &FunctionHook{hookType: hookType, fn: fn}
}

// Type returns the lifecycle point this hook handles.
func (h *FunctionHook) Type() HookType { return h.hookType }

// Execute calls the wrapped function.
func (h *FunctionHook) Execute(ctx context.Context, hc *HookContext) error {
	return h.fn(ctx, hc)
}

// HookManager routes hooks to their lifecycle points. Registration is not
// thread-safe and belongs in startup code, before dispatching begins; once
// registration is complete, execution is safe for concurrent use.
type HookManager struct {
	hooks map[HookType][]Hook
}

// NewHookManager creates an empty manager.
func NewHookManager() *HookManager {
	return &HookManager{hooks: make(map[HookType][]Hook)}
}

// Register adds a hook. Hooks of one type execute in registration order.
func (hm *HookManager) Register(h Hook) {
	hm.hooks[h.Type()] = append(hm.hooks[h.Type()], h)
}

// run executes all hooks of the given type; the first error stops the chain.
func (hm *HookManager) run(ctx context.Context, t HookType, hc *HookContext) error {
	for _, h := range hm.hooks[t] {
		if err := h.Execute(ctx, hc); err != nil {
			return err
		}
	}
	return nil
}
