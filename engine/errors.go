package engine

import (
	"errors"
	"fmt"

	"github.com/hupe1980/conceptmesh/core"
)

var (
	// ErrCascadeDepthExceeded reports that a dispatch cascaded past
	// Config.MaxCascadeDepth. It is a distinct condition, never a silent
	// drop, so runaway rule cycles cannot be mistaken for completion.
	ErrCascadeDepthExceeded = errors.New("cascade propagation limit exceeded")

	// ErrUnknownConcept reports an action or query ref naming a concept that
	// was never registered.
	ErrUnknownConcept = errors.New("concept not registered")
)

// DispatchError wraps a failure that occurred while evaluating a rule or
// invoking an action during a dispatch, carrying enough context to locate
// the failing branch.
type DispatchError struct {
	Rule string
	Ref  core.ActionRef
	Err  error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("dispatch: rule %q: %s: %v", e.Rule, e.Ref, e.Err)
	}
	return fmt.Sprintf("dispatch: %s: %v", e.Ref, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *DispatchError) Unwrap() error { return e.Err }
