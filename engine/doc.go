// Package engine implements the ConceptMesh dispatcher: the loop that turns
// completed concept actions into further actions through declarative
// synchronization rules.
//
// # Dispatch lifecycle
//
// A dispatch starts with one externally triggered action. The engine invokes
// it through the concept adapter, wraps the result in an immutable
// Completion, and processes completions from an explicit worklist:
//
//	Received -> RuleScan -> {Join, Refine, Fire}* -> Drained
//
// For every completion the engine finds the rules whose `when` clause
// mentions the completed action, joins the clause against the most recent
// completions per action ref within the same causal scope, runs the optional
// `where` refinement (which may query concepts), and fires the `then`
// actions for every surviving frame. Completions produced by `then` actions
// re-enter the worklist, so one rule's effect can be another rule's trigger.
//
// # Cascade control
//
// Cascades are bounded: each completion carries a depth, and exceeding
// Config.MaxCascadeDepth fails the dispatch with ErrCascadeDepthExceeded
// rather than looping. The worklist keeps cascade depth off the call stack.
//
// # Concurrency
//
// Rules matching one completion evaluate concurrently, as do the frames of a
// single rule's `then` stage; actions within one frame run in declared
// order. The rule registry is immutable once dispatching starts and is
// shared freely; causal state is owned by the dispatch that created it.
package engine
