// Package trace provides optional recording of dispatch activity. The engine
// itself treats completions as ephemeral; a trace store is a passive observer
// that keeps the per-causal-key completion history around for debugging and
// inspection.
package trace

import "github.com/hupe1980/conceptmesh/core"

// Store receives every completion the dispatcher records. Implementations
// must be safe for concurrent use; Append is called from concurrent dispatch
// goroutines. Append failures are logged by the engine, never fatal — tracing
// must not affect dispatch outcomes.
type Store interface {
	Append(causalKey string, c core.Completion) error
	Get(causalKey string) ([]core.Completion, error)
}
