package core

import "context"

// Concept is the adapter contract the engine consumes. A concept is an
// independently implemented stateful module reached only through named
// actions and queries; its internals are opaque to the engine.
//
// Invoke executes one state-changing operation. The returned record MUST
// distinguish success from failure through its shape (differing key sets,
// e.g. SuccessRecord vs ErrorRecord), never through the Go error. A non-nil
// error is a contract violation — the underlying implementation failed in a
// way it could not express as a record — and the engine surfaces it as a
// fatal dispatch error for that branch.
//
// Query executes a read-only, side-effect-free operation and may return
// zero, one, or many rows. Queries are used exclusively inside `where`
// stages.
//
// Implementations must be safe for concurrent use: the dispatcher fans out
// frames and rules in parallel.
type Concept interface {
	Name() string
	Invoke(ctx context.Context, action string, input Record) (Record, error)
	Query(ctx context.Context, query string, input Record) ([]Record, error)
}

// Querier is the narrow read-only view of the engine handed to `where`
// stages: resolve a query ref against the concept registry and run it.
type Querier interface {
	Query(ctx context.Context, ref ActionRef, input Record) ([]Record, error)
}
