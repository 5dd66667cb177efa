package core

import (
	"time"

	"github.com/google/uuid"
)

// Completion is the immutable record of one finished concept action: which
// operation ran, the concrete input it received, the concrete output it
// returned, and the causal key scoping which other completions it may join
// with. Completions are consumed by the dispatcher and discarded once every
// matching rule has fired; the engine persists nothing.
type Completion struct {
	ID        string
	Ref       ActionRef
	Input     Record
	Output    Record
	CausalKey string

	// Depth is the cascade distance from the externally triggered action
	// (0 for the root). Maintained by the dispatcher.
	Depth int

	Timestamp time.Time
}

// NewCompletion records a finished action. Input and output are cloned so the
// completion stays immutable even if the caller reuses its maps.
func NewCompletion(ref ActionRef, input, output Record, causalKey string) Completion {
	return Completion{
		ID:        NewID(),
		Ref:       ref,
		Input:     input.Clone(),
		Output:    output.Clone(),
		CausalKey: causalKey,
		Timestamp: time.Now().UTC(),
	}
}

// NewID generates a unique identifier for completions and causal keys.
func NewID() string { return uuid.NewString() }
