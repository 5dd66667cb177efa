// Package ai exposes reply generation as an ordinary concept. The engine
// knows nothing about language models; a Responder is opaque business logic
// reached through the same Invoke contract as any other concept, with
// success and failure expressed as record shapes.
package ai

import (
	"context"
	"fmt"

	"github.com/hupe1980/conceptmesh/concept"
	"github.com/hupe1980/conceptmesh/core"
)

// Responder produces one reply for one prompt. Implementations live in the
// openai and anthropic subpackages; CannedResponder serves tests and demos.
type Responder interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// NewConcept wraps a Responder as a concept with a single "generate" action:
// input {"prompt": string}, success output {"status":"success",
// "reply": string}. Responder failures become error-shaped outputs so rules
// can route them; they are never adapter contract violations.
func NewConcept(name string, r Responder) *concept.Func {
	return concept.NewFunc(name).
		WithAction("generate", func(ctx context.Context, input core.Record) (core.Record, error) {
			prompt, ok := input["prompt"].(string)
			if !ok {
				return core.ErrorRecord(fmt.Sprintf("%s.generate: prompt must be a string", name)), nil
			}
			reply, err := r.Reply(ctx, prompt)
			if err != nil {
				return core.ErrorRecord(fmt.Sprintf("reply generation failed: %v", err)), nil
			}
			return core.SuccessRecord(core.Record{"reply": reply}), nil
		}, "prompt")
}

// CannedResponder is a lightweight in-memory Responder useful for tests and
// examples. Unknown prompts get a deterministic fallback reply.
type CannedResponder struct {
	replies map[string]string
}

// NewCannedResponder constructs an empty CannedResponder.
func NewCannedResponder() *CannedResponder {
	return &CannedResponder{replies: make(map[string]string)}
}

// AddReply registers a deterministic reply for a prompt.
func (c *CannedResponder) AddReply(prompt, reply string) { c.replies[prompt] = reply }

// Reply implements Responder.
func (c *CannedResponder) Reply(_ context.Context, prompt string) (string, error) {
	if reply, ok := c.replies[prompt]; ok {
		return reply, nil
	}
	return fmt.Sprintf("Canned reply to: %s", prompt), nil
}
