package rule

import (
	"context"
	"fmt"

	"github.com/hupe1980/conceptmesh/core"
)

// Chain composes where stages left to right; each stage receives the frames
// the previous one produced.
func Chain(stages ...core.WhereFunc) core.WhereFunc {
	return func(ctx context.Context, q core.Querier, frames core.Frames) (core.Frames, error) {
		var err error
		for _, stage := range stages {
			frames, err = stage(ctx, q, frames)
			if err != nil {
				return nil, err
			}
			if frames.Empty() {
				return nil, nil
			}
		}
		return frames, nil
	}
}

// Filter drops frames failing the predicate. The predicate sees one frame at
// a time and must not depend on sibling frames.
func Filter(pred func(frame core.Frame) bool) core.WhereFunc {
	return func(_ context.Context, _ core.Querier, frames core.Frames) (core.Frames, error) {
		var out core.Frames
		for _, f := range frames {
			if pred(f) {
				out = append(out, f)
			}
		}
		return out, nil
	}
}

// FilterCtx is Filter for asynchronous predicates that need the context or a
// concept query.
func FilterCtx(pred func(ctx context.Context, q core.Querier, frame core.Frame) (bool, error)) core.WhereFunc {
	return func(ctx context.Context, q core.Querier, frames core.Frames) (core.Frames, error) {
		var out core.Frames
		for _, f := range frames {
			keep, err := pred(ctx, q, f)
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, f)
			}
		}
		return out, nil
	}
}

// Query performs the existential query join. For each input frame the bound
// variables are substituted into the input pattern, the named read-only
// query runs against its concept, and every returned row yields one output
// frame: the input frame extended with the row's output bindings. A frame
// whose query returns zero rows is dropped entirely, which is how "no active
// session" or "no paired partner" silently suppresses a rule instead of
// raising an error. Use Override to turn such silence into a routable error
// frame.
func Query(ref core.ActionRef, input, output core.Pattern) core.WhereFunc {
	return func(ctx context.Context, q core.Querier, frames core.Frames) (core.Frames, error) {
		var out core.Frames
		for _, frame := range frames {
			queryInput, err := core.Instantiate(input, frame)
			if err != nil {
				return nil, fmt.Errorf("query %s input: %w", ref, err)
			}
			rows, err := q.Query(ctx, ref, queryInput)
			if err != nil {
				return nil, err
			}
			for _, row := range rows {
				if next, ok := core.Unify(output, row, frame); ok {
					out = append(out, next)
				}
			}
		}
		return out, nil
	}
}

// Override replaces the frame set wholesale. Unlike Filter and Query, which
// refine existing frames, an override stage may manufacture ad hoc frames —
// typically an explicit error frame carrying a human-readable message when
// an upstream lookup came up empty. This is the designed escape hatch for
// encoding a failure path distinct from "rule does not fire": it turns a
// negative lookup into a positive, routable event instead of silence.
func Override(build func(ctx context.Context, q core.Querier, frames core.Frames) (core.Frames, error)) core.WhereFunc {
	return core.WhereFunc(build)
}
