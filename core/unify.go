package core

import (
	"errors"
	"fmt"
)

// ErrUnboundVariable is returned by Instantiate when a pattern references a
// variable the frame does not bind. Rule authors see it when a `then` input
// uses a variable that no `when`/`where` stage produced.
var ErrUnboundVariable = errors.New("unbound variable")

// Unify matches a pattern against a concrete record within a frame.
//
// For each key in the pattern:
//   - the key must exist in the record, otherwise the match fails (shape
//     matching);
//   - a literal slot must equal the record value;
//   - a variable bound in the frame must equal the record value;
//   - an unbound variable extends the frame with the record value.
//
// Unify is pure: it performs no I/O and never mutates its arguments. On
// success it returns the (possibly extended) frame; on failure it returns
// nil and false.
func Unify(pattern Pattern, rec Record, frame Frame) (Frame, bool) {
	out := frame
	extended := false
	for key, slot := range pattern {
		observed, present := rec[key]
		if !present {
			return nil, false
		}
		if !slot.IsVar() {
			if !valueEqual(slot.Literal(), observed) {
				return nil, false
			}
			continue
		}
		if bound, ok := out.Bound(slot.VarName()); ok {
			if !valueEqual(bound, observed) {
				return nil, false
			}
			continue
		}
		if !extended {
			out = out.Clone()
			extended = true
		}
		out[slot.VarName()] = observed
	}
	if !extended {
		// Nothing new was bound; hand back a clone anyway so callers can
		// never alias the input frame.
		out = out.Clone()
	}
	return out, true
}

// UnifyCompletion unifies an ActionPattern's input and output patterns
// against a completion's records within a frame. Both must unify for the
// completion to match.
func UnifyCompletion(p ActionPattern, c Completion, frame Frame) (Frame, bool) {
	next, ok := Unify(p.Input, c.Input, frame)
	if !ok {
		return nil, false
	}
	return Unify(p.Output, c.Output, next)
}

// Instantiate substitutes the frame's bindings into a pattern, producing a
// concrete record. Literal slots pass through unchanged; variable slots take
// their bound value. A variable without a binding yields ErrUnboundVariable.
func Instantiate(pattern Pattern, frame Frame) (Record, error) {
	out := make(Record, len(pattern))
	for key, slot := range pattern {
		if !slot.IsVar() {
			out[key] = slot.Literal()
			continue
		}
		value, ok := frame.Bound(slot.VarName())
		if !ok {
			return nil, fmt.Errorf("instantiating field %q: variable %q: %w", key, slot.VarName(), ErrUnboundVariable)
		}
		out[key] = value
	}
	return out, nil
}
