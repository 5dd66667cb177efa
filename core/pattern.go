package core

import "fmt"

// ActionRef identifies a concept together with one of its named operations
// (action or query). It is a small comparable value; two refs are the same
// operation exactly when they are equal.
type ActionRef struct {
	Concept string
	Action  string
}

// NewActionRef constructs an ActionRef.
func NewActionRef(concept, action string) ActionRef {
	return ActionRef{Concept: concept, Action: action}
}

// String renders the ref as "Concept.action" for logs and error messages.
func (r ActionRef) String() string {
	return fmt.Sprintf("%s.%s", r.Concept, r.Action)
}

type patternKind int

const (
	kindLiteral patternKind = iota
	kindVar
)

// PatternValue is one slot of a pattern: either a literal that must equal the
// observed value, or a free variable that binds to it (or constrains equality
// with an existing binding).
type PatternValue struct {
	kind    patternKind
	name    string
	literal any
}

// V declares a free variable slot with the given variable name.
func V(name string) PatternValue {
	return PatternValue{kind: kindVar, name: name}
}

// Lit declares a literal slot that must equal the observed value.
func Lit(value any) PatternValue {
	return PatternValue{kind: kindLiteral, literal: value}
}

// IsVar reports whether the slot is a free variable.
func (p PatternValue) IsVar() bool { return p.kind == kindVar }

// VarName returns the variable name; empty for literal slots.
func (p PatternValue) VarName() string { return p.name }

// Literal returns the literal value; nil for variable slots.
func (p PatternValue) Literal() any { return p.literal }

// String renders the slot for diagnostics: "?name" for variables, the
// literal's value otherwise.
func (p PatternValue) String() string {
	if p.kind == kindVar {
		return "?" + p.name
	}
	return fmt.Sprintf("%v", p.literal)
}

// Pattern maps field names to pattern slots. A pattern matches a record only
// if every key listed here is present in the record and unifies; keys present
// in the record but absent from the pattern are ignored. Missing keys fail
// the match, which is how success-shaped and error-shaped outputs of the same
// action route to different rules without an explicit discriminant.
type Pattern map[string]PatternValue

// Vars returns the distinct variable names mentioned by the pattern.
func (p Pattern) Vars() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, pv := range p {
		if pv.IsVar() {
			if _, dup := seen[pv.name]; !dup {
				seen[pv.name] = struct{}{}
				out = append(out, pv.name)
			}
		}
	}
	return out
}

// ActionPattern pairs an ActionRef with patterns over its input and output
// records. In a `when` clause it selects and destructures completions; in a
// `then` clause its input pattern is instantiated into a concrete invocation
// input and its output pattern may bind results for later actions of the
// same frame.
type ActionPattern struct {
	Ref    ActionRef
	Input  Pattern
	Output Pattern
}
