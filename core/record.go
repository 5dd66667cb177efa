package core

import "reflect"

// Record is the concrete payload exchanged with concepts: the input handed to
// an action or query and the output it produces. Keys are field names, values
// are arbitrary JSON-compatible Go values.
//
// Concepts signal success or failure through the shape of the output record
// (differing key sets), never through Go errors. See StatusField.
type Record map[string]any

// Shape field conventions used by the shipped concepts and rule sets. The
// engine itself attaches no meaning to these values; routing happens purely
// through pattern unification on key sets.
const (
	// StatusField carries the outcome tag of an action output.
	StatusField = "status"
	// ErrorField carries a human-readable message in error-shaped outputs.
	ErrorField = "error"

	// StatusSuccess tags a success-shaped output.
	StatusSuccess = "success"
	// StatusError tags an error-shaped output.
	StatusError = "error"
)

// SuccessRecord builds a success-shaped output: {"status":"success", fields...}.
func SuccessRecord(fields Record) Record {
	out := Record{StatusField: StatusSuccess}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// ErrorRecord builds an error-shaped output: {"status":"error", "error":msg}.
func ErrorRecord(msg string) Record {
	return Record{StatusField: StatusError, ErrorField: msg}
}

// Clone returns a shallow copy of the record. Values are shared; concepts are
// expected to treat received records as read-only.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether the record contains the given key.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// valueEqual is the equality used for literal matching and bound-variable
// constraints. Numeric values compare by magnitude across int/float kinds so
// that records decoded from JSON (float64) still unify against Go int
// literals in rule definitions. Everything else is deep equality.
func valueEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
