// Package value defines the runtime value representation shared by the
// semantic analyzer (as a static type), the IR, and the interpreter.
package value

import "strconv"

// Type is the static type assigned to every expression by the semantic
// analyzer. PatternScript has exactly two.
type Type int

const (
	// Int is the type of integer literals, arithmetic, and comparisons.
	Int Type = iota
	// Str is the type of string literals and the stitch operator's result.
	Str
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Str:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged union holding either an Int or a Str payload. It is
// the runtime counterpart of Type: produced by literals, variable reads,
// and operator results, and nothing else.
type Value struct {
	Type Type
	Int  int64
	Str  string
}

// Int64 constructs an Int value.
func Int64(i int64) Value { return Value{Type: Int, Int: i} }

// String constructs a Str value.
func String(s string) Value { return Value{Type: Str, Str: s} }

// Text renders v using the stitch-operator coercion rule: Str values are
// returned as-is, Int values are rendered in base 10.
func (v Value) Text() string {
	if v.Type == Str {
		return v.Str
	}
	return strconv.FormatInt(v.Int, 10)
}

// Truthy reports whether v is a non-zero Int (the boolean convention's
// true is Int(1), false is Int(0)). Only
// Int values participate in conditions; a Str value is never truthy.
func (v Value) Truthy() bool {
	return v.Type == Int && v.Int != 0
}

// Equal reports structural equality: same tag and same payload. Used by
// the `choose` dispatch (IF_NEQ_CONST) to compare a scrutinee against a
// case literal.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	if v.Type == Int {
		return v.Int == o.Int
	}
	return v.Str == o.Str
}
