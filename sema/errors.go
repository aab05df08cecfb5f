package sema

import (
	"fmt"

	"patternscript/token"
	"patternscript/value"
)

// ErrorKind enumerates the semantic failure modes the analyzer can report.
type ErrorKind int

const (
	// UndefinedVariable is raised when a VarRef names a binding not
	// visible in any enclosing scope.
	UndefinedVariable ErrorKind = iota
	// TypeMismatch is raised when an Assign's right-hand side type
	// disagrees with the name's previously bound type.
	TypeMismatch
	// InvalidOperandTypes is raised when a Binary's operand types fall
	// outside the table for its operator.
	InvalidOperandTypes
	// CaseTypeMismatch is raised when a choose case literal's type
	// disagrees with the scrutinee's type.
	CaseTypeMismatch
	// NegativeRepeat is raised when a `*` pairs a string operand with a
	// statically known negative integer literal.
	NegativeRepeat
	// LoopVarReassigned is raised when a loop body assigns to its own
	// loop variable.
	LoopVarReassigned
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidOperandTypes:
		return "InvalidOperandTypes"
	case CaseTypeMismatch:
		return "CaseTypeMismatch"
	case NegativeRepeat:
		return "NegativeRepeat"
	case LoopVarReassigned:
		return "LoopVarReassigned"
	default:
		return "Unknown"
	}
}

// Error is the single error type the semantic analyzer produces. Analysis
// stops at the first one encountered.
type Error struct {
	Pos  token.Position
	Kind ErrorKind
	Name string
	Op   string
	Lhs  value.Type
	Rhs  value.Type
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Detail(), e.Pos)
}

// Detail renders the kind and message without the source position, for
// callers that report the position through another channel (diag.Diagnostic).
func (e *Error) Detail() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("%s: %q is not defined", e.Kind, e.Name)
	case TypeMismatch:
		return fmt.Sprintf("%s: %q is %s, cannot assign %s", e.Kind, e.Name, e.Lhs, e.Rhs)
	case InvalidOperandTypes:
		return fmt.Sprintf("%s: %s %s %s is invalid", e.Kind, e.Lhs, e.Op, e.Rhs)
	case NegativeRepeat:
		return fmt.Sprintf("%s: repeat count is negative", e.Kind)
	case LoopVarReassigned:
		return fmt.Sprintf("%s: %q is the loop variable and cannot be reassigned in its own body", e.Kind, e.Name)
	default:
		return fmt.Sprintf("%s: unknown error", e.Kind)
	}
}
