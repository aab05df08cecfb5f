package parser

import (
	"fmt"
	"strings"

	"patternscript/token"
)

// ErrorKind enumerates the syntax failure modes the parser can report.
type ErrorKind int

const (
	// UnexpectedToken is raised when the lookahead token doesn't match
	// any production the parser expected at that point.
	UnexpectedToken ErrorKind = iota
	// MissingTerminator is raised when an assign/display/give statement
	// is not followed by its mandatory terminating ':'.
	MissingTerminator
	// MissingDefault is raised when a choose statement's case list ends
	// without a default arm.
	MissingDefault
	// InvalidCaseLiteral is raised when a choose case label is not a
	// NUMBER or STRING token.
	InvalidCaseLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case MissingTerminator:
		return "MissingTerminator"
	case MissingDefault:
		return "MissingDefault"
	case InvalidCaseLiteral:
		return "InvalidCaseLiteral"
	default:
		return "Unknown"
	}
}

// Error is the single error type the parser produces. Parsing stops at
// the first one encountered.
type Error struct {
	Pos      token.Position
	Kind     ErrorKind
	Expected []token.Kind
	Got      token.Token
	Msg      string
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
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Kind, strings.Join(names, " or "), e.Got.Kind)
}
