package lexer

import (
	"fmt"

	"patternscript/token"
)

// ErrorKind enumerates the lexical failure modes the lexer can report.
type ErrorKind int

const (
	// IllegalCharacter is raised for any rune not part of an identifier,
	// number, string, operator, or whitespace.
	IllegalCharacter ErrorKind = iota
	// UnterminatedString is raised when a string literal's closing quote
	// is missing before a literal newline or end of input.
	UnterminatedString
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalCharacter:
		return "IllegalCharacter"
	case UnterminatedString:
		return "UnterminatedString"
	default:
		return "Unknown"
	}
}

// Error is the single error type the lexer produces. Scanning stops at
// the first one encountered.
type Error struct {
	Pos  token.Position
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Detail(), e.Pos)
}

// Detail renders the kind and message without the source position, for
// callers that report the position through another channel (diag.Diagnostic).
func (e *Error) Detail() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}
