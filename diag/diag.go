// Package diag defines the single diagnostic type every PatternScript
// pipeline stage's error is converted to at the outermost entry point, so
// a caller never needs to know which stage failed to report it uniformly.
package diag

import (
	"fmt"

	"patternscript/token"
)

// Stage identifies which pipeline stage produced a Diagnostic.
type Stage int

const (
	Lex Stage = iota
	Parse
	Semantic
	Runtime
)

func (s Stage) String() string {
	switch s {
	case Lex:
		return "Lex"
	case Parse:
		return "Parse"
	case Semantic:
		return "Semantic"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Diagnostic is the single error type patternscript.CompileAndRun returns.
// Pos is nil for every Runtime diagnostic (TAC instructions carry no
// source position) and set for every other stage.
type Diagnostic struct {
	Stage   Stage
	Pos     *token.Position
	Kind    string
	Message string
}

// Error formats the diagnostic the way the CLI surfaces it on stderr:
// "<stage> error at <line>:<col>: <message>", or without the position
// clause when none is available (a Runtime diagnostic).
func (d *Diagnostic) Error() string {
	if d.Pos == nil {
		return fmt.Sprintf("%s error: %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("%s error at %s: %s", d.Stage, *d.Pos, d.Message)
}
