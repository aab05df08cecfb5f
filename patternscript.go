// Package patternscript is the single entry point for the language
// pipeline: a source string in, an ordered sequence of output lines (and
// an optional give value) or a single typed diag.Diagnostic out. It
// threads the lexer, parser, semantic analyzer, IR generator, optimizer,
// and interpreter in the strict linear order the language requires.
package patternscript

import (
	"patternscript/diag"
	"patternscript/interp"
	"patternscript/ir"
	"patternscript/lexer"
	"patternscript/optimize"
	"patternscript/parser"
	"patternscript/sema"
	"patternscript/value"
)

// Result is the output of CompileAndRun: the ordered output lines, and
// the value of the give statement that ended execution, if any. On a
// Runtime diagnostic, Output still holds every line produced before the
// failing instruction; Give is nil in that case.
type Result struct {
	Output []string
	Give   *value.Value
}

// CompileAndRun runs source through every pipeline stage and returns its
// output, or the first diagnostic raised by any stage. A Runtime
// diagnostic is returned alongside the partial Result produced up to
// that point, per the language's partial-output guarantee; diagnostics
// from earlier stages carry no output since no DISPLAY can have run yet.
func CompileAndRun(source string) (Result, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return Result{}, lexDiagnostic(err)
	}

	stmts, err := parser.Parse(toks)
	if err != nil {
		return Result{}, parseDiagnostic(err)
	}

	if err := sema.Analyze(stmts); err != nil {
		return Result{}, semanticDiagnostic(err)
	}

	instrs := ir.Generate(stmts)
	instrs = optimize.Optimize(instrs)

	out, err := interp.Run(instrs)
	if err != nil {
		return Result{Output: out.Output}, runtimeDiagnostic(err)
	}

	return Result{Output: out.Output, Give: out.Give}, nil
}

func lexDiagnostic(err error) *diag.Diagnostic {
	e := err.(*lexer.Error)
	pos := e.Pos
	return &diag.Diagnostic{Stage: diag.Lex, Pos: &pos, Kind: e.Kind.String(), Message: e.Detail()}
}

func parseDiagnostic(err error) *diag.Diagnostic {
	e := err.(*parser.Error)
	pos := e.Pos
	return &diag.Diagnostic{Stage: diag.Parse, Pos: &pos, Kind: e.Kind.String(), Message: e.Detail()}
}

func semanticDiagnostic(err error) *diag.Diagnostic {
	e := err.(*sema.Error)
	pos := e.Pos
	return &diag.Diagnostic{Stage: diag.Semantic, Pos: &pos, Kind: e.Kind.String(), Message: e.Detail()}
}

func runtimeDiagnostic(err error) *diag.Diagnostic {
	if e, ok := err.(*interp.Error); ok {
		return &diag.Diagnostic{Stage: diag.Runtime, Pos: nil, Kind: e.Kind.String(), Message: e.Detail()}
	}
	return &diag.Diagnostic{Stage: diag.Runtime, Pos: nil, Kind: "Unknown", Message: err.Error()}
}
