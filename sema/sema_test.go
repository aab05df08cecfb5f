package sema_test

import (
	"testing"

	"patternscript/ast"
	"patternscript/lexer"
	"patternscript/parser"
	"patternscript/sema"
	"patternscript/value"
)

func analyze(t *testing.T, src string) ([]ast.Stmt, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return stmts, sema.Analyze(stmts)
}

func TestAnalyzeAssignInfersType(t *testing.T) {
	stmts, err := analyze(t, `x = 4: y = x * 5:`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	y := stmts[1].(*ast.Assign)
	if got := y.Expr.Type(); got != value.Int {
		t.Errorf("y.Expr.Type() = %s, want int", got)
	}
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	_, err := analyze(t, `display x:`)
	requireKind(t, err, sema.UndefinedVariable)
}

func TestAnalyzeReassignTypeMismatch(t *testing.T) {
	_, err := analyze(t, `x = 4: x = "hi":`)
	requireKind(t, err, sema.TypeMismatch)
}

func TestAnalyzeReassignSameTypeOK(t *testing.T) {
	_, err := analyze(t, `x = 4: x = 5: display x:`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
}

func TestAnalyzeInvalidOperandTypes(t *testing.T) {
	_, err := analyze(t, `display "a" < "b":`)
	requireKind(t, err, sema.InvalidOperandTypes)
}

func TestAnalyzeStarStringInt(t *testing.T) {
	stmts, err := analyze(t, `display "*" * 5:`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	d := stmts[0].(*ast.Display)
	if got := d.Expr.Type(); got != value.Str {
		t.Errorf("Type() = %s, want string", got)
	}
}

func TestAnalyzeStaticNegativeRepeat(t *testing.T) {
	_, err := analyze(t, `display "hi" * -2:`)
	requireKind(t, err, sema.NegativeRepeat)
}

func TestAnalyzeStitchAlwaysString(t *testing.T) {
	stmts, err := analyze(t, `display "ID=" ~ 1 ~ 2:`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	d := stmts[0].(*ast.Display)
	if got := d.Expr.Type(); got != value.Str {
		t.Errorf("Type() = %s, want string", got)
	}
}

func TestAnalyzeLoopBindsIntVariable(t *testing.T) {
	stmts, err := analyze(t, `loop i in 1..3 { display i: }`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	l := stmts[0].(*ast.Loop)
	d := l.Body[0].(*ast.Display)
	if got := d.Expr.Type(); got != value.Int {
		t.Errorf("loop var type = %s, want int", got)
	}
}

func TestAnalyzeLoopVarNotVisibleOutside(t *testing.T) {
	_, err := analyze(t, `loop i in 1..3 { display i: } display i:`)
	requireKind(t, err, sema.UndefinedVariable)
}

func TestAnalyzeLoopVarReassignRejected(t *testing.T) {
	_, err := analyze(t, `loop i in 1..3 { i = 9: }`)
	requireKind(t, err, sema.LoopVarReassigned)
}

func TestAnalyzeNestedLoopOuterVarReassignRejected(t *testing.T) {
	_, err := analyze(t, `loop i in 1..2 { loop j in 1..2 { i = 5: } }`)
	requireKind(t, err, sema.LoopVarReassigned)
}

func TestAnalyzeNestedLoopInnerVarReassignRejected(t *testing.T) {
	_, err := analyze(t, `loop i in 1..2 { loop j in 1..2 { j = 5: } }`)
	requireKind(t, err, sema.LoopVarReassigned)
}

func TestAnalyzeLoopBoundsMustBeInt(t *testing.T) {
	_, err := analyze(t, `loop i in "a".."b" { display i: }`)
	if err == nil {
		t.Fatal("expected error for non-int loop bounds")
	}
}

func TestAnalyzeCheckConditionMustBeInt(t *testing.T) {
	_, err := analyze(t, `check "x" { display 1: } else { display 0: }`)
	if err == nil {
		t.Fatal("expected error for non-int check condition")
	}
}

func TestAnalyzeChooseCaseTypeMismatch(t *testing.T) {
	_, err := analyze(t, `x = 1: choose x { "one": display 1: default: display 0: }`)
	requireKind(t, err, sema.CaseTypeMismatch)
}

func TestAnalyzeChooseMatchingCaseTypes(t *testing.T) {
	_, err := analyze(t, `x = 1: choose x { 1: display "one": default: display "other": }`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
}

func requireKind(t *testing.T, err error, want sema.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %s, got none", want)
	}
	serr, ok := err.(*sema.Error)
	if !ok {
		t.Fatalf("error type = %T, want *sema.Error", err)
	}
	if serr.Kind != want {
		t.Errorf("Kind = %s, want %s", serr.Kind, want)
	}
}
