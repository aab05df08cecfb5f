// Package sema implements PatternScript's static semantic analysis: a
// single AST walk that assigns a value.Type to every expression node and
// maintains a scoped symbol table. It is the only stage that mutates the
// AST it is given; every other stage treats its input as read-only.
package sema

import (
	"patternscript/ast"
	"patternscript/token"
	"patternscript/value"
)

// scope maps a bound name to its resolved type.
type scope map[string]value.Type

// Analyzer walks a statement list once, front to back, threading a stack
// of scopes. The outermost scope is the program scope; each Loop body
// pushes and pops its own.
type Analyzer struct {
	scopes   []scope
	loopVars []string // loopVars[i] is the loop variable owning scopes[i], or "" for the program scope
}

// Analyze type-checks stmts, mutating every expression node's Type in
// place, and returns the first Error encountered, if any.
func Analyze(stmts []ast.Stmt) error {
	a := &Analyzer{}
	a.pushScope("")
	defer a.popScope()
	return a.analyzeStmts(stmts)
}

func (a *Analyzer) pushScope(loopVar string) {
	a.scopes = append(a.scopes, scope{})
	a.loopVars = append(a.loopVars, loopVar)
}

func (a *Analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
	a.loopVars = a.loopVars[:len(a.loopVars)-1]
}

// lookup searches scopes innermost-to-outermost and reports the bound
// type and whether it was found.
func (a *Analyzer) lookup(name string) (value.Type, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if t, ok := a.scopes[i][name]; ok {
			return t, true
		}
	}
	return 0, false
}

func (a *Analyzer) define(name string, t value.Type) {
	a.scopes[len(a.scopes)-1][name] = t
}

// enclosingLoopVar reports whether name is the induction variable of the
// current loop body or of any loop body it is nested inside, so a
// reassignment is rejected no matter how deep the nesting.
func (a *Analyzer) enclosingLoopVar(name string) bool {
	for _, v := range a.loopVars {
		if v == name {
			return true
		}
	}
	return false
}

func (a *Analyzer) analyzeStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := a.analyzeStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Assign:
		return a.analyzeAssign(n)
	case *ast.Display:
		_, err := a.analyzeExpr(n.Expr)
		return err
	case *ast.Give:
		_, err := a.analyzeExpr(n.Expr)
		return err
	case *ast.Loop:
		return a.analyzeLoop(n)
	case *ast.Check:
		return a.analyzeCheck(n)
	case *ast.Choose:
		return a.analyzeChoose(n)
	default:
		return &Error{Pos: s.Pos(), Kind: UndefinedVariable, Msg: "unknown statement node"}
	}
}

func (a *Analyzer) analyzeAssign(n *ast.Assign) error {
	if a.enclosingLoopVar(n.Name) {
		return &Error{Pos: n.Pos(), Kind: LoopVarReassigned, Name: n.Name}
	}
	rt, err := a.analyzeExpr(n.Expr)
	if err != nil {
		return err
	}
	if bound, ok := a.lookup(n.Name); ok {
		if bound != rt {
			return &Error{Pos: n.Pos(), Kind: TypeMismatch, Name: n.Name, Lhs: bound, Rhs: rt}
		}
		return nil
	}
	a.define(n.Name, rt)
	return nil
}

func (a *Analyzer) analyzeLoop(n *ast.Loop) error {
	st, err := a.analyzeExpr(n.Start)
	if err != nil {
		return err
	}
	if st != value.Int {
		return &Error{Pos: n.Start.Pos(), Kind: TypeMismatch, Msg: "loop start must be int, got " + st.String()}
	}
	et, err := a.analyzeExpr(n.End)
	if err != nil {
		return err
	}
	if et != value.Int {
		return &Error{Pos: n.End.Pos(), Kind: TypeMismatch, Msg: "loop end must be int, got " + et.String()}
	}
	a.pushScope(n.Var)
	a.define(n.Var, value.Int)
	err = a.analyzeStmts(n.Body)
	a.popScope()
	return err
}

func (a *Analyzer) analyzeCheck(n *ast.Check) error {
	ct, err := a.analyzeExpr(n.Cond)
	if err != nil {
		return err
	}
	if ct != value.Int {
		return &Error{Pos: n.Cond.Pos(), Kind: TypeMismatch, Msg: "check condition must be int, got " + ct.String()}
	}
	if err := a.analyzeStmts(n.Then); err != nil {
		return err
	}
	return a.analyzeStmts(n.Else)
}

func (a *Analyzer) analyzeChoose(n *ast.Choose) error {
	st, err := a.analyzeExpr(n.Scrutinee)
	if err != nil {
		return err
	}
	for _, c := range n.Cases {
		lt, err := a.analyzeExpr(c.Lit)
		if err != nil {
			return err
		}
		if lt != st {
			return &Error{Pos: c.Pos(), Kind: CaseTypeMismatch, Msg: "case label is " + lt.String() + ", scrutinee is " + st.String()}
		}
		if err := a.analyzeStmts(c.Body); err != nil {
			return err
		}
	}
	return a.analyzeStmts(n.Default)
}

func (a *Analyzer) analyzeExpr(e ast.Expr) (value.Type, error) {
	switch n := e.(type) {
	case *ast.NumLit:
		n.SetType(value.Int)
		return value.Int, nil
	case *ast.StrLit:
		n.SetType(value.Str)
		return value.Str, nil
	case *ast.VarRef:
		t, ok := a.lookup(n.Name)
		if !ok {
			return 0, &Error{Pos: n.Pos(), Kind: UndefinedVariable, Name: n.Name}
		}
		n.SetType(t)
		return t, nil
	case *ast.Binary:
		return a.analyzeBinary(n)
	default:
		return 0, &Error{Pos: e.Pos(), Kind: UndefinedVariable, Msg: "unknown expression node"}
	}
}

func (a *Analyzer) analyzeBinary(n *ast.Binary) (value.Type, error) {
	lt, err := a.analyzeExpr(n.Left)
	if err != nil {
		return 0, err
	}
	rt, err := a.analyzeExpr(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case token.PLUS, token.MINUS, token.PERCENT:
		if lt != value.Int || rt != value.Int {
			return 0, invalidOperands(n, lt, rt)
		}
		n.SetType(value.Int)
		return value.Int, nil

	case token.STAR:
		if lt == value.Int && rt == value.Int {
			n.SetType(value.Int)
			return value.Int, nil
		}
		if (lt == value.Str && rt == value.Int) || (lt == value.Int && rt == value.Str) {
			if lit, negative := negativeIntSide(n.Left, n.Right); negative {
				return 0, &Error{Pos: lit.Pos(), Kind: NegativeRepeat}
			}
			n.SetType(value.Str)
			return value.Str, nil
		}
		return 0, invalidOperands(n, lt, rt)

	case token.TILDE:
		n.SetType(value.Str)
		return value.Str, nil

	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		if lt != value.Int || rt != value.Int {
			return 0, invalidOperands(n, lt, rt)
		}
		n.SetType(value.Int)
		return value.Int, nil

	default:
		return 0, invalidOperands(n, lt, rt)
	}
}

func invalidOperands(n *ast.Binary, lt, rt value.Type) error {
	return &Error{Pos: n.Pos(), Kind: InvalidOperandTypes, Op: n.Op.String(), Lhs: lt, Rhs: rt}
}

// negativeIntSide reports whether one of a STAR expression's two operands
// is a NumLit with a statically known negative value, returning that
// literal so its position can be reported.
func negativeIntSide(left, right ast.Expr) (ast.Expr, bool) {
	if n, ok := left.(*ast.NumLit); ok && n.Value < 0 {
		return left, true
	}
	if n, ok := right.(*ast.NumLit); ok && n.Value < 0 {
		return right, true
	}
	return nil, false
}
