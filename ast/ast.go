// Package ast defines the abstract syntax tree produced by the parser and
// annotated in place by the semantic analyzer.
package ast

import (
	"patternscript/token"
	"patternscript/value"
)

// Node is implemented by every AST node; it exposes the source position
// recorded at parse time.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by every expression node. Type is zero-valued
// (value.Int) until the semantic analyzer resolves it; SetType is called
// exactly once per node during that walk.
type Expr interface {
	Node
	Type() value.Type
	SetType(value.Type)
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

type exprBase struct {
	PosVal token.Position
	Typ    value.Type
}

func (e *exprBase) Pos() token.Position    { return e.PosVal }
func (e *exprBase) Type() value.Type       { return e.Typ }
func (e *exprBase) SetType(t value.Type)   { e.Typ = t }
func (*exprBase) exprNode()                {}

// NumLit is an integer literal. Normally produced from a NUMBER token; the
// parser also folds a MINUS immediately followed by NUMBER into a negative
// NumLit.
type NumLit struct {
	exprBase
	Value int64
}

// NewNumLit constructs a NumLit at pos.
func NewNumLit(pos token.Position, v int64) *NumLit {
	return &NumLit{exprBase: exprBase{PosVal: pos}, Value: v}
}

// StrLit is a string literal with quotes and any escapes already resolved
// by the lexer.
type StrLit struct {
	exprBase
	Value string
}

// NewStrLit constructs a StrLit at pos.
func NewStrLit(pos token.Position, v string) *StrLit {
	return &StrLit{exprBase: exprBase{PosVal: pos}, Value: v}
}

// VarRef is a reference to a variable by name.
type VarRef struct {
	exprBase
	Name string
}

// NewVarRef constructs a VarRef at pos.
func NewVarRef(pos token.Position, name string) *VarRef {
	return &VarRef{exprBase: exprBase{PosVal: pos}, Name: name}
}

// Binary is a binary operator application: arithmetic, stitch, or a
// relational comparison, keyed by Op.
type Binary struct {
	exprBase
	Op          token.Kind
	Left, Right Expr
}

// NewBinary constructs a Binary at pos (conventionally the operator's
// position).
func NewBinary(pos token.Position, op token.Kind, left, right Expr) *Binary {
	return &Binary{exprBase: exprBase{PosVal: pos}, Op: op, Left: left, Right: right}
}

type stmtBase struct {
	PosVal token.Position
}

func (s *stmtBase) Pos() token.Position { return s.PosVal }
func (*stmtBase) stmtNode()             {}

// Assign is `name = expr:`.
type Assign struct {
	stmtBase
	Name string
	Expr Expr
}

// NewAssign constructs an Assign at pos.
func NewAssign(pos token.Position, name string, expr Expr) *Assign {
	return &Assign{stmtBase: stmtBase{PosVal: pos}, Name: name, Expr: expr}
}

// Display is `display expr:`.
type Display struct {
	stmtBase
	Expr Expr
}

// NewDisplay constructs a Display at pos.
func NewDisplay(pos token.Position, expr Expr) *Display {
	return &Display{stmtBase: stmtBase{PosVal: pos}, Expr: expr}
}

// Give is `give expr:`.
type Give struct {
	stmtBase
	Expr Expr
}

// NewGive constructs a Give at pos.
func NewGive(pos token.Position, expr Expr) *Give {
	return &Give{stmtBase: stmtBase{PosVal: pos}, Expr: expr}
}

// Loop is `loop v in start..end { body }`.
type Loop struct {
	stmtBase
	Var        string
	Start, End Expr
	Body       []Stmt
}

// NewLoop constructs a Loop at pos.
func NewLoop(pos token.Position, v string, start, end Expr, body []Stmt) *Loop {
	return &Loop{stmtBase: stmtBase{PosVal: pos}, Var: v, Start: start, End: end, Body: body}
}

// Check is `check cond { then } else { else }`. The else branch is
// mandatory at the grammar level.
type Check struct {
	stmtBase
	Cond       Expr
	Then, Else []Stmt
}

// NewCheck constructs a Check at pos.
func NewCheck(pos token.Position, cond Expr, then, els []Stmt) *Check {
	return &Check{stmtBase: stmtBase{PosVal: pos}, Cond: cond, Then: then, Else: els}
}

// CaseClause is one `literal: body` arm of a Choose statement. Lit is
// always a *NumLit or *StrLit; case labels are bare literals, never
// expressions or identifiers.
type CaseClause struct {
	PosVal token.Position
	Lit    Expr
	Body   []Stmt
}

func (c CaseClause) Pos() token.Position { return c.PosVal }

// NewCaseClause constructs a CaseClause at lit's position.
func NewCaseClause(lit Expr, body []Stmt) CaseClause {
	return CaseClause{PosVal: lit.Pos(), Lit: lit, Body: body}
}

// Choose is `choose scrutinee { case* default }`.
type Choose struct {
	stmtBase
	Scrutinee Expr
	Cases     []CaseClause
	Default   []Stmt
}

// NewChoose constructs a Choose at pos.
func NewChoose(pos token.Position, scrutinee Expr, cases []CaseClause, def []Stmt) *Choose {
	return &Choose{stmtBase: stmtBase{PosVal: pos}, Scrutinee: scrutinee, Cases: cases, Default: def}
}
