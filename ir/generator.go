package ir

import (
	"patternscript/ast"
	"patternscript/token"
)

// binaryOpcodes maps a Binary AST node's operator to the TAC opcode that
// computes it. Generate assumes sema has already rejected any operator
// not present here.
var binaryOpcodes = map[token.Kind]OpCode{
	token.PLUS:    ADD,
	token.MINUS:   SUB,
	token.PERCENT: MOD,
	token.TILDE:   STITCH,
	token.EQ:      CMP_EQ,
	token.NEQ:     CMP_NEQ,
	token.LT:      CMP_LT,
	token.GT:      CMP_GT,
	token.LE:      CMP_LE,
	token.GE:      CMP_GE,
}

// Generator lowers a type-checked AST into a flat TAC list, threading a
// monotonically increasing temporary counter and label counter.
type Generator struct {
	instrs    []Instr
	nextTemp  int
	nextLabel int
}

// Generate lowers stmts, already accepted by sema.Analyze, into TAC.
func Generate(stmts []ast.Stmt) []Instr {
	g := &Generator{}
	g.genStmts(stmts)
	return g.instrs
}

func (g *Generator) newTemp() Operand {
	t := TempOperand(g.nextTemp)
	g.nextTemp++
	return t
}

func (g *Generator) newLabel() int {
	l := g.nextLabel
	g.nextLabel++
	return l
}

func (g *Generator) emit(in Instr) {
	g.instrs = append(g.instrs, in)
}

func (g *Generator) genStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Assign:
		op := g.genExpr(n.Expr)
		g.emit(Instr{Op: COPY, Dst: NameOperand(n.Name), A: op})
	case *ast.Display:
		op := g.genExpr(n.Expr)
		g.emit(Instr{Op: DISPLAY, A: op})
	case *ast.Give:
		op := g.genExpr(n.Expr)
		g.emit(Instr{Op: GIVE, A: op})
	case *ast.Loop:
		g.genLoop(n)
	case *ast.Check:
		g.genCheck(n)
	case *ast.Choose:
		g.genChoose(n)
	}
}

func (g *Generator) genCheck(n *ast.Check) {
	cond := g.genExpr(n.Cond)
	lElse := g.newLabel()
	lEnd := g.newLabel()
	g.emit(Instr{Op: IF_FALSE, A: cond, Label: lElse})
	g.genStmts(n.Then)
	g.emit(Instr{Op: GOTO, Label: lEnd})
	g.emit(Instr{Op: LABEL, Label: lElse})
	g.genStmts(n.Else)
	g.emit(Instr{Op: LABEL, Label: lEnd})
}

func (g *Generator) genLoop(n *ast.Loop) {
	ta := g.genExpr(n.Start)
	tb := g.genExpr(n.End)
	g.emit(Instr{Op: COPY, Dst: NameOperand(n.Var), A: ta})

	lHead := g.newLabel()
	lDone := g.newLabel()
	g.emit(Instr{Op: LABEL, Label: lHead})

	tCond := g.newTemp()
	g.emit(Instr{Op: CMP_LE, Dst: tCond, A: NameOperand(n.Var), B: tb})
	g.emit(Instr{Op: IF_FALSE, A: tCond, Label: lDone})

	g.genStmts(n.Body)

	g.emit(Instr{Op: ADD, Dst: NameOperand(n.Var), A: NameOperand(n.Var), B: IntConstOperand(1)})
	g.emit(Instr{Op: GOTO, Label: lHead})
	g.emit(Instr{Op: LABEL, Label: lDone})
}

func (g *Generator) genChoose(n *ast.Choose) {
	scrutinee := g.genExpr(n.Scrutinee)
	lEnd := g.newLabel()

	for _, c := range n.Cases {
		lNext := g.newLabel()
		lit := g.genExpr(c.Lit)
		g.emit(Instr{Op: IF_NEQ_CONST, A: scrutinee, B: lit, Label: lNext})
		g.genStmts(c.Body)
		g.emit(Instr{Op: GOTO, Label: lEnd})
		g.emit(Instr{Op: LABEL, Label: lNext})
	}

	g.genStmts(n.Default)
	g.emit(Instr{Op: LABEL, Label: lEnd})
}

// genExpr lowers e and returns the operand holding its value: literals
// lower directly to constants and variable reads to Name operands with no
// instruction emitted; every Binary emits one instruction into a fresh
// temporary.
func (g *Generator) genExpr(e ast.Expr) Operand {
	switch n := e.(type) {
	case *ast.NumLit:
		return IntConstOperand(n.Value)
	case *ast.StrLit:
		return StrConstOperand(n.Value)
	case *ast.VarRef:
		return NameOperand(n.Name)
	case *ast.Binary:
		return g.genBinary(n)
	default:
		return Operand{}
	}
}

func (g *Generator) genBinary(n *ast.Binary) Operand {
	a := g.genExpr(n.Left)
	b := g.genExpr(n.Right)
	dst := g.newTemp()

	if n.Op == token.STAR {
		op := MUL
		if n.Left.Type() != n.Right.Type() {
			op = REPEAT
		}
		g.emit(Instr{Op: op, Dst: dst, A: a, B: b})
		return dst
	}

	op, ok := binaryOpcodes[n.Op]
	if !ok {
		op = ADD
	}
	g.emit(Instr{Op: op, Dst: dst, A: a, B: b})
	return dst
}
