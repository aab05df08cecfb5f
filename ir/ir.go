// Package ir defines PatternScript's three-address code: the flat
// instruction list the semantic-checked AST is lowered into, consumed in
// turn by the optimizer and the interpreter.
package ir

import "fmt"

// OperandKind tags the four operand forms a TAC instruction can reference.
type OperandKind int

const (
	// Temp identifies a synthetic temporary, numbered from zero and
	// assigned exactly once at generation time.
	Temp OperandKind = iota
	// Name identifies a named program variable.
	Name
	// IntConst is an immediate integer value.
	IntConst
	// StrConst is an immediate string value.
	StrConst
)

// Operand is a single TAC operand: a tagged union over the four kinds
// above. Only the field matching Kind is meaningful.
type Operand struct {
	Kind    OperandKind
	TempNum int
	Ident   string
	Int     int64
	Str     string
}

// TempOperand references temporary n.
func TempOperand(n int) Operand { return Operand{Kind: Temp, TempNum: n} }

// NameOperand references the program variable named ident.
func NameOperand(ident string) Operand { return Operand{Kind: Name, Ident: ident} }

// IntConstOperand is an immediate integer.
func IntConstOperand(i int64) Operand { return Operand{Kind: IntConst, Int: i} }

// StrConstOperand is an immediate string.
func StrConstOperand(s string) Operand { return Operand{Kind: StrConst, Str: s} }

// IsConst reports whether o is an immediate (IntConst or StrConst), as
// opposed to something the interpreter must look up (Temp or Name).
func (o Operand) IsConst() bool {
	return o.Kind == IntConst || o.Kind == StrConst
}

func (o Operand) String() string {
	switch o.Kind {
	case Temp:
		return fmt.Sprintf("t%d", o.TempNum)
	case Name:
		return o.Ident
	case IntConst:
		return fmt.Sprintf("%d", o.Int)
	case StrConst:
		return fmt.Sprintf("%q", o.Str)
	default:
		return "?"
	}
}

// OpCode identifies a TAC instruction's operation.
type OpCode int

const (
	COPY OpCode = iota
	ADD
	SUB
	MUL
	MOD
	STITCH
	REPEAT
	CMP_EQ
	CMP_NEQ
	CMP_LT
	CMP_GT
	CMP_LE
	CMP_GE
	DISPLAY
	GIVE
	LABEL
	GOTO
	IF_FALSE
	IF_NEQ_CONST
)

var opNames = [...]string{
	COPY: "COPY", ADD: "ADD", SUB: "SUB", MUL: "MUL", MOD: "MOD",
	STITCH: "STITCH", REPEAT: "REPEAT",
	CMP_EQ: "CMP_EQ", CMP_NEQ: "CMP_NEQ", CMP_LT: "CMP_LT",
	CMP_GT: "CMP_GT", CMP_LE: "CMP_LE", CMP_GE: "CMP_GE",
	DISPLAY: "DISPLAY", GIVE: "GIVE",
	LABEL: "LABEL", GOTO: "GOTO", IF_FALSE: "IF_FALSE", IF_NEQ_CONST: "IF_NEQ_CONST",
}

func (op OpCode) String() string {
	if int(op) >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// IsBinaryOp reports whether op computes Dst from A and B (the arithmetic,
// stitch, repeat, and comparison opcodes).
func (op OpCode) IsBinaryOp() bool {
	switch op {
	case ADD, SUB, MUL, MOD, STITCH, REPEAT, CMP_EQ, CMP_NEQ, CMP_LT, CMP_GT, CMP_LE, CMP_GE:
		return true
	}
	return false
}

// Instr is a single TAC instruction. Which fields are meaningful depends
// on Op:
//
//	COPY            Dst = A
//	ADD..CMP_GE      Dst = A op B
//	DISPLAY, GIVE    A
//	LABEL, GOTO      Label
//	IF_FALSE         A, Label
//	IF_NEQ_CONST     A, B (a constant), Label
type Instr struct {
	Op    OpCode
	Dst   Operand
	A     Operand
	B     Operand
	Label int
}

func (in Instr) String() string {
	switch in.Op {
	case COPY:
		return fmt.Sprintf("%s = COPY %s", in.Dst, in.A)
	case DISPLAY:
		return fmt.Sprintf("DISPLAY %s", in.A)
	case GIVE:
		return fmt.Sprintf("GIVE %s", in.A)
	case LABEL:
		return fmt.Sprintf("L%d:", in.Label)
	case GOTO:
		return fmt.Sprintf("GOTO L%d", in.Label)
	case IF_FALSE:
		return fmt.Sprintf("IF_FALSE %s GOTO L%d", in.A, in.Label)
	case IF_NEQ_CONST:
		return fmt.Sprintf("IF_NEQ_CONST %s, %s GOTO L%d", in.A, in.B, in.Label)
	default:
		if in.Op.IsBinaryOp() {
			return fmt.Sprintf("%s = %s %s %s", in.Dst, in.Op, in.A, in.B)
		}
		return fmt.Sprintf("%s ?", in.Op)
	}
}
