// Package optimize implements the fixed-point TAC optimizer: constant
// folding (including copy propagation through single-assignment
// temporaries), a small set of algebraic identities, and dead-code
// elimination past unconditional transfers. Every rule is required to
// preserve observable behavior — a fold that would change or suppress a
// runtime error is skipped instead.
package optimize

import (
	"strconv"
	"strings"

	"patternscript/ir"
)

// Optimize repeatedly applies the rule set to instrs until no rule fires,
// returning the resulting TAC list. instrs is not mutated.
func Optimize(instrs []ir.Instr) []ir.Instr {
	cur := instrs
	for {
		folded, c1 := foldPass(cur)
		pruned, c2 := deadCodePass(folded)
		cur = pruned
		if !c1 && !c2 {
			return cur
		}
	}
}

// foldPass performs one left-to-right scan applying constant propagation
// through temporaries, constant folding, and algebraic identities.
// Program variables (Name operands) are never propagated: unlike
// temporaries they are not single-assignment, so a Name might be
// reassigned by a later instruction this pass hasn't seen an effect of in
// isolation.
func foldPass(instrs []ir.Instr) ([]ir.Instr, bool) {
	consts := map[int]ir.Operand{}
	out := make([]ir.Instr, 0, len(instrs))
	changed := false

	resolve := func(o ir.Operand) ir.Operand {
		if o.Kind == ir.Temp {
			if c, ok := consts[o.TempNum]; ok {
				return c
			}
		}
		return o
	}
	recordIfConstTemp := func(dst, val ir.Operand) {
		if dst.Kind == ir.Temp && val.IsConst() {
			consts[dst.TempNum] = val
		}
	}

	for _, in := range instrs {
		switch {
		case in.Op == ir.COPY:
			a := resolve(in.A)
			newIn := in
			if a != in.A {
				newIn.A = a
				changed = true
			}
			recordIfConstTemp(newIn.Dst, a)
			out = append(out, newIn)

		case in.Op.IsBinaryOp():
			a := resolve(in.A)
			b := resolve(in.B)
			if a.IsConst() && b.IsConst() {
				if folded, ok := foldConst(in.Op, a, b); ok {
					newIn := ir.Instr{Op: ir.COPY, Dst: in.Dst, A: folded}
					recordIfConstTemp(newIn.Dst, folded)
					out = append(out, newIn)
					changed = true
					continue
				}
			}
			newIn := in
			if a != in.A {
				newIn.A = a
				changed = true
			}
			if b != in.B {
				newIn.B = b
				changed = true
			}
			if simplified, ok := algebraicIdentity(newIn); ok {
				recordIfConstTemp(simplified.Dst, simplified.A)
				out = append(out, simplified)
				changed = true
				continue
			}
			out = append(out, newIn)

		case in.Op == ir.DISPLAY || in.Op == ir.GIVE || in.Op == ir.IF_FALSE:
			a := resolve(in.A)
			newIn := in
			if a != in.A {
				newIn.A = a
				changed = true
			}
			out = append(out, newIn)

		case in.Op == ir.IF_NEQ_CONST:
			a := resolve(in.A)
			newIn := in
			if a != in.A {
				newIn.A = a
				changed = true
			}
			out = append(out, newIn)

		default: // LABEL, GOTO
			out = append(out, in)
		}
	}
	return out, changed
}

// foldConst computes the constant result of a binary opcode applied to
// two constant operands, reporting ok=false when folding would change
// observable behavior (a modulo by zero, or a negative
// repeat count) — those are left for the interpreter to raise as runtime
// errors.
func foldConst(op ir.OpCode, a, b ir.Operand) (ir.Operand, bool) {
	switch op {
	case ir.ADD:
		return ir.IntConstOperand(a.Int + b.Int), true
	case ir.SUB:
		return ir.IntConstOperand(a.Int - b.Int), true
	case ir.MUL:
		return ir.IntConstOperand(a.Int * b.Int), true
	case ir.MOD:
		if b.Int == 0 {
			return ir.Operand{}, false
		}
		return ir.IntConstOperand(a.Int % b.Int), true
	case ir.STITCH:
		return ir.StrConstOperand(constText(a) + constText(b)), true
	case ir.REPEAT:
		s, n, ok := repeatOperands(a, b)
		if !ok || n < 0 {
			return ir.Operand{}, false
		}
		return ir.StrConstOperand(strings.Repeat(s, int(n))), true
	case ir.CMP_EQ:
		return boolOperand(a.Int == b.Int), true
	case ir.CMP_NEQ:
		return boolOperand(a.Int != b.Int), true
	case ir.CMP_LT:
		return boolOperand(a.Int < b.Int), true
	case ir.CMP_GT:
		return boolOperand(a.Int > b.Int), true
	case ir.CMP_LE:
		return boolOperand(a.Int <= b.Int), true
	case ir.CMP_GE:
		return boolOperand(a.Int >= b.Int), true
	default:
		return ir.Operand{}, false
	}
}

func constText(o ir.Operand) string {
	if o.Kind == ir.StrConst {
		return o.Str
	}
	return strconv.FormatInt(o.Int, 10)
}

func repeatOperands(a, b ir.Operand) (s string, n int64, ok bool) {
	if a.Kind == ir.StrConst && b.Kind == ir.IntConst {
		return a.Str, b.Int, true
	}
	if b.Kind == ir.StrConst && a.Kind == ir.IntConst {
		return b.Str, a.Int, true
	}
	return "", 0, false
}

func boolOperand(v bool) ir.Operand {
	if v {
		return ir.IntConstOperand(1)
	}
	return ir.IntConstOperand(0)
}

// algebraicIdentity rewrites in into a COPY when it matches one of the
// non-folding simplifications: x+0, x*1, x*0, string-repeat-by-one, and
// string-repeat-by-zero. The non-zero/non-one operand need not itself be
// constant.
//
// "" ~ x is deliberately NOT simplified here beyond the constant-folding
// case already handled in foldConst: STITCH has no statically known
// result type unless both sides are constant, and rewriting it to a bare
// COPY of a non-string operand would violate the invariant that STITCH
// always produces a Str-tagged value.
func algebraicIdentity(in ir.Instr) (ir.Instr, bool) {
	switch in.Op {
	case ir.ADD:
		if isIntConst(in.B, 0) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.A}, true
		}
		if isIntConst(in.A, 0) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.B}, true
		}
	case ir.MUL:
		if isIntConst(in.B, 1) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.A}, true
		}
		if isIntConst(in.A, 1) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.B}, true
		}
		if isIntConst(in.A, 0) || isIntConst(in.B, 0) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: ir.IntConstOperand(0)}, true
		}
	case ir.REPEAT:
		if isIntConst(in.B, 1) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.A}, true
		}
		if isIntConst(in.A, 1) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: in.B}, true
		}
		if isIntConst(in.A, 0) || isIntConst(in.B, 0) {
			return ir.Instr{Op: ir.COPY, Dst: in.Dst, A: ir.StrConstOperand("")}, true
		}
	}
	return ir.Instr{}, false
}

func isIntConst(o ir.Operand, v int64) bool {
	return o.Kind == ir.IntConst && o.Int == v
}

// deadCodePass removes every instruction strictly between a GIVE or an
// unconditional GOTO and the next LABEL. Labels are never removed, since
// conditional jumps elsewhere in the list may still target them.
func deadCodePass(instrs []ir.Instr) ([]ir.Instr, bool) {
	out := make([]ir.Instr, 0, len(instrs))
	skipping := false
	changed := false
	for _, in := range instrs {
		if skipping {
			if in.Op == ir.LABEL {
				skipping = false
				out = append(out, in)
			} else {
				changed = true
			}
			continue
		}
		out = append(out, in)
		if in.Op == ir.GIVE || in.Op == ir.GOTO {
			skipping = true
		}
	}
	return out, changed
}
