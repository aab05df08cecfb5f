// Package interp implements the TAC interpreter: the final pipeline
// stage, executing three-address code against a value store and
// producing ordered output lines. Its Run loop is grounded on the
// teacher's instruction-dispatch style — a program counter walking a
// flat instruction slice, label targets resolved once up front, with a
// defer/recover boundary converting an unexpected panic into a typed
// error rather than crashing the host process.
package interp

import (
	"strings"

	"github.com/pkg/errors"

	"patternscript/ir"
	"patternscript/value"
)

// Output is the result of a successful Run: the ordered output lines and,
// if the program reached a GIVE, the value it gave.
type Output struct {
	Output []string
	Give   *value.Value
}

type interpreter struct {
	instrs []ir.Instr
	labels map[int]int
	temps  map[int]value.Value
	vars   map[string]value.Value
	output []string
	pc     int
}

// Run executes instrs to completion (or to a GIVE) and returns the
// collected output, or the first runtime Error encountered. On error, the
// returned Output still carries every line DISPLAY produced before the
// failing instruction, per the language's partial-output guarantee.
func Run(instrs []ir.Instr) (out Output, err error) {
	it := &interpreter{
		instrs: instrs,
		labels: buildLabels(instrs),
		temps:  map[int]value.Value{},
		vars:   map[string]value.Value{},
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			out = Output{Output: it.output}
			err = errors.Wrapf(e, "recovered interpreter panic at pc=%d", it.pc)
		}
	}()

	give, runErr := it.run()
	if runErr != nil {
		return Output{Output: it.output}, runErr
	}
	return Output{Output: it.output, Give: give}, nil
}

func buildLabels(instrs []ir.Instr) map[int]int {
	labels := make(map[int]int, len(instrs))
	for i, in := range instrs {
		if in.Op == ir.LABEL {
			labels[in.Label] = i
		}
	}
	return labels
}

func (it *interpreter) run() (*value.Value, error) {
	for it.pc < len(it.instrs) {
		in := it.instrs[it.pc]
		switch in.Op {
		case ir.LABEL:
			it.pc++

		case ir.GOTO:
			it.pc = it.labels[in.Label]

		case ir.IF_FALSE:
			a := it.eval(in.A)
			if !a.Truthy() {
				it.pc = it.labels[in.Label]
			} else {
				it.pc++
			}

		case ir.IF_NEQ_CONST:
			a := it.eval(in.A)
			c := it.eval(in.B)
			if !a.Equal(c) {
				it.pc = it.labels[in.Label]
			} else {
				it.pc++
			}

		case ir.COPY:
			it.store(in.Dst, it.eval(in.A))
			it.pc++

		case ir.DISPLAY:
			it.output = append(it.output, it.eval(in.A).Text())
			it.pc++

		case ir.GIVE:
			v := it.eval(in.A)
			return &v, nil

		default:
			v, err := it.evalBinary(in)
			if err != nil {
				return nil, err
			}
			it.store(in.Dst, v)
			it.pc++
		}
	}
	return nil, nil
}

func (it *interpreter) eval(o ir.Operand) value.Value {
	switch o.Kind {
	case ir.IntConst:
		return value.Int64(o.Int)
	case ir.StrConst:
		return value.String(o.Str)
	case ir.Temp:
		return it.temps[o.TempNum]
	case ir.Name:
		return it.vars[o.Ident]
	default:
		panic(errors.Errorf("invalid operand kind %d", o.Kind))
	}
}

func (it *interpreter) store(dst ir.Operand, v value.Value) {
	switch dst.Kind {
	case ir.Temp:
		it.temps[dst.TempNum] = v
	case ir.Name:
		it.vars[dst.Ident] = v
	default:
		panic(errors.Errorf("invalid assignment target kind %d", dst.Kind))
	}
}

func (it *interpreter) evalBinary(in ir.Instr) (value.Value, error) {
	a := it.eval(in.A)
	b := it.eval(in.B)

	switch in.Op {
	case ir.ADD:
		return value.Int64(a.Int + b.Int), nil
	case ir.SUB:
		return value.Int64(a.Int - b.Int), nil
	case ir.MUL:
		return value.Int64(a.Int * b.Int), nil
	case ir.MOD:
		if b.Int == 0 {
			return value.Value{}, &Error{Kind: DivideByZero, PC: it.pc}
		}
		return value.Int64(a.Int % b.Int), nil
	case ir.STITCH:
		return value.String(a.Text() + b.Text()), nil
	case ir.REPEAT:
		return it.evalRepeat(a, b)
	case ir.CMP_EQ:
		return boolValue(a.Int == b.Int), nil
	case ir.CMP_NEQ:
		return boolValue(a.Int != b.Int), nil
	case ir.CMP_LT:
		return boolValue(a.Int < b.Int), nil
	case ir.CMP_GT:
		return boolValue(a.Int > b.Int), nil
	case ir.CMP_LE:
		return boolValue(a.Int <= b.Int), nil
	case ir.CMP_GE:
		return boolValue(a.Int >= b.Int), nil
	default:
		panic(errors.Errorf("unhandled opcode %s", in.Op))
	}
}

func (it *interpreter) evalRepeat(a, b value.Value) (value.Value, error) {
	var s string
	var n int64
	switch {
	case a.Type == value.Str && b.Type == value.Int:
		s, n = a.Str, b.Int
	case b.Type == value.Str && a.Type == value.Int:
		s, n = b.Str, a.Int
	default:
		return value.Value{}, &Error{Kind: TypeErrorAtRuntime, PC: it.pc, Msg: "REPEAT requires one string and one int operand, got " + a.Type.String() + " and " + b.Type.String()}
	}
	if n < 0 {
		return value.Value{}, &Error{Kind: NegativeRepeat, PC: it.pc}
	}
	return value.String(strings.Repeat(s, int(n))), nil
}

func boolValue(v bool) value.Value {
	if v {
		return value.Int64(1)
	}
	return value.Int64(0)
}
