package ir_test

import (
	"testing"

	"patternscript/ir"
	"patternscript/lexer"
	"patternscript/parser"
	"patternscript/sema"
)

func generate(t *testing.T, src string) []ir.Instr {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	if err := sema.Analyze(stmts); err != nil {
		t.Fatalf("Analyze(%q) error: %v", src, err)
	}
	return ir.Generate(stmts)
}

func opcodes(instrs []ir.Instr) []ir.OpCode {
	ops := make([]ir.OpCode, len(instrs))
	for i, in := range instrs {
		ops[i] = in.Op
	}
	return ops
}

func TestGenerateAssign(t *testing.T) {
	instrs := generate(t, `x = 4: y = x * 5:`)
	if len(instrs) != 3 {
		t.Fatalf("len(instrs) = %d, want 3", len(instrs))
	}
	if instrs[0].Op != ir.COPY {
		t.Errorf("instrs[0].Op = %s, want COPY", instrs[0].Op)
	}
	if instrs[1].Op != ir.MUL {
		t.Errorf("instrs[1].Op = %s, want MUL", instrs[1].Op)
	}
	if instrs[2].Op != ir.COPY {
		t.Fatalf("instrs[2].Op = %s, want COPY", instrs[2].Op)
	}
}

func TestGenerateMulVsRepeat(t *testing.T) {
	intInstrs := generate(t, `x = 2 * 3:`)
	found := false
	for _, in := range intInstrs {
		if in.Op == ir.MUL {
			found = true
		}
		if in.Op == ir.REPEAT {
			t.Errorf("int*int produced REPEAT")
		}
	}
	if !found {
		t.Error("int*int did not produce MUL")
	}

	strInstrs := generate(t, `x = "a" * 3:`)
	found = false
	for _, in := range strInstrs {
		if in.Op == ir.REPEAT {
			found = true
		}
		if in.Op == ir.MUL {
			t.Errorf("str*int produced MUL")
		}
	}
	if !found {
		t.Error("str*int did not produce REPEAT")
	}
}

func TestGenerateCheckShape(t *testing.T) {
	instrs := generate(t, `check 1 == 1 { display 1: } else { display 0: }`)
	got := opcodes(instrs)
	wantPrefix := []ir.OpCode{ir.CMP_EQ, ir.IF_FALSE}
	for i, w := range wantPrefix {
		if got[i] != w {
			t.Fatalf("opcodes[%d] = %s, want %s (full: %v)", i, got[i], w, got)
		}
	}
	var labels, gotos int
	for _, op := range got {
		if op == ir.LABEL {
			labels++
		}
		if op == ir.GOTO {
			gotos++
		}
	}
	if labels != 2 {
		t.Errorf("label count = %d, want 2", labels)
	}
	if gotos != 1 {
		t.Errorf("goto count = %d, want 1", gotos)
	}
}

func TestGenerateLoopShape(t *testing.T) {
	instrs := generate(t, `loop i in 1..3 { display i: }`)
	var sawHead, sawCmpLe, sawIfFalse, sawAdd, sawGoto bool
	for _, in := range instrs {
		switch in.Op {
		case ir.LABEL:
			sawHead = true
		case ir.CMP_LE:
			sawCmpLe = true
		case ir.IF_FALSE:
			sawIfFalse = true
		case ir.ADD:
			sawAdd = true
		case ir.GOTO:
			sawGoto = true
		}
	}
	if !sawHead || !sawCmpLe || !sawIfFalse || !sawAdd || !sawGoto {
		t.Errorf("loop lowering missing expected opcodes: %v", opcodes(instrs))
	}
}

func TestGenerateLabelsAllResolve(t *testing.T) {
	instrs := generate(t, `day = 3: choose day { 1: display "Mon": 2: display "Tue": default: display "Unknown": }`)
	defined := map[int]bool{}
	for _, in := range instrs {
		if in.Op == ir.LABEL {
			defined[in.Label] = true
		}
	}
	for _, in := range instrs {
		if in.Op == ir.GOTO || in.Op == ir.IF_FALSE || in.Op == ir.IF_NEQ_CONST {
			if !defined[in.Label] {
				t.Errorf("jump to undefined label L%d", in.Label)
			}
		}
	}
}
