package compiler_test

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"github.com/helium-lang/helium/lang/compiler"
)

func TestDisasm(t *testing.T) {
	prog := compile(t, "x <- 1 + 2 * 3")

	want := "program: test.he argc=0\n" +
		"constants:\n" +
		"\t0 int 1\n" +
		"\t1 int 2\n" +
		"\t2 int 3\n" +
		"symbols:\n" +
		"\t0 x\n" +
		"lines:\n" +
		"\t1 -> 0\n" +
		"code:\n" +
		"\t0 PUSHK 0\n" +
		"\t1 PUSHK 1\n" +
		"\t2 PUSHK 2\n" +
		"\t3 MUL\n" +
		"\t4 ADD\n" +
		"\t5 STORL 0\n"
	if patch := diff.Diff(want, compiler.Disasm(prog)); patch != "" {
		t.Errorf("diff:\n%s", patch)
	}
}

func TestDisasmFunction(t *testing.T) {
	prog := compile(t, "f <- $(a){ return a }")

	want := "program: test.he argc=0\n" +
		"constants:\n" +
		"\t0 program\n" +
		"symbols:\n" +
		"\t0 f\n" +
		"lines:\n" +
		"\t1 -> 0\n" +
		"code:\n" +
		"\t0 PUSHK 0\n" +
		"\t1 CLOSE 0\n" +
		"\t2 STORL 0\n" +
		"\n" +
		"function[0]: test.he argc=1\n" +
		"constants:\n" +
		"\t0 null\n" +
		"symbols:\n" +
		"\t0 a\n" +
		"lines:\n" +
		"\t1 -> 0\n" +
		"code:\n" +
		"\t0 LOADL 0\n" +
		"\t1 RET\n" +
		"\t2 PUSHK 0\n" +
		"\t3 RET\n"
	if patch := diff.Diff(want, compiler.Disasm(prog)); patch != "" {
		t.Errorf("diff:\n%s", patch)
	}
}

func TestDisasmNative(t *testing.T) {
	prog := compiler.NewProgram("host")
	require.NoError(t, prog.CreateNative("print", func(args []compiler.Value) compiler.Value {
		return compiler.Null()
	}, 1))

	want := "program: host argc=0\n" +
		"constants:\n" +
		"\t0 native\n" +
		"symbols:\n" +
		"\t0 print\n" +
		"code:\n" +
		"\t0 PUSHK 0\n" +
		"\t1 STORL 0\n"
	if patch := diff.Diff(want, compiler.Disasm(prog)); patch != "" {
		t.Errorf("diff:\n%s", patch)
	}
}
