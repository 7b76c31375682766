package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeNames(t *testing.T) {
	for op := Opcode(0); op < maxOpcode; op++ {
		if op.String() == "" || op.String() == "INVALID" {
			t.Errorf("missing string representation of opcode %d", op)
		}
	}
	require.Equal(t, "INVALID", Opcode(200).String())
}

func TestInstrEncoding(t *testing.T) {
	in := Make(ADD)
	require.Equal(t, ADD, in.Op())
	require.Equal(t, uint16(0), in.U16())

	in = MakeU(PUSHK, 513)
	require.Equal(t, PUSHK, in.Op())
	require.Equal(t, uint16(513), in.U16())

	in = MakeS(JIF, -5)
	require.Equal(t, JIF, in.Op())
	require.Equal(t, int16(-5), in.S16())

	in = MakeS(JMP, 12345)
	require.Equal(t, int16(12345), in.S16())
}

func TestInstrString(t *testing.T) {
	require.Equal(t, "ADD", Make(ADD).String())
	require.Equal(t, "PUSHK 3", MakeU(PUSHK, 3).String())
	require.Equal(t, "JMP -2", MakeS(JMP, -2).String())
	require.Equal(t, "CALL 2", MakeU(CALL, 2).String())
}

func TestOpcodeArgs(t *testing.T) {
	withArg := map[Opcode]bool{
		PUSHK: true, STORG: true, LOADG: true, STORL: true, LOADL: true,
		STORC: true, LOADC: true, CALL: true, JIF: true, JMP: true, CLOSE: true,
	}
	for op := Opcode(0); op < maxOpcode; op++ {
		require.Equal(t, withArg[op], op.HasArg(), "opcode %s", op)
	}
	for op := Opcode(0); op < maxOpcode; op++ {
		require.Equal(t, op == JIF || op == JMP, op.IsJump(), "opcode %s", op)
	}
}

func TestValueKey(t *testing.T) {
	cases := []Value{Int(1), Float(1.5), Bool(true), String("a"), Null()}
	seen := map[string]bool{}
	for _, v := range cases {
		key, ok := v.key()
		require.True(t, ok)
		require.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}

	// int 1 and string "1" must not collide
	k1, _ := Int(1).key()
	k2, _ := String("1").key()
	require.NotEqual(t, k1, k2)

	_, ok := Prog(&Program{}).key()
	require.False(t, ok)
}

func TestResolve(t *testing.T) {
	top := NewProgram("t")
	top.addSymbol("g")

	outer := newChild(top, 1)
	outer.addSymbol("x")
	inner := newChild(outer, 0)

	slot, scope := inner.resolve("x", false)
	require.Equal(t, Closed, scope)
	require.Equal(t, 0, slot)

	// resolving the same name twice reuses the closure slot
	slot2, scope2 := inner.resolve("x", false)
	require.Equal(t, Closed, scope2)
	require.Equal(t, slot, slot2)
	require.Len(t, inner.Closures(), 1)

	_, scope = inner.resolve("g", false)
	require.Equal(t, Global, scope)

	_, scope = inner.resolve("nope", false)
	require.Equal(t, Unknown, scope)

	slot, scope = inner.resolve("fresh", true)
	require.Equal(t, Local, scope)
	require.Equal(t, 0, slot)

	// at the top level any resolution implicitly declares
	slot, scope = top.resolve("implicit", false)
	require.Equal(t, Local, scope)
	require.Equal(t, 1, slot)
}
