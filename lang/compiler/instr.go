package compiler

import (
	"fmt"
	"strconv"
)

// An Instr is a single fixed-width instruction: one 32-bit word with the
// opcode in the high byte and the operand in the low bits. Operands fit in
// 16 bits and are interpreted as unsigned or signed depending on the
// opcode; stack-only opcodes carry a zero operand.
type Instr uint32

// Make encodes a stack-only instruction.
func Make(op Opcode) Instr { return Instr(uint32(op) << 24) }

// MakeU encodes an instruction with an unsigned operand (table index,
// arity or closure slot count).
func MakeU(op Opcode, arg uint16) Instr {
	return Instr(uint32(op)<<24 | uint32(arg))
}

// MakeS encodes an instruction with a signed operand (jump target).
func MakeS(op Opcode, arg int16) Instr {
	return Instr(uint32(op)<<24 | uint32(uint16(arg)))
}

// Op returns the instruction's opcode.
func (i Instr) Op() Opcode { return Opcode(i >> 24) }

// U16 returns the operand as an unsigned table index.
func (i Instr) U16() uint16 { return uint16(i) }

// S16 returns the operand as a signed jump target.
func (i Instr) S16() int16 { return int16(uint16(i)) }

func (i Instr) String() string {
	op := i.Op()
	if !op.HasArg() {
		return op.String()
	}
	if op.IsJump() {
		return op.String() + " " + strconv.Itoa(int(i.S16()))
	}
	return fmt.Sprintf("%s %d", op, i.U16())
}
