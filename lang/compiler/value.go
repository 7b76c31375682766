package compiler

import (
	"fmt"
	"strconv"
)

// ValueKind identifies the type of a constant pool entry.
type ValueKind int8

// List of constant value kinds.
const (
	NullValue ValueKind = iota
	IntValue
	FloatValue
	BoolValue
	StringValue
	ProgramValue
)

var valueKindNames = [...]string{
	NullValue:    "null",
	IntValue:     "int",
	FloatValue:   "float",
	BoolValue:    "bool",
	StringValue:  "string",
	ProgramValue: "program",
}

func (k ValueKind) String() string { return valueKindNames[k] }

// A Value is a single tagged constant pool entry. Values are immutable
// once inserted into a pool.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Prog  *Program
}

// Null returns the null constant.
func Null() Value { return Value{Kind: NullValue} }

// Int returns an integer constant.
func Int(v int64) Value { return Value{Kind: IntValue, Int: v} }

// Float returns a floating-point constant.
func Float(v float64) Value { return Value{Kind: FloatValue, Float: v} }

// Bool returns a boolean constant.
func Bool(v bool) Value { return Value{Kind: BoolValue, Bool: v} }

// String returns a string constant. The bytes are stored as-is, no escape
// processing is applied.
func String(v string) Value { return Value{Kind: StringValue, Str: v} }

// Prog returns a program constant, the compiled body of a function.
func Prog(p *Program) Value { return Value{Kind: ProgramValue, Prog: p} }

func (v Value) String() string {
	switch v.Kind {
	case IntValue:
		return fmt.Sprintf("int %d", v.Int)
	case FloatValue:
		return "float " + strconv.FormatFloat(v.Float, 'g', -1, 64)
	case BoolValue:
		return fmt.Sprintf("bool %t", v.Bool)
	case StringValue:
		return fmt.Sprintf("string %q", v.Str)
	case ProgramValue:
		if v.Prog != nil && v.Prog.Native != nil {
			return "native"
		}
		return "program"
	}
	return "null"
}

// key returns the dedup key of the value: its type tag plus the literal
// textual representation. Program values are never deduplicated and have
// no key.
func (v Value) key() (string, bool) {
	switch v.Kind {
	case IntValue:
		return "int:" + strconv.FormatInt(v.Int, 10), true
	case FloatValue:
		return "float:" + strconv.FormatFloat(v.Float, 'g', -1, 64), true
	case BoolValue:
		return "bool:" + strconv.FormatBool(v.Bool), true
	case StringValue:
		return "string:" + v.Str, true
	case NullValue:
		return "null", true
	}
	return "", false
}
