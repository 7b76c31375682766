package compiler

import (
	"github.com/dolthub/swiss"
)

// Scope classifies how a name resolves from the program currently being
// compiled; it decides which load/store opcode is emitted.
type Scope int8

// List of scope classes.
const (
	Unknown Scope = iota
	Local         // slot in the current program's symbol table
	Closed        // slot captured from an enclosing function
	Global        // slot in the top-level program's symbol table
	DuplicateInScope
)

var scopeNames = [...]string{
	Unknown:          "unknown",
	Local:            "local",
	Closed:           "closed",
	Global:           "global",
	DuplicateInScope: "duplicate",
}

func (s Scope) String() string { return scopeNames[s] }

// NativeFunc is the host-callback signature for native functions. The
// callback receives its arguments as a contiguous ordered slice and
// returns a single value.
type NativeFunc func(args []Value) Value

// A ClosureSlot is an entry in a program's closure table: a name captured
// from an enclosing function, bound to that function's local slot.
type ClosureSlot struct {
	Name string
	Slot int // local slot in the enclosing function
}

// A LineAddr maps a source line to the index of the first instruction
// emitted for that line. Entries are appended in strictly increasing line
// order.
type LineAddr struct {
	Line int
	Addr int
}

// A Program is one compilation unit: the top-level script or a single
// function body. It exclusively owns its code, constants and name tables.
// The parent back-reference is used only for name resolution while the
// unit compiles and is severed afterwards.
type Program struct {
	Filename  string
	Code      []Instr
	Constants []Value
	Argc      int
	Native    NativeFunc

	parent *Program

	symbols   []string // slot-ordered symbol names
	symtab    *swiss.Map[string, int]
	constants *swiss.Map[string, int]
	closures  []ClosureSlot
	lineAddrs []LineAddr
}

// NewProgram creates an empty top-level program.
func NewProgram(filename string) *Program {
	return &Program{
		Filename:  filename,
		symtab:    swiss.NewMap[string, int](8),
		constants: swiss.NewMap[string, int](8),
	}
}

func newChild(parent *Program, argc int) *Program {
	p := NewProgram(parent.Filename)
	p.Argc = argc
	p.parent = parent
	return p
}

// Symbols returns the program's symbol names in slot order.
func (p *Program) Symbols() []string { return p.symbols }

// SymbolSlot returns the local slot bound to name.
func (p *Program) SymbolSlot(name string) (int, bool) {
	return p.symtab.Get(name)
}

// Closures returns the program's closure table in slot order.
func (p *Program) Closures() []ClosureSlot { return p.closures }

// LineAddrs returns the line address table in increasing line order.
func (p *Program) LineAddrs() []LineAddr { return p.lineAddrs }

// addSymbol binds name to the next local slot. Slot numbers are contiguous
// from 0 and never change once assigned.
func (p *Program) addSymbol(name string) int {
	slot := len(p.symbols)
	p.symbols = append(p.symbols, name)
	p.symtab.Put(name, slot)
	return slot
}

// registerUniqueLocal binds name as a new local, failing with
// DuplicateInScope if it is already bound in this program.
func (p *Program) registerUniqueLocal(name string) (int, Scope) {
	if _, ok := p.symtab.Get(name); ok {
		return 0, DuplicateInScope
	}
	return p.addSymbol(name), Local
}

// root returns the top-level program of the compilation.
func (p *Program) root() *Program {
	r := p
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// resolve resolves name from this program. Lookup order: current symbol
// table, then enclosing functions (excluding the top level, allocating a
// closure slot on a hit), then the top-level symbol table. When store is
// true an unknown name is implicitly declared as a new local in the
// current program; otherwise it stays Unknown.
func (p *Program) resolve(name string, store bool) (int, Scope) {
	if slot, ok := p.symtab.Get(name); ok {
		return slot, Local
	}

	for anc := p.parent; anc != nil && anc.parent != nil; anc = anc.parent {
		if slot, ok := anc.symtab.Get(name); ok {
			return p.addClosure(name, slot), Closed
		}
	}

	if p.parent != nil {
		if slot, ok := p.root().symtab.Get(name); ok {
			return slot, Global
		}
	}

	if store || p.parent == nil {
		// implicit declaration: a store binds a new local anywhere, any
		// resolution does at the top level
		return p.addSymbol(name), Local
	}
	return 0, Unknown
}

// addClosure allocates (or reuses) a closure slot binding name to the
// enclosing function's local slot.
func (p *Program) addClosure(name string, outerSlot int) int {
	for i, c := range p.closures {
		if c.Name == name {
			return i
		}
	}
	p.closures = append(p.closures, ClosureSlot{Name: name, Slot: outerSlot})
	return len(p.closures) - 1
}

// registerConstant appends v to the constant pool, deduplicating by the
// value's literal representation. Program values always get a fresh slot.
func (p *Program) registerConstant(v Value) int {
	key, dedup := v.key()
	if dedup {
		if idx, ok := p.constants.Get(key); ok {
			return idx
		}
	}
	idx := len(p.Constants)
	p.Constants = append(p.Constants, v)
	if dedup {
		p.constants.Put(key, idx)
	}
	return idx
}

// recordLine records the address of the first instruction emitted for a
// source line. The table stays monotonic: lines out of order (as produced
// by includes) are not recorded.
func (p *Program) recordLine(line int) {
	if line <= 0 {
		return
	}
	if n := len(p.lineAddrs); n > 0 && p.lineAddrs[n-1].Line >= line {
		return
	}
	p.lineAddrs = append(p.lineAddrs, LineAddr{Line: line, Addr: len(p.Code)})
}

// sever drops the parent back-references once compilation of the unit is
// complete.
func (p *Program) sever() {
	p.parent = nil
	for _, v := range p.Constants {
		if v.Kind == ProgramValue && v.Prog != nil {
			v.Prog.sever()
		}
	}
}
