package compiler

import "fmt"

// CreateNative registers a host callback as a callable binding in a
// top-level program. It appends a program constant whose native handle
// points at fn, binds name as a local, and emits the instructions that
// store the callable into the binding. The callback receives exactly argc
// values and returns one.
func (p *Program) CreateNative(name string, fn NativeFunc, argc int) error {
	if p.parent != nil {
		return fmt.Errorf("native function %q must be registered on the top-level program", name)
	}

	slot, scope := p.registerUniqueLocal(name)
	if scope == DuplicateInScope {
		return fmt.Errorf("duplicate symbol in scope: %s", name)
	}

	native := &Program{Filename: p.Filename, Argc: argc, Native: fn}
	k := p.registerConstant(Prog(native))
	p.Code = append(p.Code,
		MakeU(PUSHK, uint16(k)),
		MakeU(STORL, uint16(slot)),
	)
	return nil
}
