package compiler

import (
	"fmt"
	"strings"
)

// Disasm renders a human-readable listing of the program: its constants,
// symbols, closure slots, line address table and code, followed by the
// same sections for every function in its constant pool, depth first.
func Disasm(p *Program) string {
	var sb strings.Builder
	disasm(&sb, p, "program")
	return sb.String()
}

func disasm(sb *strings.Builder, p *Program, label string) {
	fmt.Fprintf(sb, "%s: %s argc=%d\n", label, p.Filename, p.Argc)
	if p.Native != nil {
		sb.WriteString("\tnative\n")
		return
	}

	if len(p.Constants) > 0 {
		sb.WriteString("constants:\n")
		for i, v := range p.Constants {
			fmt.Fprintf(sb, "\t%d %s\n", i, v)
		}
	}
	if len(p.symbols) > 0 {
		sb.WriteString("symbols:\n")
		for i, name := range p.symbols {
			fmt.Fprintf(sb, "\t%d %s\n", i, name)
		}
	}
	if len(p.closures) > 0 {
		sb.WriteString("closures:\n")
		for i, c := range p.closures {
			fmt.Fprintf(sb, "\t%d %s <- outer %d\n", i, c.Name, c.Slot)
		}
	}
	if len(p.lineAddrs) > 0 {
		sb.WriteString("lines:\n")
		for _, la := range p.lineAddrs {
			fmt.Fprintf(sb, "\t%d -> %d\n", la.Line, la.Addr)
		}
	}
	sb.WriteString("code:\n")
	for i, in := range p.Code {
		fmt.Fprintf(sb, "\t%d %s\n", i, in)
	}

	for i, v := range p.Constants {
		if v.Kind == ProgramValue && v.Prog != nil && v.Prog.Native == nil {
			sb.WriteByte('\n')
			disasm(sb, v.Prog, fmt.Sprintf("function[%d]", i))
		}
	}
}
