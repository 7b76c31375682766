package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/helium-lang/helium/lang/compiler"
	"github.com/helium-lang/helium/lang/scanner"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(ctx, stdio, args...)
}

// CompileFiles compiles the source files and prints the disassembly of the
// resulting programs.
func CompileFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	for _, file := range files {
		prog, err := compiler.CompileFile(file)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			return err
		}
		fmt.Fprint(stdio.Stdout, compiler.Disasm(prog))
	}
	return nil
}
