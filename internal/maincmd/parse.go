package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/helium-lang/helium/lang/ast"
	"github.com/helium-lang/helium/lang/parser"
	"github.com/helium-lang/helium/lang/scanner"
	"github.com/helium-lang/helium/lang/token"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	mode, err := c.cfg.PosMode()
	if err != nil {
		return err
	}
	return ParseFiles(ctx, stdio, mode, args...)
}

// ParseFiles parses the source files and prints the resulting ASTs as
// indented trees.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	printer := ast.Printer{
		Output: stdio.Stdout,
		Pos:    posMode,
	}
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return err
		}

		root, err := parser.Parse(file, b)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			return err
		}
		if err := printer.Print(root); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return err
		}
	}
	return nil
}
