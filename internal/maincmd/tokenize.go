package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/helium-lang/helium/lang/scanner"
	"github.com/helium-lang/helium/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	mode, err := c.cfg.PosMode()
	if err != nil {
		return err
	}
	return TokenizeFiles(ctx, stdio, mode, args...)
}

// TokenizeFiles scans the source files and prints one token per line with
// its position. On error the scanned tokens are still printed, followed by
// the diagnostic on stderr.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return err
		}

		toks, err := scanner.Tokenize(file, b)
		for _, tok := range toks {
			if pos := token.FormatPos(posMode, tok.Pos); pos != "" {
				fmt.Fprintf(stdio.Stdout, "%s: ", pos)
			}
			fmt.Fprint(stdio.Stdout, tok.Kind)
			if lit := tok.Literal(); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			return err
		}
	}
	return nil
}
