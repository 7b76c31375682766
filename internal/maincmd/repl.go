package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mna/mainer"

	"github.com/helium-lang/helium/lang/compiler"
	"github.com/helium-lang/helium/lang/scanner"
	"github.com/helium-lang/helium/lang/token"
)

const (
	replPrompt     = ">>> "
	replMorePrompt = "... "
)

// Repl starts an interactive loop that compiles each entered snippet and
// prints the disassembly of the resulting program. Input is buffered until
// its brackets balance, so multi-line functions and blocks can be typed
// naturally.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      replPrompt,
		HistoryFile: c.cfg.Repl.HistoryFile,
	})
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		src := buf.String()
		if strings.TrimSpace(src) == "" {
			buf.Reset()
			continue
		}
		if !inputReady([]byte(src)) {
			rl.SetPrompt(replMorePrompt)
			continue
		}

		rl.SetPrompt(replPrompt)
		buf.Reset()

		prog, cerr := compiler.Compile("repl", []byte(src))
		if cerr != nil {
			scanner.PrintError(stdio.Stderr, cerr)
			continue
		}
		fmt.Fprint(stdio.Stdout, compiler.Disasm(prog))
	}
}

// inputReady reports whether the buffered input forms a complete snippet:
// brackets balance and the last meaningful token does not expect a
// right-hand side.
func inputReady(src []byte) bool {
	// a scan error means the input won't get better with more lines;
	// compile it and report
	toks, _ := scanner.Tokenize("repl", src)

	depth := 0
	last := token.Token{Kind: token.EOF}
	for _, tok := range toks {
		switch tok.Kind {
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACK:
			depth--
		case token.NEWLINE, token.EOF:
			continue
		}
		last = tok
	}
	if depth > 0 {
		return false
	}

	switch last.Kind {
	case token.OPERATOR, token.ASSIGN, token.COMMA, token.COLON,
		token.LOOP, token.IF, token.ELSE, token.RETURN, token.INCLUDE:
		return false
	}
	return true
}
