// Package parser implements the parser that transforms Helium source code
// into an abstract syntax tree (AST). Statements are parsed by recursive
// descent; expressions by the shunting-yard algorithm over a fixed
// precedence table.
package parser

import (
	"fmt"

	"github.com/helium-lang/helium/lang/ast"
	"github.com/helium-lang/helium/lang/scanner"
	"github.com/helium-lang/helium/lang/token"
)

// Parse tokenizes and parses src and returns the root Block node of the
// AST. The error, if non-nil, is a positioned *scanner.Error describing
// the first failure; nothing is recovered past it.
func Parse(filename string, src []byte) (*ast.Node, error) {
	toks, err := scanner.Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(src, toks)
}

// ParseTokens parses an already-tokenized stream. The src buffer is only
// used to render error diagnostics.
func ParseTokens(src []byte, toks []token.Token) (root *ast.Node, err error) {
	var p parser
	p.init(src, toks)

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*scanner.Error)
			if !ok {
				panic(r)
			}
			root, err = nil, perr
		}
	}()

	root = p.parseBlock(token.EOF)
	return root, nil
}

// parser parses a token stream and generates an AST. Parse functions
// report errors by panicking with a *scanner.Error, recovered at the
// ParseTokens level; the first error aborts the parse.
type parser struct {
	src  []byte
	toks []token.Token
	idx  int
	tok  token.Token // current token
}

func (p *parser) init(src []byte, toks []token.Token) {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	p.src = src
	p.toks = toks
	p.idx = 0
	p.tok = toks[0]
}

// lookahead1 returns the token following the current one without consuming
// anything. At the end of the stream it returns the EOF token.
func (p *parser) lookahead1() token.Token {
	if p.idx+1 < len(p.toks) {
		return p.toks[p.idx+1]
	}
	return p.toks[len(p.toks)-1]
}

// eat consumes and returns the current token.
func (p *parser) eat() token.Token {
	cur := p.tok
	if p.idx+1 < len(p.toks) {
		p.idx++
		p.tok = p.toks[p.idx]
	}
	return cur
}

// consume returns the current token and consumes it if it is of the
// expected kind, otherwise it reports an error.
func (p *parser) consume(kind token.Kind) token.Token {
	if p.tok.Kind != kind {
		p.errorExpected(kind.GoString())
	}
	return p.eat()
}

// consumeOptional consumes the current token if it is of the expected
// kind and reports whether it did.
func (p *parser) consumeOptional(kind token.Kind) bool {
	if p.tok.Kind != kind {
		return false
	}
	p.eat()
	return true
}

// skipNewlines consumes any run of newline tokens. Newlines separate
// statements and are stripped between them, but never inside an
// expression.
func (p *parser) skipNewlines() {
	for p.tok.Kind == token.NEWLINE {
		p.eat()
	}
}

func (p *parser) errorf(pos token.Position, format string, args ...interface{}) {
	panic(scanner.NewError(p.src, pos, fmt.Sprintf(format, args...)))
}

func (p *parser) errorExpected(what string) {
	found := p.tok.Kind.GoString()
	if lit := p.tok.Literal(); lit != "" {
		found = lit
	}
	p.errorf(p.tok.Pos, "expected %s, found %s", what, found)
}
