package parser

import (
	"github.com/helium-lang/helium/lang/ast"
	"github.com/helium-lang/helium/lang/token"
)

// parseBlock parses statements until the terminator kind is reached. The
// terminator itself is not consumed.
func (p *parser) parseBlock(term token.Kind) *ast.Node {
	block := ast.New(ast.Block, ast.MarkerBlock, p.tok.Pos)
	for {
		p.skipNewlines()
		if p.tok.Kind == term {
			return block
		}
		if p.tok.Kind == token.EOF {
			p.errorf(p.tok.Pos, "premature end of file")
		}
		block.Append(p.parseStmt())
	}
}

func (p *parser) parseStmt() *ast.Node {
	switch p.tok.Kind {
	case token.SYMBOL:
		if la := p.lookahead1(); la.Kind == token.LBRACK || la.Kind == token.DOT {
			return p.parsePut()
		}
		return p.parseAssign()

	case token.CALL, token.FUNCTION:
		// expression statement, the produced value is discarded
		return p.parsePrimary()

	case token.LOOP:
		return p.parseLoop()

	case token.IF:
		return p.parseBranches()

	case token.INCLUDE:
		return p.parseInclude()

	case token.RETURN:
		return p.parseReturn()
	}

	p.errorExpected("a statement")
	panic("unreachable")
}

func (p *parser) parseAssign() *ast.Node {
	sym := p.consume(token.SYMBOL)
	p.consume(token.ASSIGN)
	stmt := ast.New(ast.Assign, sym.Raw, sym.Pos)
	stmt.Append(p.parseExpr())
	return stmt
}

// parsePut parses a table mutation statement, either t[expr] <- expr or
// t.key <- expr. The dot form stores the key as a string literal.
func (p *parser) parsePut() *ast.Node {
	sym := p.consume(token.SYMBOL)
	stmt := ast.New(ast.Put, sym.Raw, sym.Pos)
	stmt.Append(p.parseKeyAccess())
	p.consume(token.ASSIGN)
	stmt.Append(p.parseExpr())
	return stmt
}

// parseKeyAccess parses the [expr] or .key suffix shared by table reads
// and writes, returning the key expression.
func (p *parser) parseKeyAccess() *ast.Node {
	if p.consumeOptional(token.LBRACK) {
		key := p.parseExpr()
		p.consume(token.RBRACK)
		return key
	}
	p.consume(token.DOT)
	keySym := p.consume(token.SYMBOL)
	return ast.New(ast.String, keySym.Raw, keySym.Pos)
}

func (p *parser) parseLoop() *ast.Node {
	kw := p.consume(token.LOOP)
	stmt := ast.New(ast.Loop, kw.Raw, kw.Pos)
	stmt.Append(p.parseExpr())
	p.skipNewlines()
	p.consume(token.LBRACE)
	stmt.Append(p.parseBlock(token.RBRACE))
	p.consume(token.RBRACE)
	return stmt
}

// parseBranches parses an if statement and its else-if/else chain. Each
// link of the chain is a Branches node attached as the last child of the
// preceding one; a bare else terminates the chain with an "alt" node
// holding only its body block.
func (p *parser) parseBranches() *ast.Node {
	kw := p.consume(token.IF)
	head := ast.New(ast.Branches, ast.MarkerConditional, kw.Pos)
	head.Append(p.parseExpr())
	p.skipNewlines()
	p.consume(token.LBRACE)
	head.Append(p.parseBlock(token.RBRACE))
	p.consume(token.RBRACE)

	cur := head
	for p.tok.Kind == token.ELSE {
		elseKw := p.eat()
		if p.consumeOptional(token.IF) {
			next := ast.New(ast.Branches, ast.MarkerConditional, elseKw.Pos)
			next.Append(p.parseExpr())
			p.skipNewlines()
			p.consume(token.LBRACE)
			next.Append(p.parseBlock(token.RBRACE))
			p.consume(token.RBRACE)
			cur.Append(next)
			cur = next
			continue
		}

		alt := ast.New(ast.Branches, ast.MarkerAlt, elseKw.Pos)
		p.skipNewlines()
		p.consume(token.LBRACE)
		alt.Append(p.parseBlock(token.RBRACE))
		p.consume(token.RBRACE)
		cur.Append(alt)
		break
	}
	return head
}

func (p *parser) parseInclude() *ast.Node {
	kw := p.consume(token.INCLUDE)
	if p.tok.Kind != token.STRING {
		p.errorf(p.tok.Pos, "include expects a string literal")
	}
	path := p.eat()
	return ast.New(ast.Include, path.Raw, kw.Pos)
}

func (p *parser) parseReturn() *ast.Node {
	kw := p.consume(token.RETURN)
	stmt := ast.New(ast.Return, ast.MarkerRet, kw.Pos)
	stmt.Append(p.parseExpr())
	return stmt
}
