package parser

import (
	"github.com/helium-lang/helium/lang/ast"
	"github.com/helium-lang/helium/lang/token"
)

// binaryPrec is the authoritative operator precedence table. Higher binds
// tighter; all binary operators are left-associative.
var binaryPrec = map[string]int{
	"*": 10, "/": 10, "%": 10,
	"+": 9, "-": 9,
	"<": 8, ">": 8, "<=": 8, ">=": 8,
	"==": 7, "!=": 7,
	"&":  6,
	"^":  5,
	"|":  4,
	"&&": 3,
	"||": 2,
}

// unary operators apply only in primary position and bind tighter than any
// binary operator.
func isUnaryOp(raw string) bool {
	return raw == "-" || raw == "+" || raw == "!" || raw == "~"
}

// parseExpr parses an expression with the shunting-yard algorithm over two
// stacks. Newlines are not stripped here, so an expression ends at the end
// of its line.
func (p *parser) parseExpr() *ast.Node {
	operands := []*ast.Node{p.parsePrimary()}
	var ops []token.Token

	apply := func() {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]

		bin := ast.New(ast.BinaryExpr, op.Raw, op.Pos)
		bin.Append(left, right)
		operands = append(operands, bin)
	}

	for p.tok.Kind == token.OPERATOR {
		op := p.eat()
		prec, ok := binaryPrec[op.Raw]
		if !ok {
			p.errorf(op.Pos, "invalid binary operator '%s'", op.Raw)
		}
		for len(ops) > 0 && binaryPrec[ops[len(ops)-1].Raw] >= prec {
			apply()
		}
		ops = append(ops, op)
		operands = append(operands, p.parsePrimary())
	}
	for len(ops) > 0 {
		apply()
	}
	return operands[0]
}

// parsePrimary parses an atomic expression: a literal, a reference, a
// table access or constructor, a function definition, a call, a
// parenthesized expression or a unary application.
func (p *parser) parsePrimary() *ast.Node {
	switch p.tok.Kind {
	case token.INT:
		tok := p.eat()
		return ast.New(ast.Integer, tok.Raw, tok.Pos)
	case token.FLOAT:
		tok := p.eat()
		return ast.New(ast.Float, tok.Raw, tok.Pos)
	case token.BOOL:
		tok := p.eat()
		return ast.New(ast.Bool, tok.Raw, tok.Pos)
	case token.STRING:
		tok := p.eat()
		return ast.New(ast.String, tok.Raw, tok.Pos)
	case token.NULL:
		tok := p.eat()
		return ast.New(ast.Null, tok.Raw, tok.Pos)

	case token.SYMBOL:
		if la := p.lookahead1(); la.Kind == token.LBRACK || la.Kind == token.DOT {
			sym := p.eat()
			get := ast.New(ast.Get, sym.Raw, sym.Pos)
			get.Append(p.parseKeyAccess())
			return get
		}
		tok := p.eat()
		return ast.New(ast.Reference, tok.Raw, tok.Pos)

	case token.FUNCTION:
		return p.parseFunctionDef()

	case token.CALL:
		return p.parseCall()

	case token.LPAREN:
		p.eat()
		e := p.parseExpr()
		p.consume(token.RPAREN)
		return e

	case token.LBRACE:
		return p.parseTableInstance()

	case token.OPERATOR:
		op := p.eat()
		if !isUnaryOp(op.Raw) {
			p.errorf(op.Pos, "invalid unary operator '%s'", op.Raw)
		}
		un := ast.New(ast.UnaryExpr, op.Raw, op.Pos)
		un.Append(p.parsePrimary())
		return un

	case token.NEWLINE:
		p.errorf(p.tok.Pos, "unexpected newline in expression")
	case token.EOF:
		p.errorf(p.tok.Pos, "premature end of file")
	}

	p.errorExpected("an expression")
	panic("unreachable")
}

// parseCall parses a call expression: '@' callee '(' args ')'. The first
// child of the Call node is the callee expression, the remaining children
// are the argument expressions in order.
func (p *parser) parseCall() *ast.Node {
	at := p.consume(token.CALL)
	call := ast.New(ast.Call, at.Raw, at.Pos)
	call.Append(p.parsePrimary())

	p.consume(token.LPAREN)
	for p.tok.Kind != token.RPAREN {
		call.Append(p.parseExpr())
		if !p.consumeOptional(token.COMMA) {
			break
		}
	}
	p.consume(token.RPAREN)
	return call
}

// parseFunctionDef parses a function literal: '$' '(' params ')' '{' body
// '}'. The Function node has exactly two children: the parameter list and
// the body block.
func (p *parser) parseFunctionDef() *ast.Node {
	dollar := p.consume(token.FUNCTION)
	fn := ast.New(ast.Function, "fn", dollar.Pos)

	p.consume(token.LPAREN)
	params := ast.New(ast.Params, ast.MarkerArgs, p.tok.Pos)
	for p.tok.Kind == token.SYMBOL {
		sym := p.eat()
		params.Append(ast.New(ast.Param, sym.Raw, sym.Pos))
		if !p.consumeOptional(token.COMMA) {
			break
		}
	}
	p.consume(token.RPAREN)
	fn.Append(params)

	p.skipNewlines()
	p.consume(token.LBRACE)
	fn.Append(p.parseBlock(token.RBRACE))
	p.consume(token.RBRACE)
	return fn
}

// parseTableInstance parses a table constructor: '{' kv-pairs '}'.
// Newlines are stripped around the entries.
func (p *parser) parseTableInstance() *ast.Node {
	brace := p.consume(token.LBRACE)
	table := ast.New(ast.Table, "", brace.Pos)

	p.skipNewlines()
	for p.tok.Kind != token.RBRACE {
		kv := ast.New(ast.KvPair, "", p.tok.Pos)
		kv.Append(p.parseExpr())
		p.skipNewlines()
		p.consume(token.COLON)
		p.skipNewlines()
		kv.Append(p.parseExpr())
		table.Append(kv)

		p.skipNewlines()
		if !p.consumeOptional(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.consume(token.RBRACE)
	return table
}
