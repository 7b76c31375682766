// Package scanner implements the lexer that turns Helium source text into a
// stream of positioned tokens. Source is treated as bytes (ASCII/UTF-8
// transparent); the only line terminator is '\n' and a carriage return is
// plain whitespace.
package scanner

import (
	"fmt"

	"github.com/helium-lang/helium/lang/token"
)

// Tokenize scans src in full and returns all tokens in source order,
// terminated by exactly one EOF token. Whitespace and comments never appear
// in the result; newlines do, as they terminate statements. On an
// unrecognizable character the tokens scanned so far are returned along
// with a positioned *Error.
func Tokenize(filename string, src []byte) ([]token.Token, error) {
	var s Scanner
	s.Init(filename, src)

	var toks []token.Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return toks, err
		}
		if tok.Kind == token.COMMENT {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Scanner tokenizes a source file for the parser to consume. Comments are
// returned as COMMENT tokens so that tools can display them; Tokenize
// filters them out.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte

	// mutable scanning state, the position of the next character to consume
	off     int
	line    int
	col     int
	lineOff int
}

// Init initializes the scanner to tokenize a new source buffer.
func (s *Scanner) Init(filename string, src []byte) {
	s.filename = filename
	s.src = src
	s.off = 0
	s.line = 1
	s.col = 1
	s.lineOff = 0
}

// pos returns the position of the next character to consume.
func (s *Scanner) pos() token.Position {
	return token.Position{
		Filename:   s.filename,
		Line:       s.line,
		Col:        s.col,
		Offset:     s.off,
		LineOffset: s.lineOff,
	}
}

// cur returns the current character, 0 at end of file.
func (s *Scanner) cur() byte {
	if s.off < len(s.src) {
		return s.src[s.off]
	}
	return 0
}

// peek returns the character following the current one without advancing
// the scanner, 0 at end of file.
func (s *Scanner) peek() byte {
	if s.off+1 < len(s.src) {
		return s.src[s.off+1]
	}
	return 0
}

func (s *Scanner) eof() bool { return s.off >= len(s.src) }

// advance consumes the current character, updating the line, column and
// line-offset cursor on newlines.
func (s *Scanner) advance() {
	if s.eof() {
		return
	}
	nl := s.src[s.off] == '\n'
	s.off++
	s.col++
	if nl {
		s.line++
		s.col = 1
		s.lineOff = s.off
	}
}

// advance only if the current character matches c.
func (s *Scanner) advanceIf(c byte) bool {
	if !s.eof() && s.src[s.off] == c {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) errorf(pos token.Position, format string, args ...interface{}) error {
	return NewError(s.src, pos, fmt.Sprintf(format, args...))
}

// Scan returns the next token in the source buffer. The token's position is
// captured at the character starting the token and is immutable once the
// token is emitted.
func (s *Scanner) Scan() (token.Token, error) {
	for isSpace(s.cur()) && !s.eof() {
		s.advance()
	}

	pos := s.pos()
	start := s.off

	if s.eof() {
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	}

	cur := s.cur()
	switch {
	case isLetter(cur):
		// keywords and identifiers
		for isLetter(s.cur()) || isDigit(s.cur()) {
			s.advance()
		}
		lit := string(s.src[start:s.off])
		return token.Token{Kind: token.LookupKw(lit), Raw: lit, Pos: pos}, nil

	case isDigit(cur):
		// integer and float
		kind := token.INT
		for isDigit(s.cur()) {
			s.advance()
		}
		if s.cur() == '.' && isDigit(s.peek()) {
			kind = token.FLOAT
			s.advance()
			for isDigit(s.cur()) {
				s.advance()
			}
		}
		return token.Token{Kind: kind, Raw: string(s.src[start:s.off]), Pos: pos}, nil
	}

	s.advance() // always make progress
	switch cur {
	case '\n':
		return token.Token{Kind: token.NEWLINE, Raw: "\n", Pos: pos}, nil

	case '"':
		// string literal, no escape processing beyond the literal bytes
		for s.cur() != '"' {
			if s.eof() || s.cur() == '\n' {
				return token.Token{}, s.errorf(pos, "unterminated string literal")
			}
			s.advance()
		}
		lit := string(s.src[start+1 : s.off])
		s.advance() // closing quote
		return token.Token{Kind: token.STRING, Raw: lit, Pos: pos}, nil

	case '#':
		// comment, consume through end of line (newline not included)
		for !s.eof() && s.cur() != '\n' {
			s.advance()
		}
		return token.Token{Kind: token.COMMENT, Raw: string(s.src[start:s.off]), Pos: pos}, nil

	case '<':
		// assignment, comparison or less-than
		if s.advanceIf('-') {
			return token.Token{Kind: token.ASSIGN, Raw: "<-", Pos: pos}, nil
		}
		s.advanceIf('=')
		return token.Token{Kind: token.OPERATOR, Raw: string(s.src[start:s.off]), Pos: pos}, nil

	case '>':
		s.advanceIf('=')
		return token.Token{Kind: token.OPERATOR, Raw: string(s.src[start:s.off]), Pos: pos}, nil

	case '=':
		// bare '=' is not an operator, only '=='
		if s.advanceIf('=') {
			return token.Token{Kind: token.OPERATOR, Raw: "==", Pos: pos}, nil
		}
		return token.Token{}, s.errorf(pos, "unknown character '='")

	case '!':
		if s.advanceIf('=') {
			return token.Token{Kind: token.OPERATOR, Raw: "!=", Pos: pos}, nil
		}
		return token.Token{Kind: token.OPERATOR, Raw: "!", Pos: pos}, nil

	case '&':
		s.advanceIf('&')
		return token.Token{Kind: token.OPERATOR, Raw: string(s.src[start:s.off]), Pos: pos}, nil

	case '|':
		s.advanceIf('|')
		return token.Token{Kind: token.OPERATOR, Raw: string(s.src[start:s.off]), Pos: pos}, nil

	case '+', '-', '*', '/', '%', '^', '~':
		return token.Token{Kind: token.OPERATOR, Raw: string(cur), Pos: pos}, nil

	case '@':
		return token.Token{Kind: token.CALL, Raw: "@", Pos: pos}, nil
	case '$':
		return token.Token{Kind: token.FUNCTION, Raw: "$", Pos: pos}, nil
	case ',':
		return token.Token{Kind: token.COMMA, Raw: ",", Pos: pos}, nil
	case ':':
		return token.Token{Kind: token.COLON, Raw: ":", Pos: pos}, nil
	case '.':
		return token.Token{Kind: token.DOT, Raw: ".", Pos: pos}, nil
	case '(':
		return token.Token{Kind: token.LPAREN, Raw: "(", Pos: pos}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Raw: ")", Pos: pos}, nil
	case '{':
		return token.Token{Kind: token.LBRACE, Raw: "{", Pos: pos}, nil
	case '}':
		return token.Token{Kind: token.RBRACE, Raw: "}", Pos: pos}, nil
	case '[':
		return token.Token{Kind: token.LBRACK, Raw: "[", Pos: pos}, nil
	case ']':
		return token.Token{Kind: token.RBRACK, Raw: "]", Pos: pos}, nil
	}

	return token.Token{}, s.errorf(pos, "unknown character '%s'", string(cur))
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
