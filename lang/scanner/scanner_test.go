package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helium-lang/helium/lang/token"
)

type tokval struct {
	kind token.Kind
	raw  string
}

func kinds(toks []token.Token) []tokval {
	res := make([]tokval, len(toks))
	for i, tok := range toks {
		res[i] = tokval{tok.Kind, tok.Raw}
	}
	return res
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		src  string
		want []tokval
	}{
		{"", []tokval{{token.EOF, ""}}},
		{"   \t\r", []tokval{{token.EOF, ""}}},
		{"x", []tokval{{token.SYMBOL, "x"}, {token.EOF, ""}}},
		{"_x1", []tokval{{token.SYMBOL, "_x1"}, {token.EOF, ""}}},
		{"123", []tokval{{token.INT, "123"}, {token.EOF, ""}}},
		{"1.25", []tokval{{token.FLOAT, "1.25"}, {token.EOF, ""}}},
		{"1.x", []tokval{{token.INT, "1"}, {token.DOT, "."}, {token.SYMBOL, "x"}, {token.EOF, ""}}},
		{`"abc"`, []tokval{{token.STRING, "abc"}, {token.EOF, ""}}},
		{`""`, []tokval{{token.STRING, ""}, {token.EOF, ""}}},
		{"true false null", []tokval{{token.BOOL, "true"}, {token.BOOL, "false"}, {token.NULL, "null"}, {token.EOF, ""}}},
		{"if else loop return include fn", []tokval{
			{token.IF, "if"}, {token.ELSE, "else"}, {token.LOOP, "loop"},
			{token.RETURN, "return"}, {token.INCLUDE, "include"}, {token.FUNCTION, "fn"},
			{token.EOF, ""},
		}},
		{"x <- 1", []tokval{{token.SYMBOL, "x"}, {token.ASSIGN, "<-"}, {token.INT, "1"}, {token.EOF, ""}}},
		{"< <= > >= == != && ||", []tokval{
			{token.OPERATOR, "<"}, {token.OPERATOR, "<="}, {token.OPERATOR, ">"},
			{token.OPERATOR, ">="}, {token.OPERATOR, "=="}, {token.OPERATOR, "!="},
			{token.OPERATOR, "&&"}, {token.OPERATOR, "||"},
			{token.EOF, ""},
		}},
		{"+-*/%^~!&|", []tokval{
			{token.OPERATOR, "+"}, {token.OPERATOR, "-"}, {token.OPERATOR, "*"},
			{token.OPERATOR, "/"}, {token.OPERATOR, "%"}, {token.OPERATOR, "^"},
			{token.OPERATOR, "~"}, {token.OPERATOR, "!"}, {token.OPERATOR, "&"},
			{token.OPERATOR, "|"},
			{token.EOF, ""},
		}},
		{"@f($)", []tokval{
			{token.CALL, "@"}, {token.SYMBOL, "f"}, {token.LPAREN, "("},
			{token.FUNCTION, "$"}, {token.RPAREN, ")"},
			{token.EOF, ""},
		}},
		{"{}[](),:.", []tokval{
			{token.LBRACE, "{"}, {token.RBRACE, "}"}, {token.LBRACK, "["},
			{token.RBRACK, "]"}, {token.LPAREN, "("}, {token.RPAREN, ")"},
			{token.COMMA, ","}, {token.COLON, ":"}, {token.DOT, "."},
			{token.EOF, ""},
		}},
		{"a\nb", []tokval{
			{token.SYMBOL, "a"}, {token.NEWLINE, "\n"}, {token.SYMBOL, "b"},
			{token.EOF, ""},
		}},
		// comments are consumed through end of line and filtered out
		{"a # comment\nb", []tokval{
			{token.SYMBOL, "a"}, {token.NEWLINE, "\n"}, {token.SYMBOL, "b"},
			{token.EOF, ""},
		}},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize("test.he", []byte(c.src))
			require.NoError(t, err)
			require.Equal(t, c.want, kinds(toks))
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src       string
		msg       string
		line, col int
	}{
		{"x <- =", "unknown character '='", 1, 6},
		{"?", "unknown character '?'", 1, 1},
		{"a <- `b`", "unknown character '`'", 1, 6},
		{`x <- "abc`, "unterminated string literal", 1, 6},
		{"x <- \"abc\ny", "unterminated string literal", 1, 6},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := Tokenize("test.he", []byte(c.src))
			require.Error(t, err)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			require.Equal(t, c.msg, perr.Msg)
			require.Equal(t, c.line, perr.Pos.Line)
			require.Equal(t, c.col, perr.Pos.Col)
			require.Equal(t, "test.he", perr.Pos.Filename)
		})
	}
}

func TestTokenPositions(t *testing.T) {
	src := "x <- 1\ny <- 2\n"
	toks, err := Tokenize("test.he", []byte(src))
	require.NoError(t, err)

	type pos struct{ line, col, off, lineOff int }
	want := []pos{
		{1, 1, 0, 0},  // x
		{1, 3, 2, 0},  // <-
		{1, 6, 5, 0},  // 1
		{1, 7, 6, 0},  // newline
		{2, 1, 7, 7},  // y
		{2, 3, 9, 7},  // <-
		{2, 6, 12, 7}, // 2
		{2, 7, 13, 7}, // newline
		{3, 1, 14, 14},
	}
	require.Len(t, toks, len(want))
	for i, tok := range toks {
		require.Equal(t, want[i], pos{tok.Pos.Line, tok.Pos.Col, tok.Pos.Offset, tok.Pos.LineOffset}, "token %d (%s)", i, tok.Kind)
	}
}

// lexer totality: every successful scan ends with exactly one EOF token,
// and offsets never decrease.
func TestTokenizeTotality(t *testing.T) {
	sources := []string{
		"",
		"x <- 1 + 2 * 3",
		"t <- { \"a\" : 1, \"b\" : 2 }\nt.a <- 3\nz <- t[\"a\"]",
		"f <- $(x, y) {\n\treturn x + y\n}\nr <- @f(1, 2)",
		"loop i < 10 {\n\ti <- i + 1\n}",
		"if a < b {\n\tc <- 1\n} else if a == b {\n\tc <- 2\n} else {\n\tc <- 3\n}",
		"# only a comment",
	}

	for _, src := range sources {
		toks, err := Tokenize("test.he", []byte(src))
		require.NoError(t, err, "source %q", src)

		eofs := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				eofs++
			}
			require.NotEqual(t, token.WHITESPACE, tok.Kind)
			require.NotEqual(t, token.COMMENT, tok.Kind)
		}
		require.Equal(t, 1, eofs, "source %q", src)
		require.Equal(t, token.EOF, toks[len(toks)-1].Kind)

		for i := 1; i < len(toks); i++ {
			require.GreaterOrEqual(t, toks[i].Pos.Offset, toks[i-1].Pos.Offset)
			require.GreaterOrEqual(t, toks[i].Pos.Line, toks[i-1].Pos.Line)
		}
	}
}

func TestScanComments(t *testing.T) {
	var s Scanner
	s.Init("test.he", []byte("# header\nx"))

	tok, err := s.Scan()
	require.NoError(t, err)
	require.Equal(t, token.COMMENT, tok.Kind)
	require.Equal(t, "# header", tok.Raw)

	tok, err = s.Scan()
	require.NoError(t, err)
	require.Equal(t, token.NEWLINE, tok.Kind)

	tok, err = s.Scan()
	require.NoError(t, err)
	require.Equal(t, token.SYMBOL, tok.Kind)
}

func TestErrorDetail(t *testing.T) {
	_, err := Tokenize("main.he", []byte("y <- =\n"))
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "[err] unknown character '=' (1, 6) in main.he", perr.Error())

	want := "[err] unknown character '=' (1, 6) in main.he:\n" +
		"\t|\n" +
		"\t| 0001 y <- =\n" +
		"\t| ~~~~~~~~~~^\n"
	require.Equal(t, want, perr.Detail())
}
