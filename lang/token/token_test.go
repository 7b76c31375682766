package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		if k.String() == "" {
			t.Errorf("missing string representation of kind %d", k)
		}
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'<-'", ASSIGN.GoString())
	require.Equal(t, "'{'", LBRACE.GoString())
	require.Equal(t, "symbol", SYMBOL.GoString())
	require.Equal(t, "eof", EOF.GoString())
}

func TestLookupKw(t *testing.T) {
	cases := map[string]Kind{
		"true":    BOOL,
		"false":   BOOL,
		"null":    NULL,
		"return":  RETURN,
		"if":      IF,
		"else":    ELSE,
		"loop":    LOOP,
		"include": INCLUDE,
		"fn":      FUNCTION,
		"x":       SYMBOL,
		"loops":   SYMBOL,
		"Return":  SYMBOL,
	}
	for ident, want := range cases {
		require.Equal(t, want, LookupKw(ident), "ident %q", ident)
	}
}

func TestLiteral(t *testing.T) {
	require.Equal(t, "x", Token{Kind: SYMBOL, Raw: "x"}.Literal())
	require.Equal(t, "123", Token{Kind: INT, Raw: "123"}.Literal())
	require.Equal(t, `"abc"`, Token{Kind: STRING, Raw: "abc"}.Literal())
	require.Equal(t, "+", Token{Kind: OPERATOR, Raw: "+"}.Literal())
	require.Equal(t, "", Token{Kind: ASSIGN, Raw: "<-"}.Literal())
	require.Equal(t, "", Token{Kind: NEWLINE, Raw: "\n"}.Literal())
	require.Equal(t, "", Token{Kind: EOF}.Literal())
	require.Equal(t, "fn", Token{Kind: FUNCTION, Raw: "fn"}.Literal())
	require.Equal(t, "", Token{Kind: FUNCTION, Raw: "$"}.Literal())
}
