package ast

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helium-lang/helium/lang/token"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		if k.String() == "" {
			t.Errorf("missing string representation of kind %d", k)
		}
	}
}

func TestLabel(t *testing.T) {
	require.Equal(t, "block", New(Block, MarkerBlock, token.Position{}).Label())
	require.Equal(t, "assign x", New(Assign, "x", token.Position{}).Label())
	require.Equal(t, "binary +", New(BinaryExpr, "+", token.Position{}).Label())
	require.Equal(t, "table", New(Table, "", token.Position{}).Label())
}

func TestFormat(t *testing.T) {
	n := New(Assign, "x", token.Position{})
	n.Append(New(Integer, "1", token.Position{}))

	require.Equal(t, "assign x", fmt.Sprintf("%v", n))
	require.Equal(t, "assign x", fmt.Sprintf("%s", n))
	require.Equal(t, "assi", fmt.Sprintf("%4v", n))
	require.Equal(t, "  assign x", fmt.Sprintf("%10v", n))
	require.Equal(t, "assign x  ", fmt.Sprintf("%-10v", n))
	require.Equal(t, "assign x {children=1}", fmt.Sprintf("%#v", n))
}

func TestWalkOrder(t *testing.T) {
	root := New(Block, MarkerBlock, token.Position{})
	stmt := New(Assign, "x", token.Position{})
	bin := New(BinaryExpr, "+", token.Position{})
	bin.Append(New(Integer, "1", token.Position{}), New(Integer, "2", token.Position{}))
	stmt.Append(bin)
	root.Append(stmt)

	var enters []string
	var v VisitorFunc
	v = func(n *Node, dir VisitDirection) Visitor {
		if dir == VisitEnter {
			enters = append(enters, n.Label())
		}
		return v
	}
	WalkNode(v, root)
	require.Equal(t, []string{"block", "assign x", "binary +", "int 1", "int 2"}, enters)
}

func TestPrinter(t *testing.T) {
	root := New(Block, MarkerBlock, token.Position{})
	stmt := New(Assign, "x", token.Position{Filename: "t.he", Line: 1, Col: 1})
	stmt.Append(New(Integer, "1", token.Position{Filename: "t.he", Line: 1, Col: 6}))
	root.Append(stmt)

	var buf bytes.Buffer
	p := Printer{Output: &buf}
	require.NoError(t, p.Print(root))
	require.Equal(t, "block\n. assign x\n. . int 1\n", buf.String())

	buf.Reset()
	p = Printer{Output: &buf, Pos: token.PosLong}
	require.NoError(t, p.Print(stmt))
	require.Equal(t, "[t.he:1:1] assign x\n. [t.he:1:6] int 1\n", buf.String())
}

func TestRender(t *testing.T) {
	root := New(Block, MarkerBlock, token.Position{})

	assign := New(Assign, "x", token.Position{})
	bin := New(BinaryExpr, "+", token.Position{})
	bin.Append(New(Integer, "1", token.Position{}), New(Reference, "y", token.Position{}))
	assign.Append(bin)
	root.Append(assign)

	put := New(Put, "t", token.Position{})
	put.Append(New(String, "a", token.Position{}), New(Integer, "2", token.Position{}))
	root.Append(put)

	require.Equal(t, "x <- (1 + y)\nt[\"a\"] <- 2\n", Render(root))
}
