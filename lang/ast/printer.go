package ast

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/helium-lang/helium/lang/token"
)

// Printer controls pretty-printing of the AST nodes as an indented tree,
// one node per line.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Pos indicates the position printing mode.
	Pos token.PosMode
}

// Print pretty-prints the tree rooted at n.
func (p *Printer) Print(n *Node) error {
	if p.Output == nil {
		return errors.New("printer requires an output writer")
	}
	pp := &printer{w: p.Output, pos: p.Pos}
	WalkNode(pp, n)
	return pp.err
}

type printer struct {
	w     io.Writer
	pos   token.PosMode
	depth int
	err   error
}

func (p *printer) Visit(n *Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	indent := strings.Repeat(". ", p.depth-1)
	if p.pos == token.PosNone {
		_, p.err = fmt.Fprintf(p.w, "%s%v\n", indent, n)
	} else {
		_, p.err = fmt.Fprintf(p.w, "%s[%s] %v\n", indent, token.FormatPos(p.pos, n.Pos), n)
	}
	return p
}

// Render prints the tree rooted at n back to parseable source text.
// Expressions are rendered fully parenthesized, so re-parsing the result
// yields a structurally equal tree (positions aside).
func Render(n *Node) string {
	var sb strings.Builder
	if n.Kind == Block {
		renderBlock(&sb, n, 0)
	} else {
		renderStmt(&sb, n, 0)
	}
	return sb.String()
}

func renderBlock(sb *strings.Builder, n *Node, depth int) {
	for _, stmt := range n.Children {
		sb.WriteString(strings.Repeat("\t", depth))
		renderStmt(sb, stmt, depth)
		sb.WriteByte('\n')
	}
}

func renderStmt(sb *strings.Builder, n *Node, depth int) {
	switch n.Kind {
	case Assign:
		fmt.Fprintf(sb, "%s <- ", n.Value)
		renderExpr(sb, n.Child(0), depth)

	case Put:
		fmt.Fprintf(sb, "%s[", n.Value)
		renderExpr(sb, n.Child(0), depth)
		sb.WriteString("] <- ")
		renderExpr(sb, n.Child(1), depth)

	case Loop:
		sb.WriteString("loop ")
		renderExpr(sb, n.Child(0), depth)
		renderBraced(sb, n.Child(1), depth)

	case Branches:
		renderBranches(sb, n, depth)

	case Return:
		sb.WriteString("return ")
		renderExpr(sb, n.Child(0), depth)

	case Include:
		fmt.Fprintf(sb, "include %q", n.Value)

	default:
		// expression statement (call or function literal)
		renderExpr(sb, n, depth)
	}
}

func renderBranches(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString("if ")
	renderExpr(sb, n.Child(0), depth)
	renderBraced(sb, n.Child(1), depth)

	for next := n.Child(2); next != nil; {
		if next.Value == MarkerAlt {
			sb.WriteString(" else")
			renderBraced(sb, next.Child(0), depth)
			return
		}
		sb.WriteString(" else if ")
		renderExpr(sb, next.Child(0), depth)
		renderBraced(sb, next.Child(1), depth)
		next = next.Child(2)
	}
}

func renderBraced(sb *strings.Builder, block *Node, depth int) {
	sb.WriteString(" {\n")
	renderBlock(sb, block, depth+1)
	sb.WriteString(strings.Repeat("\t", depth))
	sb.WriteByte('}')
}

func renderExpr(sb *strings.Builder, n *Node, depth int) {
	switch n.Kind {
	case Integer, Float, Bool, Null, Reference:
		sb.WriteString(n.Value)

	case String:
		fmt.Fprintf(sb, "%q", n.Value)

	case UnaryExpr:
		sb.WriteString(n.Value)
		renderExpr(sb, n.Child(0), depth)

	case BinaryExpr:
		sb.WriteByte('(')
		renderExpr(sb, n.Child(0), depth)
		fmt.Fprintf(sb, " %s ", n.Value)
		renderExpr(sb, n.Child(1), depth)
		sb.WriteByte(')')

	case Call:
		sb.WriteByte('@')
		renderExpr(sb, n.Child(0), depth)
		sb.WriteByte('(')
		for i, arg := range n.Children[1:] {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderExpr(sb, arg, depth)
		}
		sb.WriteByte(')')

	case Function:
		sb.WriteString("$(")
		for i, param := range n.Child(0).Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(param.Value)
		}
		sb.WriteByte(')')
		renderBraced(sb, n.Child(1), depth)

	case Table:
		if len(n.Children) == 0 {
			sb.WriteString("{ }")
			return
		}
		sb.WriteString("{ ")
		for i, kv := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderExpr(sb, kv.Child(0), depth)
			sb.WriteString(" : ")
			renderExpr(sb, kv.Child(1), depth)
		}
		sb.WriteString(" }")

	case Get:
		fmt.Fprintf(sb, "%s[", n.Value)
		renderExpr(sb, n.Child(0), depth)
		sb.WriteByte(']')
	}
}
