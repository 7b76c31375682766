// Package ast defines the types to represent the abstract syntax tree
// (AST) of the Helium language. Nodes form a uniform tagged tree: every
// node carries a kind, a value string (operator glyph, literal text,
// identifier name or marker label), a source position and an ordered list
// of children that it exclusively owns.
package ast

import (
	"fmt"
	"strings"

	"github.com/helium-lang/helium/lang/token"
)

// A Kind identifies the syntactic class of a node.
type Kind int8

//nolint:revive
const (
	Block Kind = iota
	Assign
	Reference
	Integer
	Float
	Bool
	String
	Null
	UnaryExpr
	BinaryExpr
	Call
	Function
	Params
	Param
	Loop
	Branches
	Return
	Include
	Table
	KvPair
	Put
	Get

	maxKind
)

func (k Kind) String() string { return kindNames[k] }

var kindNames = [...]string{
	Block:      "block",
	Assign:     "assign",
	Reference:  "reference",
	Integer:    "int",
	Float:      "float",
	Bool:       "bool",
	String:     "string",
	Null:       "null",
	UnaryExpr:  "unary",
	BinaryExpr: "binary",
	Call:       "call",
	Function:   "function",
	Params:     "params",
	Param:      "param",
	Loop:       "loop",
	Branches:   "branches",
	Return:     "return",
	Include:    "include",
	Table:      "table",
	KvPair:     "kvpair",
	Put:        "put",
	Get:        "get",
}

// Marker labels carried in the Value field of structural nodes.
const (
	MarkerBlock       = "block"
	MarkerConditional = "conditional"
	MarkerAlt         = "alt"
	MarkerArgs        = "args"
	MarkerRet         = "ret"
)

// A Node is a single node of the tree. The tree is acyclic and a node
// exclusively owns its children.
type Node struct {
	Kind     Kind
	Value    string
	Pos      token.Position
	Children []*Node
}

// New creates a node of the specified kind at pos.
func New(kind Kind, value string, pos token.Position) *Node {
	return &Node{Kind: kind, Value: value, Pos: pos}
}

// Append appends children to the node, in order.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Child returns the i-th child, nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Label returns the node's display label: the kind name, followed by the
// value when it adds information over the kind alone.
func (n *Node) Label() string {
	if n.Value == "" || n.Value == n.Kind.String() {
		return n.Kind.String()
	}
	return n.Kind.String() + " " + n.Value
}

// Format implements fmt.Formatter so nodes print a description of
// themselves. The supported verbs are 'v' and 's'; a width truncates or
// pads the label, the '-' flag pads on the right and the '#' flag appends
// the child count.
func (n *Node) Format(f fmt.State, verb rune) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label := n.Label()
	if w, ok := f.Width(); ok {
		if len(label) >= w {
			label = label[:w]
		} else if f.Flag('-') {
			label += strings.Repeat(" ", w-len(label))
		} else {
			label = strings.Repeat(" ", w-len(label)) + label
		}
	}
	fmt.Fprint(f, label)
	if f.Flag('#') {
		fmt.Fprintf(f, " {children=%d}", len(n.Children))
	}
}

// Walk enters each child of the node to implement the Visitor pattern.
func (n *Node) Walk(v Visitor) {
	for _, c := range n.Children {
		WalkNode(v, c)
	}
}
