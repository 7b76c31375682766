// Package compiler takes a parsed AST and lowers it to bytecode for the
// Helium virtual machine in a single pass, resolving every name to a slot
// and a scope class as it goes. A compilation either produces a complete
// program or fails with the first positioned error; partial programs are
// never returned.
package compiler

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/helium-lang/helium/lang/ast"
	"github.com/helium-lang/helium/lang/parser"
	"github.com/helium-lang/helium/lang/scanner"
	"github.com/helium-lang/helium/lang/token"
)

// Compile runs the full pipeline on src and returns the top-level program.
// The error, if non-nil, is a positioned *scanner.Error from whichever
// stage failed first.
func Compile(filename string, src []byte) (*Program, error) {
	root, err := parser.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	prog := NewProgram(filename)
	if err := compileInto(prog, src, root); err != nil {
		return nil, err
	}
	prog.sever()
	return prog, nil
}

// CompileFile reads and compiles the file at path.
func CompileFile(path string) (*Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, b)
}

// compileInto compiles the statements of block into prog. Include
// directives compile the included file into the same program within this
// call, so their errors are recovered here too.
func compileInto(prog *Program, src []byte, block *ast.Node) (err error) {
	c := &compiler{prog: prog, src: src}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*scanner.Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()

	c.block(block)
	return nil
}

// compiler holds the state for compiling one program. Lowering functions
// report errors by panicking with a *scanner.Error, recovered at the
// compileInto level; the first error aborts the compilation.
type compiler struct {
	prog *Program
	src  []byte
}

func (c *compiler) errorf(pos token.Position, format string, args ...interface{}) {
	panic(scanner.NewError(c.src, pos, fmt.Sprintf(format, args...)))
}

// emit appends an instruction and returns its index. Appending is
// monotone: indices never shift, so forward jumps can be patched in place.
func (c *compiler) emit(pos token.Position, in Instr) int {
	c.prog.recordLine(pos.Line)
	c.prog.Code = append(c.prog.Code, in)
	return len(c.prog.Code) - 1
}

// patch rewrites the operand of the jump instruction at index at to
// target, keeping its opcode.
func (c *compiler) patch(at int, target int, pos token.Position) {
	if target > math.MaxInt16 {
		c.errorf(pos, "jump target out of range")
	}
	c.prog.Code[at] = MakeS(c.prog.Code[at].Op(), int16(target))
}

// index16 narrows a table index to the operand width.
func (c *compiler) index16(pos token.Position, idx int, what string) uint16 {
	if idx > math.MaxUint16 {
		c.errorf(pos, "too many %s", what)
	}
	return uint16(idx)
}

func (c *compiler) block(n *ast.Node) {
	for _, stmt := range n.Children {
		c.stmt(stmt)
	}
}

func (c *compiler) stmt(n *ast.Node) {
	switch n.Kind {
	case ast.Assign:
		c.expr(n.Child(0))
		slot, scope := c.prog.resolve(n.Value, true)
		c.emitStore(n.Pos, slot, scope, n.Value)

	case ast.Put:
		c.put(n)

	case ast.Call, ast.Function:
		// expression statement, discard the produced value
		c.expr(n)
		c.emit(n.Pos, Make(POP))

	case ast.Loop:
		c.loop(n)

	case ast.Branches:
		c.branches(n)

	case ast.Return:
		c.expr(n.Child(0))
		c.emit(n.Pos, Make(RET))

	case ast.Include:
		c.include(n)

	default:
		c.errorf(n.Pos, "unexpected statement")
	}
}

func (c *compiler) emitStore(pos token.Position, slot int, scope Scope, name string) {
	arg := c.index16(pos, slot, "symbols")
	switch scope {
	case Local:
		c.emit(pos, MakeU(STORL, arg))
	case Closed:
		c.emit(pos, MakeU(STORC, arg))
	case Global:
		c.emit(pos, MakeU(STORG, arg))
	default:
		c.errorf(pos, "undefined symbol: %s", name)
	}
}

func (c *compiler) emitLoad(pos token.Position, name string) {
	slot, scope := c.prog.resolve(name, false)
	arg := c.index16(pos, slot, "symbols")
	switch scope {
	case Local:
		c.emit(pos, MakeU(LOADL, arg))
	case Closed:
		c.emit(pos, MakeU(LOADC, arg))
	case Global:
		c.emit(pos, MakeU(LOADG, arg))
	default:
		c.errorf(pos, "undefined symbol: %s", name)
	}
}

// binaryOps maps operator glyphs to their instruction. The logical
// opcodes double for the single-character forms.
var binaryOps = map[string]Opcode{
	"+": ADD, "-": SUB, "*": MUL, "/": DIV, "%": MOD,
	"==": EQ, "!=": NE, "<": LT, "<=": LE, ">": GT, ">=": GE,
	"&&": AND, "||": OR, "&": AND, "|": OR,
}

func (c *compiler) expr(n *ast.Node) {
	switch n.Kind {
	case ast.Integer:
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			c.errorf(n.Pos, "integer literal out of range")
		}
		c.pushConstant(n.Pos, Int(v))

	case ast.Float:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			c.errorf(n.Pos, "float literal out of range")
		}
		c.pushConstant(n.Pos, Float(v))

	case ast.Bool:
		c.pushConstant(n.Pos, Bool(n.Value == "true"))

	case ast.String:
		c.pushConstant(n.Pos, String(n.Value))

	case ast.Null:
		c.pushConstant(n.Pos, Null())

	case ast.Reference:
		c.emitLoad(n.Pos, n.Value)

	case ast.UnaryExpr:
		c.expr(n.Child(0))
		switch n.Value {
		case "-":
			c.emit(n.Pos, Make(NEG))
		case "!":
			c.emit(n.Pos, Make(NOT))
		case "+":
			// identity, nothing to emit
		default:
			c.errorf(n.Pos, "no instruction for unary operator '%s'", n.Value)
		}

	case ast.BinaryExpr:
		c.expr(n.Child(0))
		c.expr(n.Child(1))
		op, ok := binaryOps[n.Value]
		if !ok {
			c.errorf(n.Pos, "no instruction for operator '%s'", n.Value)
		}
		c.emit(n.Pos, Make(op))

	case ast.Call:
		c.call(n)

	case ast.Function:
		c.function(n)

	case ast.Table:
		c.table(n)

	case ast.Get:
		c.emitLoad(n.Pos, n.Value)
		c.expr(n.Child(0))
		c.emit(n.Pos, Make(TGET))

	default:
		c.errorf(n.Pos, "unexpected expression")
	}
}

func (c *compiler) pushConstant(pos token.Position, v Value) {
	k := c.prog.registerConstant(v)
	c.emit(pos, MakeU(PUSHK, c.index16(pos, k, "constants")))
}

// call lowers a call expression: the callee first, then the arguments left
// to right, then CALL with the arity as operand.
func (c *compiler) call(n *ast.Node) {
	c.expr(n.Child(0))
	args := n.Children[1:]
	for _, arg := range args {
		c.expr(arg)
	}
	c.emit(n.Pos, MakeU(CALL, c.index16(n.Pos, len(args), "arguments")))
}

// function compiles a function literal into a child program, appends it to
// the constant pool and emits PUSHK plus CLOSE with the number of slots
// the child captured from enclosing functions.
func (c *compiler) function(n *ast.Node) {
	params, body := n.Child(0), n.Child(1)

	child := newChild(c.prog, len(params.Children))
	for _, param := range params.Children {
		if _, scope := child.registerUniqueLocal(param.Value); scope == DuplicateInScope {
			c.errorf(param.Pos, "duplicate symbol in scope: %s", param.Value)
		}
	}

	cc := &compiler{prog: child, src: c.src}
	cc.block(body)
	// every function body ends by returning null
	cc.pushConstant(token.Position{}, Null())
	cc.emit(token.Position{}, Make(RET))

	k := c.prog.registerConstant(Prog(child))
	c.emit(n.Pos, MakeU(PUSHK, c.index16(n.Pos, k, "constants")))
	c.emit(n.Pos, MakeU(CLOSE, c.index16(n.Pos, len(child.closures), "closure slots")))
}

// loop lowers a pre-tested loop: condition, JIF past the body, body, JMP
// back to the condition.
func (c *compiler) loop(n *ast.Node) {
	start := len(c.prog.Code)
	c.expr(n.Child(0))
	jif := c.emit(n.Pos, MakeS(JIF, 0))
	c.block(n.Child(1))
	c.emit(n.Pos, MakeS(JMP, int16(start)))
	c.patch(jif, len(c.prog.Code), n.Pos)
}

// branches lowers an if/else-if/else chain. Every conditional branch jumps
// past its body on a false condition; every branch but the last jumps to
// the common end after its body.
func (c *compiler) branches(n *ast.Node) {
	var endJumps []int

	node := n
	for node != nil {
		if node.Value == ast.MarkerAlt {
			c.block(node.Child(0))
			node = nil
			continue
		}

		next := node.Child(2)
		c.expr(node.Child(0))
		jif := c.emit(node.Pos, MakeS(JIF, 0))
		c.block(node.Child(1))
		if next != nil {
			endJumps = append(endJumps, c.emit(node.Pos, MakeS(JMP, 0)))
		}
		c.patch(jif, len(c.prog.Code), node.Pos)
		node = next
	}

	end := len(c.prog.Code)
	for _, at := range endJumps {
		c.patch(at, end, n.Pos)
	}
}

// table lowers a table constructor. TPUT consumes (table, key, value) and
// leaves the table on the stack for the next entry, so a single TNEW
// feeds every pair.
func (c *compiler) table(n *ast.Node) {
	c.emit(n.Pos, Make(TNEW))
	for _, kv := range n.Children {
		c.expr(kv.Child(0))
		c.expr(kv.Child(1))
		c.emit(kv.Pos, Make(TPUT))
	}
}

// put lowers a table mutation statement: load the table binding, then the
// key and value, then TPUT.
func (c *compiler) put(n *ast.Node) {
	c.emitLoad(n.Pos, n.Value)
	c.expr(n.Child(0))
	c.expr(n.Child(1))
	c.emit(n.Pos, Make(TPUT))
}

// include compiles the referenced file's top-level statements into the
// current program, as if they appeared at the directive's position. The
// file is read in full and closed before parsing begins.
func (c *compiler) include(n *ast.Node) {
	b, err := os.ReadFile(n.Value)
	if err != nil {
		c.errorf(n.Pos, "cannot include %q: %s", n.Value, err)
	}
	root, perr := parser.Parse(n.Value, b)
	if perr != nil {
		panic(perr)
	}

	cc := &compiler{prog: c.prog, src: b}
	cc.block(root)
}
