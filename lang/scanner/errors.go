package scanner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/helium-lang/helium/lang/token"
)

// Error describes a failure at a source position. The same error type is
// shared by the scanner, the parser and the compiler; the first error any
// stage produces aborts the whole compilation.
type Error struct {
	Pos  token.Position
	Msg  string
	Line string // source text of the offending line
}

// NewError creates an Error at pos, capturing the offending line text from
// src so the error can be rendered without the source buffer.
func NewError(src []byte, pos token.Position, msg string) *Error {
	line := ""
	if pos.LineOffset >= 0 && pos.LineOffset <= len(src) {
		end := pos.LineOffset
		for end < len(src) && src[end] != '\n' {
			end++
		}
		line = string(src[pos.LineOffset:end])
	}
	return &Error{Pos: pos, Msg: msg, Line: line}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[err] %s (%d, %d) in %s", e.Msg, e.Pos.Line, e.Pos.Col, e.Pos.Filename)
}

// Detail renders the full diagnostic block with the source line and a
// pointer caret under the offending column:
//
//	[err] unknown character '=' (1, 6) in main.he:
//		|
//		| 0001 y <- =
//		| ~~~~~~~~~~^
func (e *Error) Detail() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", e.Error())
	sb.WriteString("\t|\n")
	fmt.Fprintf(&sb, "\t| %04d %s\n", e.Pos.Line, e.Line)
	fmt.Fprintf(&sb, "\t| %s^\n", strings.Repeat("~", 4+e.Pos.Col))
	return sb.String()
}

// PrintError writes err to w, using the detailed caret rendering when err
// is a positioned *Error.
func PrintError(w io.Writer, err error) {
	var perr *Error
	if errors.As(err, &perr) {
		fmt.Fprint(w, perr.Detail())
		return
	}
	fmt.Fprintf(w, "%s\n", err)
}
