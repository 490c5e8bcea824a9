// Package printer prints lin syntax trees as canonically formatted source.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/eaburns/lin/tree"
)

type ioError struct{ err error }

// Print writes the expression to w as source code, followed by a newline.
// Bodies of let, if, split, and fn are printed on their own indented lines.
// Parsing the output gives back an equal tree, ignoring locations.
func Print(w io.Writer, e tree.Expr) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ioErr, ok := r.(ioError); ok {
			err = ioErr.err
			return
		}
		panic(r)
	}()
	p := &printer{w: w}
	printExpr(p, e)
	p.write("\n")
	return nil
}

// String returns the expression as source code.
func String(e tree.Expr) string {
	var s strings.Builder
	Print(&s, e)
	return strings.TrimSuffix(s.String(), "\n")
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) write(s string) {
	if _, err := io.WriteString(p.w, s); err != nil {
		panic(ioError{err})
	}
}

func (p *printer) writef(f string, vs ...interface{}) {
	p.write(fmt.Sprintf(f, vs...))
}

func printLineBreak(p *printer) {
	p.write("\n")
	p.write(strings.Repeat("\t", p.indent))
}

func printBlock(p *printer, e tree.Expr) {
	p.write("{")
	p.indent++
	printLineBreak(p)
	printExpr(p, e)
	p.indent--
	printLineBreak(p)
	p.write("}")
}

func printExpr(p *printer, e tree.Expr) {
	switch e := e.(type) {
	case *tree.Var:
		p.write(e.Name)
	case *tree.QVal:
		p.writef("%s ", e.Qual)
		printValue(p, e.Val)
	case *tree.Let:
		p.writef("let %s : %s = ", e.Var.Name, e.Type)
		printExpr(p, e.Expr)
		p.write(" ")
		printBlock(p, e.Body)
	case *tree.If:
		p.write("if ")
		printExpr(p, e.Cond)
		p.write(" ")
		printBlock(p, e.Then)
		p.write(" else ")
		printBlock(p, e.Else)
	case *tree.Split:
		p.write("split ")
		printExpr(p, e.Expr)
		p.writef(" as %s, %s ", e.Left.Name, e.Right.Name)
		printBlock(p, e.Body)
	case *tree.Free:
		p.writef("free %s;", e.Var.Name)
		printLineBreak(p)
		printExpr(p, e.Expr)
	case *tree.App:
		p.write("(")
		printExpr(p, e.Fun)
		p.write(" ")
		printExpr(p, e.Arg)
		p.write(")")
	default:
		panic(fmt.Sprintf("unknown expression type: %T", e))
	}
}

func printValue(p *printer, v tree.Value) {
	switch v := v.(type) {
	case *tree.BoolLit:
		p.writef("%t", v.Val)
	case *tree.PairLit:
		p.write("<")
		printExpr(p, v.Fst)
		p.write(", ")
		printExpr(p, v.Snd)
		p.write(">")
	case *tree.FnLit:
		p.writef("fn %s : %s ", v.Parm.Name, v.Type)
		printBlock(p, v.Body)
	default:
		panic(fmt.Sprintf("unknown value type: %T", v))
	}
}
