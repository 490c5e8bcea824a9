package tree

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/eaburns/lin/loc"
)

type PrintOpt func(*config)

// PrintLocs annotates each printed node with its location in f.
func PrintLocs(f *File) PrintOpt {
	return func(pc *config) { pc.files = loc.Files{f} }
}

// Print writes a debugging dump of the tree to w.
func (f *File) Print(w io.Writer, opts ...PrintOpt) error {
	return print(w, f, opts...)
}

// Print writes a debugging dump of the expression to w.
func Print(w io.Writer, e Expr, opts ...PrintOpt) error {
	return print(w, e, opts...)
}

type config struct {
	w     io.Writer
	files loc.Files
	n     int
	ident string
}

type printerError struct{ error }

type printer interface {
	print(*config)
}

func print(w io.Writer, tree printer, opts ...PrintOpt) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(printerError); ok {
			err = e
		} else {
			panic(r)
		}
	}()
	pc := &config{w: w, ident: "  "}
	for _, opt := range opts {
		opt(pc)
	}
	tree.print(pc)
	pc.p("\n")
	return err
}

func (f *File) print(pc *config) {
	pc.p("File{")
	pc.field("Path", f.P)
	pc.field("Expr", f.Expr)
	pc.p("\n}")
}

func (v *Var) print(pc *config) {
	pc.p("Var(%s)", v.Name)
	pc.loc(v.L)
}

func (q *QVal) print(pc *config) {
	pc.p("QVal{")
	pc.loc(q.L)
	pc.field("Qual", q.Qual)
	pc.field("Val", q.Val)
	pc.p("\n}")
}

func (l *Let) print(pc *config) {
	pc.p("Let{")
	pc.loc(l.L)
	pc.field("Var", l.Var)
	pc.field("Type", l.Type)
	pc.field("Expr", l.Expr)
	pc.field("Body", l.Body)
	pc.p("\n}")
}

func (i *If) print(pc *config) {
	pc.p("If{")
	pc.loc(i.L)
	pc.field("Cond", i.Cond)
	pc.field("Then", i.Then)
	pc.field("Else", i.Else)
	pc.p("\n}")
}

func (s *Split) print(pc *config) {
	pc.p("Split{")
	pc.loc(s.L)
	pc.field("Expr", s.Expr)
	pc.field("Left", s.Left)
	pc.field("Right", s.Right)
	pc.field("Body", s.Body)
	pc.p("\n}")
}

func (f *Free) print(pc *config) {
	pc.p("Free{")
	pc.loc(f.L)
	pc.field("Var", f.Var)
	pc.field("Expr", f.Expr)
	pc.p("\n}")
}

func (a *App) print(pc *config) {
	pc.p("App{")
	pc.loc(a.L)
	pc.field("Fun", a.Fun)
	pc.field("Arg", a.Arg)
	pc.p("\n}")
}

func (b *BoolLit) print(pc *config) {
	pc.p("BoolLit(%t)", b.Val)
	pc.loc(b.L)
}

func (p *PairLit) print(pc *config) {
	pc.p("PairLit{")
	pc.loc(p.L)
	pc.field("Fst", p.Fst)
	pc.field("Snd", p.Snd)
	pc.p("\n}")
}

func (f *FnLit) print(pc *config) {
	pc.p("FnLit{")
	pc.loc(f.L)
	pc.field("Parm", f.Parm)
	pc.field("Type", f.Type)
	pc.field("Body", f.Body)
	pc.p("\n}")
}

func (t *Type) print(pc *config) {
	pc.p("Type(%s)", t)
	pc.loc(t.L)
}

func (i Ident) print(pc *config) {
	pc.p("Ident(%s)", i.Name)
	pc.loc(i.L)
}

func (pc *config) loc(l loc.Loc) {
	if pc.files == nil || (l == loc.Loc{}) {
		return
	}
	pc.p("\t(%s)", pc.files.Location(l))
}

func (pc *config) field(name string, val interface{}) {
	v := reflect.ValueOf(val)
	if val == nil || (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		return
	}
	pc.n++
	defer func() { pc.n-- }()
	pc.p("\n" + name + ": ")
	if t, ok := val.(printer); ok {
		t.print(pc)
		return
	}
	pc.p("%v", val)
}

func (pc *config) p(f string, vs ...interface{}) {
	f = strings.ReplaceAll(f, "\n", "\n"+strings.Repeat(pc.ident, pc.n))
	_, err := fmt.Fprintf(pc.w, f, vs...)
	if err != nil {
		panic(printerError{err})
	}
}
