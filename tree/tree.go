// Package tree defines the syntax tree of lin programs.
package tree

import (
	"strings"

	"github.com/eaburns/lin/loc"
)

// A File is a parsed source file.
// It holds exactly one top-level expression.
type File struct {
	Expr Expr

	P      string
	NLs    []int
	Length int
}

func (f *File) Path() string    { return f.P }
func (f *File) NewLines() []int { return f.NLs }
func (f *File) Len() int        { return f.Length }

// Qual is a type or value qualifier.
type Qual int

const (
	// Lin values must be consumed exactly once.
	Lin Qual = iota
	// Un values may be used any number of times, including zero.
	Un
)

func (q Qual) String() string {
	switch q {
	case Lin:
		return "lin"
	case Un:
		return "un"
	default:
		panic("impossible qualifier")
	}
}

// A Type is a qualified primitive type.
type Type struct {
	Qual Qual
	Prim Prim
	L    loc.Loc
}

func (t *Type) Loc() loc.Loc { return t.L }

// A Prim is the shape of a type: *BoolType, *PairType, or *ArrowType.
type Prim interface {
	buildString(*strings.Builder) *strings.Builder
	eq(Prim) bool
}

type BoolType struct{}

type PairType struct {
	Fst *Type
	Snd *Type
}

type ArrowType struct {
	Parm *Type
	Ret  *Type
}

// An Ident is a binder name.
type Ident struct {
	Name string
	L    loc.Loc
}

func (id Ident) Loc() loc.Loc { return id.L }

// An Expr is one of
// *Var, *QVal, *Let, *If, *Split, *Free, or *App.
type Expr interface {
	Loc() loc.Loc
	print(*config)
}

// A Var is a reference to a bound variable.
type Var struct {
	Name string
	L    loc.Loc
}

func (v *Var) Loc() loc.Loc { return v.L }

// A QVal is a qualified value.
type QVal struct {
	Qual Qual
	Val  Value
	L    loc.Loc
}

func (q *QVal) Loc() loc.Loc { return q.L }

// A Let binds the result of Expr to Var in Body.
//	let Var : Type = Expr { Body }
type Let struct {
	Var  Ident
	Type *Type
	Expr Expr
	Body Expr
	L    loc.Loc
}

func (l *Let) Loc() loc.Loc { return l.L }

// An If is a conditional.
//	if Cond { Then } else { Else }
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	L    loc.Loc
}

func (i *If) Loc() loc.Loc { return i.L }

// A Split destructures a pair.
//	split Expr as Left, Right { Body }
type Split struct {
	Expr  Expr
	Left  Ident
	Right Ident
	Body  Expr
	L     loc.Loc
}

func (s *Split) Loc() loc.Loc { return s.L }

// A Free discards a linear variable and continues with Expr.
//	free Var; Expr
type Free struct {
	Var  Ident
	Expr Expr
	L    loc.Loc
}

func (f *Free) Loc() loc.Loc { return f.L }

// An App is a function application.
//	(Fun Arg)
type App struct {
	Fun Expr
	Arg Expr
	L   loc.Loc
}

func (a *App) Loc() loc.Loc { return a.L }

// A Value is one of *BoolLit, *PairLit, or *FnLit.
// Values only appear in a QVal, which supplies the qualifier.
type Value interface {
	Loc() loc.Loc
	print(*config)
}

type BoolLit struct {
	Val bool
	L   loc.Loc
}

func (b *BoolLit) Loc() loc.Loc { return b.L }

//	< Fst, Snd >
type PairLit struct {
	Fst Expr
	Snd Expr
	L   loc.Loc
}

func (p *PairLit) Loc() loc.Loc { return p.L }

//	fn Parm : Type { Body }
type FnLit struct {
	Parm Ident
	Type *Type
	Body Expr
	L    loc.Loc
}

func (f *FnLit) Loc() loc.Loc { return f.L }
