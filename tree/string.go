package tree

import (
	"strings"
)

// String returns the type in concrete syntax, for example
//	lin (un bool -> lin (lin bool * lin bool))
func (t *Type) String() string {
	return t.buildString(new(strings.Builder)).String()
}

func (b *BoolType) String() string {
	return b.buildString(new(strings.Builder)).String()
}

func (p *PairType) String() string {
	return p.buildString(new(strings.Builder)).String()
}

func (a *ArrowType) String() string {
	return a.buildString(new(strings.Builder)).String()
}

func (t *Type) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(t.Qual.String())
	w.WriteRune(' ')
	t.Prim.buildString(w)
	return w
}

func (*BoolType) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString("bool")
	return w
}

func (p *PairType) buildString(w *strings.Builder) *strings.Builder {
	w.WriteRune('(')
	p.Fst.buildString(w)
	w.WriteString(" * ")
	p.Snd.buildString(w)
	w.WriteRune(')')
	return w
}

func (a *ArrowType) buildString(w *strings.Builder) *strings.Builder {
	w.WriteRune('(')
	a.Parm.buildString(w)
	w.WriteString(" -> ")
	a.Ret.buildString(w)
	w.WriteRune(')')
	return w
}
