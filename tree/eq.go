package tree

// Eq returns whether two types are structurally equal.
// Qualifiers must match at every level; locations are ignored.
func (t *Type) Eq(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Qual == o.Qual && t.Prim.eq(o.Prim)
}

func (*BoolType) eq(other Prim) bool {
	_, ok := other.(*BoolType)
	return ok
}

func (p *PairType) eq(other Prim) bool {
	o, ok := other.(*PairType)
	return ok && p.Fst.Eq(o.Fst) && p.Snd.Eq(o.Snd)
}

func (a *ArrowType) eq(other Prim) bool {
	o, ok := other.(*ArrowType)
	return ok && a.Parm.Eq(o.Parm) && a.Ret.Eq(o.Ret)
}

// Bool returns the q-qualified boolean type.
func Bool(q Qual) *Type {
	return &Type{Qual: q, Prim: &BoolType{}}
}

// Pair returns the q-qualified pair type of fst and snd.
func Pair(q Qual, fst, snd *Type) *Type {
	return &Type{Qual: q, Prim: &PairType{Fst: fst, Snd: snd}}
}

// Arrow returns the q-qualified function type from parm to ret.
func Arrow(q Qual, parm, ret *Type) *Type {
	return &Type{Qual: q, Prim: &ArrowType{Parm: parm, Ret: ret}}
}
