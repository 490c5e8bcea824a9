package checker

import (
	"fmt"
	"sort"

	"github.com/eaburns/lin/tree"
)

// A Binding is the type of a variable
// and whether it has been consumed.
// Only linear bindings are ever consumed.
type Binding struct {
	Type     *tree.Type
	Consumed bool
}

// A Frame holds the bindings of one scope.
type Frame struct {
	Depth int
	Vars  map[string]*Binding
}

// Unconsumed returns the sorted names of the linear bindings
// in the frame that have not been consumed.
func (f *Frame) Unconsumed() []string {
	var names []string
	for name, b := range f.Vars {
		if b.Type.Qual == tree.Lin && !b.Consumed {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// A Stack is a sequence of frames with strictly increasing depths.
// The last frame is the innermost scope.
type Stack []*Frame

// Env is a scoped type environment.
//
// Linear and unrestricted bindings are kept on separate stacks,
// so that all linear bindings can be hidden at once
// by detaching the linear stack.
type Env struct {
	lin Stack
	un  Stack
}

// NewEnv returns a new, empty environment.
func NewEnv() *Env { return &Env{} }

// Push adds an empty frame at depth to both stacks.
// depth must be greater than that of every frame on the stacks.
func (env *Env) Push(depth int) {
	env.lin = env.lin.push(depth)
	env.un = env.un.push(depth)
}

func (s Stack) push(depth int) Stack {
	if len(s) > 0 && s[len(s)-1].Depth >= depth {
		panic(fmt.Sprintf("impossible push of depth %d onto depth %d", depth, s[len(s)-1].Depth))
	}
	return append(s, &Frame{Depth: depth, Vars: make(map[string]*Binding)})
}

// Pop removes and returns the frames at depth.
// The caller is responsible for checking lin for unconsumed bindings.
func (env *Env) Pop(depth int) (lin, un *Frame) {
	env.lin, lin = env.lin.pop(depth)
	env.un, un = env.un.pop(depth)
	return lin, un
}

func (s Stack) pop(depth int) (Stack, *Frame) {
	if len(s) == 0 || s[len(s)-1].Depth != depth {
		panic(fmt.Sprintf("impossible pop of depth %d", depth))
	}
	f := s[len(s)-1]
	s[len(s)-1] = nil
	return s[:len(s)-1], f
}

// Insert binds name to t in the innermost frame
// of the stack matching t's qualifier.
func (env *Env) Insert(name string, t *tree.Type) {
	s := env.un
	if t.Qual == tree.Lin {
		s = env.lin
	}
	if len(s) == 0 {
		panic("impossible insert with no frame")
	}
	s[len(s)-1].Vars[name] = &Binding{Type: t}
}

// Lookup returns the innermost binding of name, or nil if there is none.
// If both stacks bind name, the binding from the deeper frame is returned.
// The returned binding may be consumed.
func (env *Env) Lookup(name string) *Binding {
	d0, b0 := env.lin.lookup(name)
	d1, b1 := env.un.lookup(name)
	switch {
	case b0 == nil:
		return b1
	case b1 == nil:
		return b0
	case d0 > d1:
		return b0
	case d0 < d1:
		return b1
	default:
		panic(fmt.Sprintf("impossible: %s is both lin and un at depth %d", name, d0))
	}
}

func (s Stack) lookup(name string) (int, *Binding) {
	for i := len(s) - 1; i >= 0; i-- {
		if b, ok := s[i].Vars[name]; ok {
			return s[i].Depth, b
		}
	}
	return 0, nil
}

// TakeLinear detaches and returns the linear stack,
// leaving the environment with no linear bindings.
func (env *Env) TakeLinear() Stack {
	s := env.lin
	env.lin = nil
	return s
}

// RestoreLinear reattaches a linear stack returned by TakeLinear.
// Any linear frames added since TakeLinear must have been popped.
func (env *Env) RestoreLinear(s Stack) {
	if len(env.lin) > 0 {
		panic("impossible restore over a non-empty linear stack")
	}
	env.lin = s
}

// Clone returns a deep copy of the environment.
// Consuming a binding in the copy does not affect the original.
func (env *Env) Clone() *Env {
	return &Env{lin: env.lin.clone(), un: env.un.clone()}
}

func (s Stack) clone() Stack {
	if s == nil {
		return nil
	}
	c := make(Stack, len(s))
	for i, f := range s {
		vars := make(map[string]*Binding, len(f.Vars))
		for name, b := range f.Vars {
			cp := *b
			vars[name] = &cp
		}
		c[i] = &Frame{Depth: f.Depth, Vars: vars}
	}
	return c
}

// Eq returns whether two environments have the same frames,
// the same bindings with equal types,
// and the same bindings consumed.
func (env *Env) Eq(o *Env) bool {
	return env.lin.eq(o.lin) && env.un.eq(o.un)
}

func (s Stack) eq(o Stack) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Depth != o[i].Depth || len(s[i].Vars) != len(o[i].Vars) {
			return false
		}
		for name, b := range s[i].Vars {
			ob, ok := o[i].Vars[name]
			if !ok || b.Consumed != ob.Consumed || !b.Type.Eq(ob.Type) {
				return false
			}
		}
	}
	return true
}

// consumedDiff returns the sorted names of linear bindings
// that are consumed in exactly one of the two environments.
// The environments must have the same shape.
func consumedDiff(a, b *Env) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range a.lin {
		if i >= len(b.lin) {
			break
		}
		for name, ba := range a.lin[i].Vars {
			bb, ok := b.lin[i].Vars[name]
			if ok && ba.Consumed != bb.Consumed && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
