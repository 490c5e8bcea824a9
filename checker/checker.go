// Package checker type-checks lin programs.
//
// Typing is a single depth-first pass over the tree
// that threads one mutable Env through every rule.
// Linear bindings are consumed as they are used,
// and the first violation ends the check.
package checker

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/eaburns/lin/loc"
	"github.com/eaburns/lin/tree"
)

type typer struct {
	files loc.Files

	traceDepth int
	traceOut   io.Writer
	trIndent   string
	nextBullet int
}

// An Opt is an option for Check.
type Opt func(*typer)

// Trace writes a trace of each typing rule application to w,
// down to the given nesting depth (-1 = unlimited).
// Without this option, tracing is controlled by the -trace.depth flag.
func Trace(w io.Writer, depth int) Opt {
	return func(c *typer) {
		c.traceOut = w
		c.traceDepth = depth
	}
}

func newTyper(opts []Opt) *typer {
	c := &typer{traceDepth: *traceDepth, traceOut: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the type of the file's expression,
// checked in a new, empty environment.
// A returned error is an *Error whose message is prefixed
// with its location in the file.
func Check(file *tree.File, opts ...Opt) (*tree.Type, error) {
	c := newTyper(opts)
	c.files = loc.Files{file}
	env := NewEnv()
	t, err := c.typing(file.Expr, env, 0)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.done(c.files)
		}
		return nil, err
	}
	return t, nil
}

// Typing returns the type of expr in env.
// Typing consumes linear bindings of env used by expr.
// depth is the depth of the innermost frame of env;
// new scopes are pushed at greater depths.
func Typing(expr tree.Expr, env *Env, depth int) (*tree.Type, error) {
	return newTyper(nil).typing(expr, env, depth)
}

func (c *typer) typing(expr tree.Expr, env *Env, depth int) (t *tree.Type, err error) {
	tr := c.trItem("%s (%v)", describe(expr), expr.Loc())
	defer func() {
		if err != nil {
			tr.trace("error: %s", err)
		} else {
			tr.trace("%s", t)
		}
		tr.done()
	}()

	switch expr := expr.(type) {
	case *tree.QVal:
		return c.typingQVal(expr, env, depth)
	case *tree.Var:
		return typingVar(expr, env)
	case *tree.App:
		return c.typingApp(expr, env, depth)
	case *tree.Free:
		return c.typingFree(expr, env, depth)
	case *tree.If:
		return c.typingIf(expr, env, depth)
	case *tree.Split:
		return c.typingSplit(expr, env, depth)
	case *tree.Let:
		return c.typingLet(expr, env, depth)
	default:
		panic(fmt.Sprintf("impossible expression type: %T", expr))
	}
}

func describe(expr tree.Expr) string {
	switch expr := expr.(type) {
	case *tree.QVal:
		switch v := expr.Val.(type) {
		case *tree.BoolLit:
			return fmt.Sprintf("%s %t", expr.Qual, v.Val)
		case *tree.PairLit:
			return fmt.Sprintf("%s pair", expr.Qual)
		case *tree.FnLit:
			return fmt.Sprintf("%s fn %s", expr.Qual, v.Parm.Name)
		}
	case *tree.Var:
		return expr.Name
	case *tree.App:
		return "application"
	case *tree.Free:
		return "free " + expr.Var.Name
	case *tree.If:
		return "if"
	case *tree.Split:
		return fmt.Sprintf("split as %s, %s", expr.Left.Name, expr.Right.Name)
	case *tree.Let:
		return "let " + expr.Var.Name
	}
	return fmt.Sprintf("%T", expr)
}

func (c *typer) typingQVal(expr *tree.QVal, env *Env, depth int) (*tree.Type, error) {
	t := &tree.Type{Qual: expr.Qual, L: expr.L}
	switch v := expr.Val.(type) {
	case *tree.BoolLit:
		t.Prim = &tree.BoolType{}
	case *tree.PairLit:
		// The components are typed left-to-right in the same env,
		// so Snd cannot use what Fst consumed.
		t0, err := c.typing(v.Fst, env, depth)
		if err != nil {
			return nil, err
		}
		t1, err := c.typing(v.Snd, env, depth)
		if err != nil {
			return nil, err
		}
		if expr.Qual == tree.Un {
			if t0.Qual == tree.Lin {
				return nil, linInUnPair(v.Fst, t0)
			}
			if t1.Qual == tree.Lin {
				return nil, linInUnPair(v.Snd, t1)
			}
		}
		t.Prim = &tree.PairType{Fst: t0, Snd: t1}
	case *tree.FnLit:
		ret, err := c.typingFn(expr.Qual, v, env, depth)
		if err != nil {
			return nil, err
		}
		t.Prim = &tree.ArrowType{Parm: v.Type, Ret: ret}
	default:
		panic(fmt.Sprintf("impossible value type: %T", v))
	}
	return t, nil
}

// typingFn returns the type of the function body.
func (c *typer) typingFn(q tree.Qual, fn *tree.FnLit, env *Env, depth int) (*tree.Type, error) {
	// An un function may be used any number of times,
	// so it cannot capture lin variables.
	var saved Stack
	if q == tree.Un {
		saved = env.TakeLinear()
	}
	if depth == math.MaxInt {
		return nil, depthOverflow(fn)
	}
	depth++
	env.Push(depth)
	env.Insert(fn.Parm.Name, fn.Type)
	t, err := c.typing(fn.Body, env, depth)
	if err != nil {
		return nil, err
	}
	lin, _ := env.Pop(depth)
	if names := lin.Unconsumed(); len(names) > 0 {
		return nil, unusedLinear("function", tree.Ident{Name: names[0], L: fn.Parm.L})
	}
	if q == tree.Un {
		env.RestoreLinear(saved)
	}
	return t, nil
}

func typingVar(v *tree.Var, env *Env) (*tree.Type, error) {
	b := env.Lookup(v.Name)
	if b == nil || b.Consumed {
		return nil, unboundOrConsumed(v)
	}
	if b.Type.Qual == tree.Lin {
		b.Consumed = true
	}
	return b.Type, nil
}

func (c *typer) typingApp(app *tree.App, env *Env, depth int) (*tree.Type, error) {
	tf, err := c.typing(app.Fun, env, depth)
	if err != nil {
		return nil, err
	}
	arrow, ok := tf.Prim.(*tree.ArrowType)
	if !ok {
		return nil, notAFunction(app.Fun, tf)
	}
	ta, err := c.typing(app.Arg, env, depth)
	if err != nil {
		return nil, err
	}
	if !ta.Eq(arrow.Parm) {
		return nil, argMismatch(app.Arg, arrow.Parm, ta)
	}
	return arrow.Ret, nil
}

func (c *typer) typingFree(free *tree.Free, env *Env, depth int) (*tree.Type, error) {
	b := env.Lookup(free.Var.Name)
	if b == nil || b.Consumed || b.Type.Qual != tree.Lin {
		return nil, invalidFree(free.Var)
	}
	b.Consumed = true
	return c.typing(free.Expr, env, depth)
}

// typingIf checks the branches against independent copies
// of the environment after the condition.
// Both must end with the same lin variables consumed.
func (c *typer) typingIf(expr *tree.If, env *Env, depth int) (*tree.Type, error) {
	tc, err := c.typing(expr.Cond, env, depth)
	if err != nil {
		return nil, err
	}
	if _, ok := tc.Prim.(*tree.BoolType); !ok {
		return nil, nonBoolCond(expr.Cond, tc)
	}
	elsEnv := env.Clone()
	tt, err := c.typing(expr.Then, env, depth)
	if err != nil {
		return nil, err
	}
	te, err := c.typing(expr.Else, elsEnv, depth)
	if err != nil {
		return nil, err
	}
	if !tt.Eq(te) {
		return nil, branchTypes(expr, tt, te)
	}
	if !env.Eq(elsEnv) {
		return nil, branchConsumption(expr, consumedDiff(env, elsEnv))
	}
	return tt, nil
}

func (c *typer) typingSplit(split *tree.Split, env *Env, depth int) (*tree.Type, error) {
	ts, err := c.typing(split.Expr, env, depth)
	if err != nil {
		return nil, err
	}
	pair, ok := ts.Prim.(*tree.PairType)
	if !ok {
		return nil, notAPair(split.Expr, ts)
	}
	if split.Left.Name == split.Right.Name {
		return nil, duplicateBinder(split.Right)
	}
	if depth == math.MaxInt {
		return nil, depthOverflow(split)
	}
	depth++
	env.Push(depth)
	env.Insert(split.Left.Name, pair.Fst)
	env.Insert(split.Right.Name, pair.Snd)
	t, err := c.typing(split.Body, env, depth)
	if err != nil {
		return nil, err
	}
	lin, _ := env.Pop(depth)
	for _, id := range []tree.Ident{split.Left, split.Right} {
		if b, ok := lin.Vars[id.Name]; ok && !b.Consumed {
			return nil, unusedLinear("split", id)
		}
	}
	return t, nil
}

func (c *typer) typingLet(let *tree.Let, env *Env, depth int) (*tree.Type, error) {
	t, err := c.typing(let.Expr, env, depth)
	if err != nil {
		return nil, err
	}
	if !t.Eq(let.Type) {
		return nil, letMismatch(let, t)
	}
	if depth == math.MaxInt {
		return nil, depthOverflow(let)
	}
	depth++
	env.Push(depth)
	env.Insert(let.Var.Name, let.Type)
	tb, err := c.typing(let.Body, env, depth)
	if err != nil {
		return nil, err
	}
	lin, _ := env.Pop(depth)
	if b, ok := lin.Vars[let.Var.Name]; ok && !b.Consumed {
		return nil, unusedLinear("let", let.Var)
	}
	return tb, nil
}
