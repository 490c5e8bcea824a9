package checker

import (
	"fmt"
	"strings"

	"github.com/eaburns/lin/loc"
	"github.com/eaburns/lin/tree"
)

// Kind is the typing rule violated by an Error.
type Kind int

const (
	UnboundOrConsumedVariable Kind = iota + 1
	UnusedLinearAtScopeExit
	QualifierMismatchInPair
	InvalidFree
	NonBooleanCondition
	BranchMismatch
	NotAPair
	NotAFunction
	ArgumentTypeMismatch
	LetTypeMismatch
	ScopeDepthOverflow
	DuplicateBinder
)

func (k Kind) String() string {
	switch k {
	case UnboundOrConsumedVariable:
		return "UnboundOrConsumedVariable"
	case UnusedLinearAtScopeExit:
		return "UnusedLinearAtScopeExit"
	case QualifierMismatchInPair:
		return "QualifierMismatchInPair"
	case InvalidFree:
		return "InvalidFree"
	case NonBooleanCondition:
		return "NonBooleanCondition"
	case BranchMismatch:
		return "BranchMismatch"
	case NotAPair:
		return "NotAPair"
	case NotAFunction:
		return "NotAFunction"
	case ArgumentTypeMismatch:
		return "ArgumentTypeMismatch"
	case LetTypeMismatch:
		return "LetTypeMismatch"
	case ScopeDepthOverflow:
		return "ScopeDepthOverflow"
	case DuplicateBinder:
		return "DuplicateBinder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// An Error is a typing error.
type Error struct {
	Kind Kind
	// Name is the offending variable, if any.
	Name string
	// Scope is the construct whose scope was exited
	// for UnusedLinearAtScopeExit: "function", "let", or "split".
	Scope string
	// Want and Got are the mismatched types, if any.
	Want *tree.Type
	Got  *tree.Type
	L    loc.Loc

	msg string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Loc() loc.Loc  { return e.L }

func newError(kind Kind, locer loc.Locer, f string, vs ...interface{}) *Error {
	return &Error{Kind: kind, L: locer.Loc(), msg: fmt.Sprintf(f, vs...)}
}

func unboundOrConsumed(v *tree.Var) *Error {
	err := newError(UnboundOrConsumedVariable, v, "%s: undefined, already consumed, or not capturable", v.Name)
	err.Name = v.Name
	return err
}

func unusedLinear(scope string, id tree.Ident) *Error {
	err := newError(UnusedLinearAtScopeExit, id, "%s: lin variable not consumed by the end of the %s", id.Name, scope)
	err.Name = id.Name
	err.Scope = scope
	return err
}

func linInUnPair(locer loc.Locer, got *tree.Type) *Error {
	err := newError(QualifierMismatchInPair, locer, "un pair cannot contain lin component of type %s", got)
	err.Got = got
	return err
}

func invalidFree(id tree.Ident) *Error {
	err := newError(InvalidFree, id, "%s: cannot free, not an unconsumed lin variable", id.Name)
	err.Name = id.Name
	return err
}

func nonBoolCond(locer loc.Locer, got *tree.Type) *Error {
	err := newError(NonBooleanCondition, locer, "if condition has type %s, want bool", got)
	err.Got = got
	return err
}

func branchTypes(locer loc.Locer, then, els *tree.Type) *Error {
	err := newError(BranchMismatch, locer, "if branches have different types: %s and %s", then, els)
	err.Want = then
	err.Got = els
	return err
}

func branchConsumption(locer loc.Locer, names []string) *Error {
	err := newError(BranchMismatch, locer, "if branches consume different lin variables: %s", strings.Join(names, ", "))
	if len(names) > 0 {
		err.Name = names[0]
	}
	return err
}

func notAPair(locer loc.Locer, got *tree.Type) *Error {
	err := newError(NotAPair, locer, "cannot split type %s, want a pair", got)
	err.Got = got
	return err
}

func notAFunction(locer loc.Locer, got *tree.Type) *Error {
	err := newError(NotAFunction, locer, "cannot apply type %s, want a function", got)
	err.Got = got
	return err
}

func argMismatch(locer loc.Locer, want, got *tree.Type) *Error {
	err := newError(ArgumentTypeMismatch, locer, "argument has type %s, want %s", got, want)
	err.Want = want
	err.Got = got
	return err
}

func letMismatch(l *tree.Let, got *tree.Type) *Error {
	err := newError(LetTypeMismatch, l.Expr, "%s: bound expression has type %s, want %s", l.Var.Name, got, l.Type)
	err.Name = l.Var.Name
	err.Want = l.Type
	err.Got = got
	return err
}

func depthOverflow(locer loc.Locer) *Error {
	return newError(ScopeDepthOverflow, locer, "scopes nested too deeply")
}

func duplicateBinder(id tree.Ident) *Error {
	err := newError(DuplicateBinder, id, "%s: bound twice by the same split", id.Name)
	err.Name = id.Name
	return err
}

// done prefixes the message with the error's location in files.
func (e *Error) done(files loc.Files) {
	if e.L == (loc.Loc{}) || len(files) == 0 {
		return
	}
	e.msg = files.Location(e.L).String() + ": " + e.msg
}
