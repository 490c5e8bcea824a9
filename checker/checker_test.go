package checker

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/eaburns/lin/loc"
	"github.com/eaburns/lin/parser"
	"github.com/eaburns/lin/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

type scenario struct {
	Name  string `yaml:"name"`
	Src   string `yaml:"src"`
	Type  string `yaml:"type"`
	Error string `yaml:"error"`
	Var   string `yaml:"var"`
}

func loadScenarios(t *testing.T, path string) []scenario {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %s", path, err)
	}
	var scenarios []scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		t.Fatalf("failed to decode %s: %s", path, err)
	}
	return scenarios
}

func check(src string) (*tree.Type, error) {
	f, err := parser.Parse("test.lin", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Check(f)
}

func TestScenarios(t *testing.T) {
	for _, test := range loadScenarios(t, "testdata/scenarios.yaml") {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			t.Parallel()
			typ, err := check(test.Src)
			if test.Error == "" {
				if err != nil {
					t.Fatalf("check(%q) failed: %s", test.Src, err)
				}
				if got := typ.String(); got != test.Type {
					t.Errorf("check(%q)=%s, want %s", test.Src, got, test.Type)
				}
				return
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("check(%q)=%v, %v, want a %s error", test.Src, typ, err, test.Error)
			}
			if got := e.Kind.String(); got != test.Error {
				t.Errorf("check(%q) error kind=%s (%s), want %s", test.Src, got, e, test.Error)
			}
			if e.Name != test.Var {
				t.Errorf("check(%q) error name=%q, want %q", test.Src, e.Name, test.Var)
			}
		})
	}
}

func TestTypingPureValuesIsIdempotent(t *testing.T) {
	for _, src := range []string{"un true", "un false"} {
		expr, err := parser.ParseExpr(src)
		if err != nil {
			t.Fatalf("failed to parse %q: %s", src, err)
		}
		for i := 0; i < 2; i++ {
			got, err := Typing(expr, NewEnv(), 0)
			if err != nil {
				t.Fatalf("Typing(%q) failed: %s", src, err)
			}
			if diff := cmp.Diff(tree.Bool(tree.Un), got, ignoreLocs); diff != "" {
				t.Errorf("Typing(%q) pass %d: %s", src, i, diff)
			}
		}
	}
}

func TestTypingThreadsEnv(t *testing.T) {
	env := NewEnv()
	env.Push(1)
	env.Insert("x", tree.Bool(tree.Lin))
	env.Insert("y", tree.Bool(tree.Un))

	expr, err := parser.ParseExpr("lin <x, y>")
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	got, err := Typing(expr, env, 1)
	if err != nil {
		t.Fatalf("Typing failed: %s", err)
	}
	want := tree.Pair(tree.Lin, tree.Bool(tree.Lin), tree.Bool(tree.Un))
	if diff := cmp.Diff(want, got, ignoreLocs); diff != "" {
		t.Error(diff)
	}
	if b := env.Lookup("x"); b == nil || !b.Consumed {
		t.Errorf("x=%+v, want consumed", b)
	}
	if b := env.Lookup("y"); b == nil || b.Consumed {
		t.Errorf("y=%+v, want not consumed", b)
	}
	if _, err := Typing(expr, env, 1); err == nil {
		t.Errorf("second Typing succeeded, want x consumed")
	}
}

func TestScopeDepthOverflow(t *testing.T) {
	for _, src := range []string{
		"lin fn x : lin bool { x }",
		"let x : un bool = un true { x }",
		"split un <un true, un true> as a, b { a }",
	} {
		expr, err := parser.ParseExpr(src)
		if err != nil {
			t.Fatalf("failed to parse %q: %s", src, err)
		}
		_, err = Typing(expr, NewEnv(), math.MaxInt)
		var e *Error
		if !errors.As(err, &e) || e.Kind != ScopeDepthOverflow {
			t.Errorf("Typing(%q) at max depth=%v, want ScopeDepthOverflow", src, err)
		}
	}
}

func TestUnClosureRestoresLinear(t *testing.T) {
	const src = "let x : lin bool = lin true { let f : un (un bool -> un bool) = un fn y : un bool { y } { free x; (f un true) } }"
	typ, err := check(src)
	if err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if diff := cmp.Diff(tree.Bool(tree.Un), typ, ignoreLocs); diff != "" {
		t.Error(diff)
	}
}

func TestErrorDetails(t *testing.T) {
	tests := []struct {
		src  string
		want *Error
	}{
		{
			src: "let x : lin bool = lin true { un true }",
			want: &Error{
				Kind:  UnusedLinearAtScopeExit,
				Name:  "x",
				Scope: "let",
			},
		},
		{
			src: "split lin <lin true, lin false> as l, r { r }",
			want: &Error{
				Kind:  UnusedLinearAtScopeExit,
				Name:  "l",
				Scope: "split",
			},
		},
		{
			src: "lin fn x : lin bool { un true }",
			want: &Error{
				Kind:  UnusedLinearAtScopeExit,
				Name:  "x",
				Scope: "function",
			},
		},
		{
			src: "if un true { lin true } else { un false }",
			want: &Error{
				Kind: BranchMismatch,
				Want: tree.Bool(tree.Lin),
				Got:  tree.Bool(tree.Un),
			},
		},
		{
			src: "(un fn x : un (un bool * un bool) { x } un true)",
			want: &Error{
				Kind: ArgumentTypeMismatch,
				Want: tree.Pair(tree.Un, tree.Bool(tree.Un), tree.Bool(tree.Un)),
				Got:  tree.Bool(tree.Un),
			},
		},
		{
			src: "let x : lin bool = un true { x }",
			want: &Error{
				Kind: LetTypeMismatch,
				Name: "x",
				Want: tree.Bool(tree.Lin),
				Got:  tree.Bool(tree.Un),
			},
		},
		{
			src: "(lin true un true)",
			want: &Error{
				Kind: NotAFunction,
				Got:  tree.Bool(tree.Lin),
			},
		},
		{
			src: "split lin fn x : un bool { x } as a, b { a }",
			want: &Error{
				Kind: NotAPair,
				Got:  tree.Arrow(tree.Lin, tree.Bool(tree.Un), tree.Bool(tree.Un)),
			},
		},
		{
			src: "un <un true, lin false>",
			want: &Error{
				Kind: QualifierMismatchInPair,
				Got:  tree.Bool(tree.Lin),
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.src, func(t *testing.T) {
			_, err := check(test.src)
			var got *Error
			if !errors.As(err, &got) {
				t.Fatalf("check(%q)=%v, want *Error", test.src, err)
			}
			opts := []cmp.Option{
				ignoreLocs,
				cmpopts.IgnoreUnexported(Error{}),
			}
			if diff := cmp.Diff(test.want, got, opts...); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestErrorLocation(t *testing.T) {
	const src = "let x : lin bool = lin true {\n\tlin <x, x>\n}"
	_, err := check(src)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("check=%v, want *Error", err)
	}
	// The second x, on line 2.
	const want = "test.lin:2.10-2.11: x: undefined, already consumed, or not capturable"
	if e.Error() != want {
		t.Errorf("got %q, want %q", e.Error(), want)
	}
}

func TestTrace(t *testing.T) {
	f, err := parser.Parse("trace.lin", strings.NewReader("let x : lin bool = lin true { x }"))
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	var b strings.Builder
	if _, err := Check(f, Trace(&b, -1)); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	got := b.String()
	for _, want := range []string{
		"• let x (trace.lin:1.1-1.34)",
		"\t◦ lin true (trace.lin:1.20-1.28)",
		"\t◦ x (trace.lin:1.31-1.32)",
		"  lin bool",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("trace does not contain %q:\n%s", want, got)
		}
	}

	b.Reset()
	if _, err := Check(f, Trace(&b, 1)); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if strings.Contains(b.String(), "◦") {
		t.Errorf("depth 1 trace contains nested items:\n%s", b.String())
	}
}

var ignoreLocs = cmp.FilterPath(isLoc, cmp.Ignore())

func isLoc(path cmp.Path) bool {
	for _, s := range path {
		if s.String() == ".L" {
			return true
		}
	}
	return false
}

var _ loc.Locer = &Error{}
