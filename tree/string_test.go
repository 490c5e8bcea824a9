package tree

import (
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{Bool(Lin), "lin bool"},
		{Bool(Un), "un bool"},
		{Pair(Un, Bool(Lin), Bool(Un)), "un (lin bool * un bool)"},
		{Arrow(Lin, Bool(Un), Bool(Lin)), "lin (un bool -> lin bool)"},
		{
			Arrow(Un, Pair(Lin, Bool(Lin), Bool(Lin)), Arrow(Lin, Bool(Un), Bool(Un))),
			"un (lin (lin bool * lin bool) -> lin (un bool -> un bool))",
		},
	}
	for _, test := range tests {
		if got := test.typ.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

func TestPrint(t *testing.T) {
	e := &Let{
		Var:  Ident{Name: "x"},
		Type: Bool(Lin),
		Expr: &QVal{Qual: Lin, Val: &BoolLit{Val: true}},
		Body: &Free{
			Var: Ident{Name: "x"},
			Expr: &QVal{
				Qual: Un,
				Val:  &PairLit{Fst: &Var{Name: "y"}, Snd: &Var{Name: "z"}},
			},
		},
	}
	var b strings.Builder
	if err := Print(&b, e); err != nil {
		t.Fatalf("Print failed: %s", err)
	}
	const want = `Let{
  Var: Ident(x)
  Type: Type(lin bool)
  Expr: QVal{
    Qual: lin
    Val: BoolLit(true)
  }
  Body: Free{
    Var: Ident(x)
    Expr: QVal{
      Qual: un
      Val: PairLit{
        Fst: Var(y)
        Snd: Var(z)
      }
    }
  }
}
`
	if got := b.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintLocs(t *testing.T) {
	f := &File{
		Expr:   &Var{Name: "x", L: [2]int{1, 2}},
		P:      "test.lin",
		Length: 1,
	}
	var b strings.Builder
	if err := f.Print(&b, PrintLocs(f)); err != nil {
		t.Fatalf("Print failed: %s", err)
	}
	const want = "File{\n  Path: test.lin\n  Expr: Var(x)\t(test.lin:1.1-1.2)\n}\n"
	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
