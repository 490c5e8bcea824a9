package printer

import (
	"errors"
	"strings"
	"testing"

	"github.com/eaburns/lin/parser"
	"github.com/google/go-cmp/cmp"
)

func TestValues(t *testing.T) {
	tests := []string{
		"x\n",
		"lin true\n",
		"un false\n",
		"lin <x, un true>\n",
		"un <un <a, b>, c>\n",
		`lin fn x : lin bool {
	x
}
`,
		`un fn f : un (lin bool -> un (un bool * lin bool)) {
	f
}
`,
	}
	for _, src := range tests {
		runIdentTest(src, t)
	}
}

func TestExprs(t *testing.T) {
	tests := []string{
		`let x : lin bool = lin true {
	x
}
`,
		`if c {
	x
} else {
	y
}
`,
		`split p as l, r {
	lin <l, r>
}
`,
		`free x;
y
`,
		"(f x)\n",
		"((f x) (g y))\n",
		`let f : lin (lin bool -> lin bool) = lin fn x : lin bool {
	x
} {
	(f lin true)
}
`,
		`let x : lin bool = lin true {
	let y : lin bool = lin false {
		free x;
		if y {
			split un <un true, un false> as a, b {
				a
			}
		} else {
			un true
		}
	}
}
`,
	}
	for _, src := range tests {
		runIdentTest(src, t)
	}
}

func TestReformat(t *testing.T) {
	const src = "let x:lin bool=lin true{if x{un true}else{un false}}"
	const want = `let x : lin bool = lin true {
	if x {
		un true
	} else {
		un false
	}
}
`
	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	var w strings.Builder
	if err := Print(&w, e); err != nil {
		t.Fatalf("failed to print: %s", err)
	}
	if diff := cmp.Diff(want, w.String()); diff != "" {
		t.Errorf("\n==> GOT:\n%s==> WANTED:\n%s\n==> DIFF: %s\n",
			w.String(), want, diff)
	}
	if got := String(e); got != strings.TrimSuffix(want, "\n") {
		t.Errorf("String()=%q, want %q", got, strings.TrimSuffix(want, "\n"))
	}
}

type errWriter struct{}

var errWrite = errors.New("write failed")

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestPrintWriteError(t *testing.T) {
	e, err := parser.ParseExpr("lin <x, y>")
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	if err := Print(errWriter{}, e); !errors.Is(err, errWrite) {
		t.Errorf("Print()=%v, want %v", err, errWrite)
	}
}

func runIdentTest(src string, t *testing.T) {
	t.Helper()
	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	var w strings.Builder
	if err := Print(&w, e); err != nil {
		t.Fatalf("failed to print: %s", err)
	}
	got := w.String()
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("\n==> GOT:\n%s==> WANTED:\n%s\n==> DIFF: %s\n",
			w.String(), src, diff)
	}
}
