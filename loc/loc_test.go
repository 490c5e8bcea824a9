package loc

import "testing"

type testFile struct {
	path string
	text string
}

func (f testFile) Path() string { return f.path }
func (f testFile) Len() int     { return len(f.text) }

func (f testFile) NewLines() []int {
	var nls []int
	for i, r := range f.text {
		if r == '\n' {
			nls = append(nls, i)
		}
	}
	return nls
}

func TestLocation(t *testing.T) {
	files := Files{testFile{path: "a.lin", text: "ab\ncd\n\nef"}}
	tests := []struct {
		loc  Loc
		want string
	}{
		{Loc{}, ""},
		{Loc{1, 1}, "a.lin:1.1"},
		{Loc{1, 3}, "a.lin:1.1-1.3"},
		{Loc{4, 6}, "a.lin:2.1-2.3"},
		{Loc{2, 5}, "a.lin:1.2-2.2"},
		{Loc{8, 8}, "a.lin:4.1"},
		{Loc{9, 10}, "a.lin:4.2-4.3"},
	}
	for _, test := range tests {
		if got := files.Location(test.loc).String(); got != test.want {
			t.Errorf("Location(%v)=%q, want %q", test.loc, got, test.want)
		}
	}
}

func TestLocationPanics(t *testing.T) {
	files := Files{testFile{path: "a.lin", text: "abc"}}
	for _, l := range []Loc{{2, 1}, {1, 6}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Location(%v) did not panic", l)
				}
			}()
			files.Location(l)
		}()
	}
}
