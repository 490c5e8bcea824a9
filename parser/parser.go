// Package parser parses lin source code into a tree.File.
package parser

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/eaburns/lin/loc"
	"github.com/eaburns/lin/tree"
	"github.com/eaburns/peggy/peg"
)

var keywords = map[string]bool{
	"let":   true,
	"if":    true,
	"else":  true,
	"split": true,
	"as":    true,
	"free":  true,
	"fn":    true,
	"true":  true,
	"false": true,
	"lin":   true,
	"un":    true,
	"bool":  true,
}

// Parse parses a file from an io.Reader.
// The first argument is the file path or "" if unspecified.
func Parse(path string, r io.Reader) (*tree.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	p := newParser(path, text)
	p.enter("File")
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.space()
	if p.pos < len(p.text) {
		return nil, p.fail("end of input")
	}
	p.leave()
	file := &tree.File{Expr: expr, P: path, Length: len(data)}
	for i, r := range data {
		if r == '\n' {
			file.NLs = append(file.NLs, i)
		}
	}
	return file, nil
}

// ParseFile parses the source from a file path.
func ParseFile(path string) (*tree.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// ParseExpr parses a single expression from a string.
func ParseExpr(src string) (tree.Expr, error) {
	f, err := Parse("", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return f.Expr, nil
}

// Error is a parse error.
// It reports the furthest position that the parser reached
// and the tokens that would have been accepted there.
type Error struct {
	Path string
	// Pos is the byte offset of the failure in the source.
	Pos int
	// Want are the alternatives accepted at Pos.
	Want []string
	// EOF is whether the failure is at the end of the input.
	EOF bool

	text string
	fail *peg.Fail
}

// Tree returns the failure tree,
// with one node per enclosing grammar rule.
func (err *Error) Tree() *peg.Fail { return err.fail }

func (err *Error) Error() string {
	e := peg.SimpleError(err.text, err.fail)
	e.FilePath = err.Path
	if err.EOF {
		return e.Error() + " (unexpected end of input)"
	}
	return e.Error()
}

type rule struct {
	name string
	pos  int
}

type parser struct {
	path  string
	text  string
	pos   int
	offs  int
	rules []rule
}

func newParser(path, text string) *parser {
	return &parser{path: path, text: text, offs: 1}
}

func (p *parser) enter(name string) { p.rules = append(p.rules, rule{name: name, pos: p.pos}) }
func (p *parser) leave()            { p.rules = p.rules[:len(p.rules)-1] }

// fail returns an *Error wanting one of want at the current position.
// The failure tree nests the leaves under every rule being parsed.
func (p *parser) fail(want ...string) error {
	kids := make([]*peg.Fail, len(want))
	for i, w := range want {
		kids[i] = &peg.Fail{Pos: p.pos, Want: w}
	}
	for i := len(p.rules) - 1; i >= 0; i-- {
		kids = []*peg.Fail{{
			Name: p.rules[i].name,
			Pos:  p.rules[i].pos,
			Kids: kids,
		}}
	}
	return &Error{
		Path: p.path,
		Pos:  p.pos,
		Want: want,
		EOF:  p.pos >= len(p.text),
		text: p.text,
		fail: kids[0],
	}
}

func (p *parser) loc(start int) loc.Loc {
	return loc.Loc{p.offs + start, p.offs + p.pos}
}

func (p *parser) space() {
	for p.pos < len(p.text) {
		r, w := peg.DecodeRuneInString(p.text[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += w
	}
}

func (p *parser) atSpace() bool {
	if p.pos >= len(p.text) {
		return false
	}
	r, _ := peg.DecodeRuneInString(p.text[p.pos:])
	return unicode.IsSpace(r)
}

// peekWord returns the maximal run of ASCII letters at the current position.
func (p *parser) peekWord() string {
	end := p.pos
	for end < len(p.text) && isLetter(p.text[end]) {
		end++
	}
	return p.text[p.pos:end]
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// lit skips space and accepts s if it is next.
func (p *parser) lit(s string) bool {
	p.space()
	if !strings.HasPrefix(p.text[p.pos:], s) {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *parser) expect(s string) error {
	if !p.lit(s) {
		return p.fail(`"` + s + `"`)
	}
	return nil
}

// keyword skips space and accepts the whole word kw.
func (p *parser) keyword(kw string) error {
	p.space()
	if p.peekWord() != kw {
		return p.fail(`"` + kw + `"`)
	}
	p.pos += len(kw)
	return nil
}

func (p *parser) ident() (tree.Ident, error) {
	p.space()
	start := p.pos
	w := p.peekWord()
	if w == "" || keywords[w] {
		return tree.Ident{}, p.fail("identifier")
	}
	p.pos += len(w)
	return tree.Ident{Name: w, L: p.loc(start)}, nil
}

var exprWant = []string{`"let"`, `"if"`, `"split"`, `"free"`, `"lin"`, `"un"`, `"("`, "identifier"}

func (p *parser) expr() (tree.Expr, error) {
	p.space()
	start := p.pos
	if p.lit("(") {
		return p.app(start)
	}
	w := p.peekWord()
	switch {
	case w == "":
		return nil, p.fail(exprWant...)
	case !keywords[w]:
		p.pos += len(w)
		return &tree.Var{Name: w, L: p.loc(start)}, nil
	}
	p.pos += len(w)
	switch w {
	case "let":
		return p.let(start)
	case "if":
		return p.ifExpr(start)
	case "split":
		return p.split(start)
	case "free":
		return p.free(start)
	case "lin":
		return p.qval(start, tree.Lin)
	case "un":
		return p.qval(start, tree.Un)
	default:
		p.pos = start
		return nil, p.fail(exprWant...)
	}
}

// block parses { EXPR }.
func (p *parser) block() (tree.Expr, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return e, nil
}

//	( EXPR EXPR )
// The two expressions must be separated by whitespace.
func (p *parser) app(start int) (tree.Expr, error) {
	p.enter("App")
	defer p.leave()
	fun, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.atSpace() {
		return nil, p.fail("whitespace")
	}
	arg, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return &tree.App{Fun: fun, Arg: arg, L: p.loc(start)}, nil
}

//	let VAR : TYPE = EXPR { EXPR }
func (p *parser) let(start int) (tree.Expr, error) {
	p.enter("Let")
	defer p.leave()
	v, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	if err := p.expect("="); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &tree.Let{Var: v, Type: t, Expr: e, Body: body, L: p.loc(start)}, nil
}

//	if EXPR { EXPR } else { EXPR }
func (p *parser) ifExpr(start int) (tree.Expr, error) {
	p.enter("If")
	defer p.leave()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.keyword("else"); err != nil {
		return nil, err
	}
	els, err := p.block()
	if err != nil {
		return nil, err
	}
	return &tree.If{Cond: cond, Then: then, Else: els, L: p.loc(start)}, nil
}

//	split EXPR as VAR , VAR { EXPR }
func (p *parser) split(start int) (tree.Expr, error) {
	p.enter("Split")
	defer p.leave()
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.keyword("as"); err != nil {
		return nil, err
	}
	left, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	right, err := p.ident()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &tree.Split{Expr: e, Left: left, Right: right, Body: body, L: p.loc(start)}, nil
}

//	free VAR ; EXPR
func (p *parser) free(start int) (tree.Expr, error) {
	p.enter("Free")
	defer p.leave()
	v, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &tree.Free{Var: v, Expr: e, L: p.loc(start)}, nil
}

//	QUAL VAL
func (p *parser) qval(start int, q tree.Qual) (tree.Expr, error) {
	p.enter("QVal")
	defer p.leave()
	v, err := p.val()
	if err != nil {
		return nil, err
	}
	return &tree.QVal{Qual: q, Val: v, L: p.loc(start)}, nil
}

//	true | false | < EXPR , EXPR > | fn VAR : TYPE { EXPR }
func (p *parser) val() (tree.Value, error) {
	p.space()
	start := p.pos
	if p.lit("<") {
		return p.pair(start)
	}
	switch w := p.peekWord(); w {
	case "true", "false":
		p.pos += len(w)
		return &tree.BoolLit{Val: w == "true", L: p.loc(start)}, nil
	case "fn":
		p.pos += len(w)
		return p.fn(start)
	default:
		return nil, p.fail(`"true"`, `"false"`, `"<"`, `"fn"`)
	}
}

func (p *parser) pair(start int) (tree.Value, error) {
	p.enter("Pair")
	defer p.leave()
	fst, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	snd, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return &tree.PairLit{Fst: fst, Snd: snd, L: p.loc(start)}, nil
}

func (p *parser) fn(start int) (tree.Value, error) {
	p.enter("Fn")
	defer p.leave()
	parm, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &tree.FnLit{Parm: parm, Type: t, Body: body, L: p.loc(start)}, nil
}

//	TYPE := QUAL PRIM
//	PRIM := bool | ( TYPE * TYPE ) | ( TYPE -> TYPE )
func (p *parser) typ() (*tree.Type, error) {
	p.enter("Type")
	defer p.leave()
	p.space()
	start := p.pos
	var q tree.Qual
	switch p.peekWord() {
	case "lin":
		q = tree.Lin
	case "un":
		q = tree.Un
	default:
		return nil, p.fail(`"lin"`, `"un"`)
	}
	p.pos += len(q.String())
	p.space()
	if p.peekWord() == "bool" {
		p.pos += len("bool")
		return &tree.Type{Qual: q, Prim: &tree.BoolType{}, L: p.loc(start)}, nil
	}
	if !p.lit("(") {
		return nil, p.fail(`"bool"`, `"("`)
	}
	t0, err := p.typ()
	if err != nil {
		return nil, err
	}
	var arrow bool
	switch {
	case p.lit("*"):
	case p.lit("->"):
		arrow = true
	default:
		return nil, p.fail(`"*"`, `"->"`)
	}
	t1, err := p.typ()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	t := &tree.Type{Qual: q, L: p.loc(start)}
	if arrow {
		t.Prim = &tree.ArrowType{Parm: t0, Ret: t1}
	} else {
		t.Prim = &tree.PairType{Fst: t0, Snd: t1}
	}
	return t, nil
}
