package checker

import (
	"flag"
	"fmt"
	"strings"

	"github.com/eaburns/lin/loc"
)

var (
	traceDepth = flag.Int("trace.depth", 0, "max depth for trace (0 = no trace; -1 = infinite)")
)

const traceIndent = "\t"

var bullets = []string{"•", "◦", "‣", "⁃"}

type traceItem struct {
	c      *typer
	indent string
	bullet int
}

func (c *typer) trItem(f string, vs ...interface{}) *traceItem {
	tr := &traceItem{c: c, indent: c.trIndent, bullet: c.nextBullet}
	c.trIndent += traceIndent
	c.nextBullet++
	tr.trace(f, vs...)
	return tr
}

func (tr *traceItem) done() {
	tr.c.trIndent = strings.TrimSuffix(tr.c.trIndent, traceIndent)
	tr.c.nextBullet--
}

func (tr *traceItem) trace(f string, vs ...interface{}) {
	if tr.c.traceDepth == 0 || tr.c.traceOut == nil {
		return
	}
	depth := strings.Count(tr.indent, traceIndent) + 1
	if tr.c.traceDepth > 0 && depth > tr.c.traceDepth {
		return
	}
	for i := range vs {
		l, ok := vs[i].(loc.Loc)
		if !ok || len(tr.c.files) == 0 {
			continue
		}
		vs[i] = tr.c.files.Location(l)
	}
	s := fmt.Sprintf(f, vs...)
	s = strings.TrimSuffix(s, "\n")
	s = strings.ReplaceAll(s, "\n", "\n"+tr.indent+"  ")
	if tr.bullet >= 0 {
		s = bullets[tr.bullet%len(bullets)] + " " + s
		tr.bullet = -1
	} else {
		s = "  " + s
	}
	fmt.Fprintln(tr.c.traceOut, tr.indent+s)
}
