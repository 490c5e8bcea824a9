// Package diag renders parse and typing errors for the terminal.
//
// A diagnostic is the error message,
// followed by the offending source line
// and a caret under the column where the error begins.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eaburns/lin/loc"
	"github.com/eaburns/lin/parser"
	"github.com/mattn/go-isatty"
)

// Mode selects when diagnostics are colored.
type Mode int

const (
	Auto Mode = iota
	Always
	Never
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode named by s: auto, always, or never.
// The empty string is Auto.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	default:
		return Auto, fmt.Errorf("bad color mode %q: want auto, always, or never", s)
	}
}

// Color returns whether output to f is colored in mode m.
// In Auto mode, output is colored if f is a terminal
// and the NO_COLOR environment variable is unset or empty.
func Color(m Mode, f *os.File) bool {
	switch m {
	case Always:
		return true
	case Never:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	bold  = "\x1b[1m"
	red   = "\x1b[31m"
	green = "\x1b[32m"
	reset = "\x1b[0m"
)

// A Printer writes diagnostics to W.
type Printer struct {
	W     io.Writer
	Color bool
}

// Error writes err as a diagnostic.
// src is the source text that err refers to.
// If err has a source position, the diagnostic includes an excerpt of src.
func (p *Printer) Error(err error, src string) error {
	msg := err.Error()
	if p.Color {
		msg = bold + red + msg + reset
	}
	if _, err := fmt.Fprintln(p.W, msg); err != nil {
		return err
	}
	pos, ok := Pos(err)
	if !ok {
		return nil
	}
	ex := Excerpt(src, pos)
	if p.Color {
		i := strings.LastIndexByte(ex, '\n')
		ex = ex[:i+1] + green + ex[i+1:] + reset
	}
	_, err = fmt.Fprintln(p.W, ex)
	return err
}

// Pos returns the byte offset in the source at which err begins.
// The bool is false if err carries no position.
func Pos(err error) (int, bool) {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return perr.Pos, true
	}
	var locer loc.Locer
	if errors.As(err, &locer) {
		if l := locer.Loc(); l != (loc.Loc{}) {
			return l[0] - 1, true
		}
	}
	return 0, false
}

// Excerpt returns the line of src containing byte offset pos
// and a second line with a caret under the position.
// A pos at or past the end of src points just after the last character.
// Tabs in the line are kept in the caret line so that it stays aligned.
func Excerpt(src string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos
	}
	line := src[start:end]

	var caret strings.Builder
	for _, r := range src[start:pos] {
		if r == '\t' {
			caret.WriteRune('\t')
		} else {
			caret.WriteRune(' ')
		}
	}
	caret.WriteRune('^')
	return line + "\n" + caret.String()
}

