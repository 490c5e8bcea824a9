package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/eaburns/lin/checker"
	"github.com/eaburns/lin/diag"
	"github.com/eaburns/lin/parser"
	"github.com/eaburns/lin/tree"
)

type driver struct {
	out   io.Writer
	diag  *diag.Printer
	quiet bool
}

// run parses and checks the file at path, printing the outcome.
// It returns whether the file was read, parsed, and typed without error.
func (d *driver) run(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		d.diag.Error(err, "")
		return false
	}
	src := string(data)
	f, err := parser.Parse(path, bytes.NewReader(data))
	if err != nil {
		d.diag.Error(err, src)
		return false
	}
	t, err := checker.Check(f)
	if err != nil {
		d.diag.Error(err, src)
		return false
	}
	if !d.quiet {
		fmt.Fprintln(d.out, "AST:")
		f.Print(d.out, tree.PrintLocs(f))
		fmt.Fprintln(d.out, "Source:")
		fmt.Fprintln(d.out, src)
		fmt.Fprint(d.out, "Type: ")
	}
	fmt.Fprintln(d.out, t)
	return true
}
