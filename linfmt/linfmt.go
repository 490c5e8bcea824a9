// linfmt formats lin source files.
//
// Usage:
//
//	linfmt [-w] [file...]
//
// With no files, linfmt formats standard input.
// Formatted source is written to standard output,
// or back to the file with -w.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eaburns/lin/parser"
	"github.com/eaburns/lin/printer"
)

var write = flag.Bool("w", false, "write the result to the source file instead of standard output")

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		if *write {
			fail("cannot use -w with standard input")
		}
		if err := format("<stdin>", os.Stdin, os.Stdout); err != nil {
			fail("%s", err)
		}
		return
	}
	failed := false
	for _, path := range flag.Args() {
		if err := formatFile(path, *write, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// formatFile formats the file at path.
// If write is true, the file is replaced with the result;
// otherwise the result is written to out.
func formatFile(path string, write bool, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	err = format(path, f, &b)
	f.Close()
	if err != nil {
		return err
	}
	if !write {
		_, err := out.Write(b.Bytes())
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}

func format(path string, in io.Reader, out io.Writer) error {
	f, err := parser.Parse(path, in)
	if err != nil {
		return err
	}
	return printer.Print(out, f.Expr)
}

func fail(f string, xs ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", xs...)
	os.Exit(1)
}
