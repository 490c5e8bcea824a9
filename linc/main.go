// linc type-checks a lin source file.
//
// Usage:
//
//	linc [flags] file
//
// On success linc prints the syntax tree, the source, and the type of the program.
// On failure it prints a diagnostic to stderr and exits with status 1.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eaburns/lin/diag"
)

var (
	quiet      = flag.Bool("q", false, "print only the type")
	color      = flag.String("color", "auto", "color diagnostics: auto, always, or never")
	configPath = flag.String("config", "", "path to a YAML config file")
	watch      = flag.Bool("watch", false, "re-check the file each time it is written")
)

func main() {
	flag.Parse()
	args := flag.Args()
	switch {
	case len(args) == 0:
		usage("a source file is required")
	case len(args) > 1:
		usage("only one source file is supported")
	}
	cfg := &config{}
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			die("%s", err)
		}
	}
	if err := applyFlags(cfg, flag.CommandLine); err != nil {
		usage(err.Error())
	}
	d := &driver{
		out:   os.Stdout,
		diag:  &diag.Printer{W: os.Stderr, Color: diag.Color(cfg.colorMode, os.Stderr)},
		quiet: cfg.Quiet,
	}
	if cfg.Watch {
		if err := watchFile(args[0], d, nil); err != nil {
			die("%s", err)
		}
		return
	}
	if !d.run(args[0]) {
		os.Exit(1)
	}
}

func usage(msg string) {
	fmt.Fprintf(os.Stderr, "%s\n", msg)
	fmt.Fprintf(os.Stderr, "linc [flags] <file>\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func die(f string, vs ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", vs...)
	os.Exit(1)
}
