package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eaburns/lin/diag"
	"gopkg.in/yaml.v3"
)

// config holds the driver settings.
// Values are read from an optional YAML file,
// and flags given on the command line take precedence.
type config struct {
	Quiet      bool   `yaml:"quiet"`
	Color      string `yaml:"color"`
	TraceDepth int    `yaml:"trace_depth"`
	Watch      bool   `yaml:"watch"`

	colorMode diag.Mode
}

func loadConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return parseConfig(f, path)
}

// parseConfig decodes a config from r.
// path is used only for error messages.
// An empty file is the zero config.
func parseConfig(r io.Reader, path string) (*config, error) {
	var cfg config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	mode, err := diag.ParseMode(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.colorMode = mode
	if cfg.TraceDepth < -1 {
		return nil, fmt.Errorf("config: %s: bad trace_depth %d", path, cfg.TraceDepth)
	}
	return &cfg, nil
}

// applyFlags overrides cfg with the flags that were set in fs.
// The trace depth from the file is applied to the trace.depth flag
// unless that flag was set explicitly.
func applyFlags(cfg *config, fs *flag.FlagSet) error {
	var err error
	traceSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "q":
			cfg.Quiet = f.Value.(flag.Getter).Get().(bool)
		case "watch":
			cfg.Watch = f.Value.(flag.Getter).Get().(bool)
		case "color":
			mode, e := diag.ParseMode(f.Value.String())
			if e != nil {
				err = fmt.Errorf("-color: %w", e)
				return
			}
			cfg.Color = f.Value.String()
			cfg.colorMode = mode
		case "trace.depth":
			traceSet = true
		}
	})
	if err != nil {
		return err
	}
	if !traceSet && cfg.TraceDepth != 0 {
		return fs.Set("trace.depth", fmt.Sprint(cfg.TraceDepth))
	}
	return nil
}
