// Package main is a terminal demo for the mathtext editable field.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/mathtext/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	ui, err := newUI(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}
	defer ui.Close()

	if opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, ui.ApplyConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer w.Close()
	}

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	ConfigPath string
	MathMode   bool
	Latex      string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.MathMode, "math", false, "Start in math mode instead of text mode")
	flag.StringVar(&opts.Latex, "latex", "", "Initial field content as LaTeX source")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mathtext - editable text/math field demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathtext [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  type         insert characters ($ toggles math/text)\n")
		fmt.Fprintf(os.Stderr, "  arrows       move, with Shift to select\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-A       select all\n")
		fmt.Fprintf(os.Stderr, "  Esc          quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("mathtext %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
