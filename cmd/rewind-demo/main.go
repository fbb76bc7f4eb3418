// Package main is an interactive demonstration of the rewind library.
//
// It maintains a list of items edited through undoable actions, optionally
// seeded and bounded by a TOML/YAML config file, and can run Lua scripts
// against the same stack instead of starting the UI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	headless   bool
	scripts    []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("rewind-demo %s (%s)\n", version, commit)
		return 0
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	stk := rewind.New()
	stk.SetLimit(cfg.Limit)

	scripts := append(append([]string{}, cfg.Scripts...), opts.scripts...)
	if len(scripts) > 0 {
		if err := runScripts(stk, scripts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.headless {
		printSummary(stk)
		return 0
	}

	a, err := newApp(stk, cfg, opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer a.shutdown()

	if err := a.runLoop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.headless, "headless", false, "Run scripts and print a history summary without the UI")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	opts.scripts = flag.Args()
	return opts, showVersion
}

// runScripts executes Lua files against the stack in order.
func runScripts(stk *rewind.Stack, paths []string) error {
	L := script.NewState()
	defer L.Close()

	if err := script.NewModule(stk).Register(L); err != nil {
		return fmt.Errorf("registering undo module: %w", err)
	}

	for _, path := range paths {
		if err := L.DoFile(path); err != nil {
			return fmt.Errorf("running script %s: %w", path, err)
		}
	}
	return nil
}

// printSummary writes the recorded history to stdout.
func printSummary(stk *rewind.Stack) {
	fmt.Printf("history: %d done, %d redoable, changed=%v\n",
		stk.UndoCount(), stk.RedoCount(), stk.HasChanged())
	for _, info := range stk.UndoInfo() {
		fmt.Printf("  done  %s  %s\n", info.ID, info.Text)
	}
	for _, info := range stk.RedoInfo() {
		fmt.Printf("  redo  %s  %s\n", info.ID, info.Text)
	}
}
