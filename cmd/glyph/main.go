// Package main is the entry point for glyph, a modal terminal editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/glyph/internal/app"
	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/editor"
	"github.com/dshills/glyph/internal/renderer/backend"
	"github.com/dshills/glyph/internal/widget"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	keys       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", &app.FileError{Op: "load config", Err: err})
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}

	session := app.NewSessionID()
	logger, closer, err := app.OpenLogger(cfg.Log, session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	app.SetLogger(logger)
	logger.Info("glyph %s starting", version)

	term, err := backend.New(cfg.Terminal.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	defer term.Close()

	appOpts := app.OptionsFromConfig(cfg)
	appOpts.Logger = logger.WithComponent("loop")

	var runner interface {
		Run() error
		Shutdown()
	}
	if opts.keys {
		printer := widget.NewInputPrinter[struct{}]()
		runner = app.New[struct{}](term, widget.NewRoot[struct{}](printer), struct{}{}, appOpts)
	} else {
		var edOpts []editor.Option
		if opts.configPath != "" {
			w, err := config.NewWatcher(opts.configPath)
			if err != nil {
				logger.Warn("config reload disabled: %v", err)
			} else {
				defer w.Close()
				edOpts = append(edOpts, editor.WithReloadSource(w))
			}
		}

		ed, err := editor.New(cfg, logger.WithComponent("editor"), edOpts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
			return 1
		}
		defer ed.Close()
		runner = app.New[*editor.State](term, ed.Root, ed.State, appOpts)
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			runner.Shutdown()
		}
	}()

	if err := runner.Run(); err != nil {
		logger.Error("exiting: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("glyph exiting")
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append log lines to this file")
	flag.BoolVar(&opts.keys, "keys", false, "Echo decoded key events instead of editing")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph - modal terminal editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glyph [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.NewEnvLoader(config.EnvPrefix).EnvNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glyph                       Edit an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  glyph -config glyph.toml    Use a configuration file, reloaded on change\n")
		fmt.Fprintf(os.Stderr, "  glyph -keys                 Show what the terminal sends\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("glyph %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		os.Exit(2)
	}

	return opts
}
