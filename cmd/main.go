package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"ippvm/internal/config"
	"ippvm/internal/logger"
	"ippvm/internal/runner"
	"ippvm/pkg/color"
)

// Main entry point for the IPPcode21 interpreter.
func main() {
	var (
		help       bool
		verbose    bool
		configPath string
		opts       runner.Runner
		flags      config.Config
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&verbose, "v", false, "Verbose mode (same as --log-level debug)")
	flag.StringVar(&configPath, "config", os.Getenv(config.EnvConfig), "YAML config file")
	flag.StringVar(&opts.SourceFile, "source", "", "Source file (text or XML); read from stdin when omitted")
	flag.StringVar(&opts.InputFile, "input", "", "Input file for READ; read from stdin when omitted")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&flags.NoColor, "no-color", false, "No color")
	flag.IntVar(&flags.MaxSteps, "max-steps", 0, "Abort after this many instructions (0 = unlimited)")
	flag.StringVar(&flags.SourceFormat, "format", "", "Source format: auto, text, xml")
	flag.StringVar(&flags.InputEncoding, "input-encoding", "", "Charset of the input file (e.g. windows-1250)")
	flag.BoolVar(&flags.Trace, "trace", false, "List the program and log every step")

	flag.Parse()

	if help {
		fmt.Printf("Usage: %s [options] [--source file] [--input file]\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		os.Exit(runner.StatusParameter)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		os.Exit(runner.StatusParameter)
	}

	// explicit flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "no-color":
			cfg.NoColor = flags.NoColor
		case "max-steps":
			cfg.MaxSteps = flags.MaxSteps
		case "format":
			cfg.SourceFormat = flags.SourceFormat
		case "input-encoding":
			cfg.InputEncoding = flags.InputEncoding
		case "trace":
			cfg.Trace = flags.Trace
		}
	})
	if verbose {
		cfg.LogLevel = "debug"
	}

	if cfg.NoColor {
		color.EnableColor(false)
	}

	if err := logger.Init(cfg.LogLevel, cfg.NoColor); err != nil {
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		os.Exit(runner.StatusParameter)
	}

	if flag.NArg() > 0 {
		log.Warn("Ignoring positional arguments", "args", flag.Args())
	}

	opts.Config = cfg
	os.Exit(opts.Run())
}
