package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kievzenit/slox/internal/colors"
	"github.com/kievzenit/slox/internal/config"
	"github.com/kievzenit/slox/internal/driver"
	"github.com/kievzenit/slox/internal/lox_errors"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("slox", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "Path to a slox.yml config file")
	debug := flags.Bool("d", false, "Enable debug output")
	flags.BoolVar(debug, "debug", false, "Enable debug output")
	dumpTokens := flags.Bool("tokens", false, "Dump the token stream before parsing")
	dumpAST := flags.Bool("ast", false, "Dump the parsed statements before running")
	noColor := flags.Bool("no-color", false, "Disable colored diagnostics")
	showVersion := flags.Bool("v", false, "Show version")
	flags.BoolVar(showVersion, "version", false, "Show version")

	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: slox [options] [script]")
		fmt.Fprintln(stderr, "\nOptions:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return driver.ExitOK
		}
		return driver.ExitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "slox version %s\n", version)
		return driver.ExitOK
	}

	if flags.NArg() > 1 {
		flags.Usage()
		return driver.ExitUsage
	}

	path := *configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(wd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return driver.ExitUsage
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d", "debug":
			cfg.Debug = *debug
		case "tokens":
			cfg.DumpTokens = *dumpTokens
		case "ast":
			cfg.DumpAST = *dumpAST
		case "no-color":
			cfg.Color = !*noColor
		}
	})

	d := newDriver(cfg, stdout, stderr)

	if flags.NArg() == 1 {
		return runFile(d, flags.Arg(0), stderr, cfg.Color)
	}
	return runRepl(d, cfg, stdout, stderr)
}

func newDriver(cfg *config.Config, stdout, stderr io.Writer) *driver.Driver {
	opts := driver.Options{Output: stdout}

	if cfg.DumpTokens {
		opts.DumpTokens = stderr
	}
	if cfg.DumpAST {
		opts.DumpAST = stderr
	}
	if cfg.Debug {
		opts.Logger = log.New(stderr, "slox: ", log.Lmicroseconds)
		if cfg.Path != "" {
			opts.Logger.Printf("loaded config from %s", cfg.Path)
		}
	}

	eh := lox_errors.NewErrorHandler(stderr).WithColor(cfg.Color)
	return driver.New(eh, opts)
}

func runFile(d *driver.Driver, fileName string, stderr io.Writer, color bool) int {
	fileData, err := os.ReadFile(fileName)
	if err != nil {
		if color {
			colors.RED.Fprintln(stderr, err)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return driver.ExitNoInput
	}

	return d.Run(string(fileData)).ExitCode()
}
