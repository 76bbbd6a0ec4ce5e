// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// urtool encodes payloads into UR part streams for animated QR codes and
// reassembles payloads from scanned parts.
//
//	urtool encode [flags] < payload > parts.txt
//	urtool decode [flags] < parts.txt > payload
//	urtool bytewords encode|decode [flags]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hrissan/ur/urstats"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("command required")
	}
	env := &environment{stdin: stdin, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "encode":
		return runEncode(env, args[1:])
	case "decode":
		return runDecode(env, args[1:])
	case "bytewords":
		return runBytewords(env, args[1:])
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: urtool <command> [flags]

commands:
  encode      split a payload into ur: parts, one per line
  decode      reassemble a payload from ur: parts
  bytewords   bytewords encode|decode

run "urtool <command> --help" for command flags
`)
}

type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    config
	logger *zap.Logger
	stats  urstats.Stats
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath string
	logLevel   string
	in         string
	out        string
}

func (c *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.configPath, "config", "", "config file, TOML or YAML (.yaml, .yml)")
	flagSet.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config or info)")
	flagSet.StringVar(&c.in, "in", "", "input file (default stdin)")
	flagSet.StringVar(&c.out, "out", "", "output file (default stdout)")
}

func newFlagSet(name string, env *environment) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(env.stderr)
	return flagSet
}

// parse parses args, loads config and sets up logging. It returns
// pflag.ErrHelp when help was requested.
func (env *environment) parse(flagSet *pflag.FlagSet, common *commonFlags, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	env.cfg = defaultConfig()
	if common.configPath != "" {
		cfg, err := loadConfig(common.configPath)
		if err != nil {
			return err
		}
		env.cfg = cfg
	}
	if flagSet.Changed("log-level") {
		env.cfg.LogLevel = common.logLevel
	}
	level, err := urstats.ParseLevel(env.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	env.logger = urstats.NewLogger(env.stderr, level)
	if level <= zapcore.DebugLevel {
		env.stats = urstats.NewStatsLogVerbose(env.logger)
	} else {
		env.stats = urstats.NewStatsLog(env.logger)
	}
	return nil
}

func (env *environment) readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(env.stdin)
	}
	return os.ReadFile(path)
}

func (env *environment) openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(env.stdin), nil
	}
	return os.Open(path)
}

func (env *environment) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := env.stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// finish turns a help request into success and flushes the logger.
func (env *environment) finish(err error) error {
	if env.logger != nil {
		_ = env.logger.Sync()
	}
	if err == pflag.ErrHelp {
		return nil
	}
	return err
}
