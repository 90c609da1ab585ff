package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"lox/interpreter-go/pkg/driver"
)

const cliToolVersion = "lox 0.1.0"

// Swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type cliOptions struct {
	trace bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, remaining := parseGlobalFlags(args)
	if len(remaining) == 0 {
		return runRepl(nil, opts)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return driver.ExitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return driver.ExitOK
	case "run":
		return runEntry(remaining[1:], opts)
	case "repl":
		return runRepl(remaining[1:], opts)
	case "tokens":
		return runTokens(remaining[1:])
	case "ast":
		return runAST(remaining[1:])
	case "test":
		return runTest(remaining[1:])
	}

	if strings.HasPrefix(remaining[0], "-") {
		fmt.Fprintf(stderr, "unknown flag %s\n", remaining[0])
		printUsage(stderr)
		return driver.ExitUsage
	}
	if len(remaining) > 1 {
		printUsage(stderr)
		return driver.ExitUsage
	}
	return runScript(remaining[0], opts)
}

// parseGlobalFlags strips --trace from anywhere before a "--" separator.
func parseGlobalFlags(args []string) (cliOptions, []string) {
	var opts cliOptions
	remaining := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		if arg == "--trace" {
			opts.trace = true
			continue
		}
		remaining = append(remaining, arg)
	}
	return opts, remaining
}

func newLogger(trace bool) *slog.Logger {
	if !trace {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
