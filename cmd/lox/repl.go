package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

const (
	promptMain         = "> "
	promptCont         = "... "
	defaultHistoryFile = ".lox_history"
	historyEnv         = "LOX_HISTORY"
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(args []string, opts cliOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "lox repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return driver.ExitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "warning: ignoring manifest: %v\n", err)
		manifest = nil
	}
	if manifest != nil && manifest.Trace {
		opts.trace = true
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath := historyPath(manifest); histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := driver.NewSession(driver.SessionOptions{
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(opts.trace),
	})
	for {
		code, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return driver.ExitOK
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if replCommand(trimmed, session, stdout) {
				return driver.ExitOK
			}
			continue
		}
		session.Run(code)
	}
}

// readChunk keeps prompting while brackets are open or a string or block
// comment is unterminated. ok is false at end of input.
func readChunk(p prompter) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintf(stderr, "lox: %v\n", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsContinuation(b.String()) {
			return b.String(), true
		}
	}
}

func needsContinuation(src string) bool {
	reporter := diagnostics.NewReporter(io.Discard)
	tokens := scanner.Scan(src, reporter)
	for _, d := range reporter.Diagnostics() {
		if strings.HasPrefix(d.Message, "Unterminated") {
			return true
		}
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case ast.TokenLeftParen, ast.TokenLeftBrace, ast.TokenLeftBracket:
			depth++
		case ast.TokenRightParen, ast.TokenRightBrace, ast.TokenRightBracket:
			depth--
		}
	}
	return depth > 0
}

// replCommand handles a ":" line and reports whether the REPL should exit.
func replCommand(cmd string, session *driver.Session, out io.Writer) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":exit", ":q":
		return true
	case ":globals":
		global := session.Interpreter.GlobalEnvironment()
		for _, name := range global.Keys() {
			value, err := global.Get(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "%s = %s\n", name, runtime.Display(value))
		}
	case ":help":
		fmt.Fprintln(out, ":globals  list global bindings")
		fmt.Fprintln(out, ":quit     leave the REPL")
	default:
		fmt.Fprintln(out, "unknown command. Type :help for commands.")
	}
	return false
}

// historyPath prefers $LOX_HISTORY, then lox.yml's history, then
// ~/.lox_history. Empty disables history.
func historyPath(manifest *driver.Manifest) string {
	if env := strings.TrimSpace(os.Getenv(historyEnv)); env != "" {
		return env
	}
	if manifest != nil && manifest.History != "" {
		return manifest.Resolve(manifest.History)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultHistoryFile)
}
