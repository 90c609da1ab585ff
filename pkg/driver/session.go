package driver

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/scanner"
)

// Process exit codes, following the BSD sysexits convention.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
	ExitConfig   = 78
)

// SessionOptions configures a Session. Nil writers default to stdout/stderr.
type SessionOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Session owns one interpreter and its diagnostics sink. Globals survive
// between Run calls.
type Session struct {
	Reporter    *diagnostics.Reporter
	Interpreter *interpreter.Interpreter
	logger      *slog.Logger
}

// Result summarises one Run.
type Result struct {
	HadError        bool
	HadRuntimeError bool
	// Err is the runtime error that stopped execution, if any.
	Err error
}

// ExitCode maps a run outcome to a process exit status.
func (r Result) ExitCode() int {
	switch {
	case r.HadError:
		return ExitDataErr
	case r.HadRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}

// NewSession builds a session with the standard natives installed.
func NewSession(opts SessionOptions) *Session {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	interpOpts := []interpreter.Option{
		interpreter.WithOutput(stdout),
		interpreter.WithLogger(logger),
	}
	for name, native := range Natives() {
		interpOpts = append(interpOpts, interpreter.WithGlobal(name, native))
	}
	return &Session{
		Reporter:    diagnostics.NewReporter(opts.Stderr),
		Interpreter: interpreter.New(interpOpts...),
		logger:      logger,
	}
}

// Run scans, parses, resolves and interprets source. Any static error
// suppresses execution.
func (s *Session) Run(source string) Result {
	s.Reporter.Reset()

	tokens := scanner.Scan(source, s.Reporter)
	stmts := parser.Parse(tokens, s.Reporter)
	s.logger.Debug("parsed", slog.Int("tokens", len(tokens)), slog.Int("statements", len(stmts)))
	if s.Reporter.HadError {
		return Result{HadError: true}
	}

	bindings := resolver.Resolve(stmts, s.Reporter)
	s.logger.Debug("resolved", slog.Int("bindings", len(bindings)))
	if s.Reporter.HadError {
		return Result{HadError: true}
	}

	if err := s.Interpreter.Interpret(stmts, bindings); err != nil {
		var rtErr *interpreter.RuntimeError
		if errors.As(err, &rtErr) {
			s.Reporter.RuntimeError(rtErr.Line(), rtErr.Message)
		} else {
			s.Reporter.RuntimeError(0, err.Error())
		}
		return Result{HadRuntimeError: true, Err: err}
	}
	return Result{}
}

// Tokens scans source without parsing it.
func Tokens(source string, reporter *diagnostics.Reporter) []ast.Token {
	return scanner.Scan(source, reporter)
}

// ParseProgram scans and parses source without resolving or running it.
func ParseProgram(source string, reporter *diagnostics.Reporter) []ast.Statement {
	return parser.Parse(scanner.Scan(source, reporter), reporter)
}
