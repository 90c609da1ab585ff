package interpreter

import (
	"io"
	"log/slog"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// maxCallDepth bounds Lox-level recursion so runaway programs fail with a
// runtime error instead of exhausting the Go stack.
const maxCallDepth = 4096

// Interpreter evaluates resolved Lox programs. Globals and resolver bindings
// persist across Interpret calls, which is what lets a REPL build up state
// line by line.
type Interpreter struct {
	global   *runtime.Environment
	bindings resolver.Bindings
	out      io.Writer
	logger   *slog.Logger
	depth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where `print` writes. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithGlobal predefines a global binding, typically a native function.
func WithGlobal(name string, value runtime.Value) Option {
	return func(i *Interpreter) {
		i.DefineGlobal(name, value)
	}
}

// WithLogger enables debug tracing of calls and scopes.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   runtime.NewEnvironment(nil),
		bindings: make(resolver.Bindings),
		out:      os.Stdout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment exposes the root scope.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// DefineGlobal binds name in the global scope.
func (i *Interpreter) DefineGlobal(name string, value runtime.Value) {
	i.global.Define(name, value)
}

// Resolve merges resolver output into the interpreter's distance table.
func (i *Interpreter) Resolve(bindings resolver.Bindings) {
	for expr, depth := range bindings {
		i.bindings[expr] = depth
	}
}

// Interpret executes stmts in the global scope. The first runtime error stops
// execution and is returned as a *RuntimeError.
func (i *Interpreter) Interpret(stmts []ast.Statement, bindings resolver.Bindings) error {
	i.Resolve(bindings)
	i.depth = 0
	for _, stmt := range stmts {
		if _, err := i.execute(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}
