package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lox/interpreter-go/pkg/ast"
)

// Severity distinguishes static diagnostics from runtime failures.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityRuntime Severity = "runtime"
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Line     int
	// Where is "", " at end" or " at 'lexeme'". Unused for runtime errors.
	Where   string
	Message string
}

func (d *Diagnostic) Error() string {
	return Describe(*d)
}

// Describe formats a diagnostic the way it is written to stderr.
func Describe(d Diagnostic) string {
	if d.Severity == SeverityRuntime {
		return fmt.Sprintf("[line %d] %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter collects diagnostics for one session. HadError and HadRuntimeError
// are sticky until Reset.
type Reporter struct {
	out         io.Writer
	diagnostics []Diagnostic

	HadError        bool
	HadRuntimeError bool
}

// NewReporter writes each diagnostic to out as it arrives. A nil writer
// defaults to stderr.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{out: out}
}

// Error reports a static error without a token location.
func (r *Reporter) Error(line int, message string) {
	r.report(Diagnostic{Severity: SeverityError, Line: line, Message: message})
}

// TokenError reports a static error at token.
func (r *Reporter) TokenError(token ast.Token, message string) {
	where := fmt.Sprintf(" at '%s'", token.Lexeme)
	if token.Type == ast.TokenEOF {
		where = " at end"
	}
	r.report(Diagnostic{Severity: SeverityError, Line: token.Line, Where: where, Message: message})
}

// RuntimeError reports an evaluation failure.
func (r *Reporter) RuntimeError(line int, message string) {
	r.report(Diagnostic{Severity: SeverityRuntime, Line: line, Message: message})
}

func (r *Reporter) report(d Diagnostic) {
	if d.Severity == SeverityRuntime {
		r.HadRuntimeError = true
	} else {
		r.HadError = true
	}
	r.diagnostics = append(r.diagnostics, d)
	fmt.Fprintln(r.out, Describe(d))
}

// Diagnostics returns everything reported since the last Reset.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Reset clears the flags and the collected diagnostics. The REPL calls it
// between lines.
func (r *Reporter) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
	r.diagnostics = nil
}

// Summary joins all collected diagnostics, one per line.
func (r *Reporter) Summary() string {
	lines := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		lines = append(lines, Describe(d))
	}
	return strings.Join(lines, "\n")
}
