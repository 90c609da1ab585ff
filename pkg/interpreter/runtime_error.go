package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// RuntimeError aborts the current Interpret call. Token locates the failure.
type RuntimeError struct {
	Token   ast.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Line is the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

func runtimeErrorf(token ast.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: token, Message: fmt.Sprintf(format, args...)}
}
