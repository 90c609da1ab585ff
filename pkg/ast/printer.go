package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a number the way Lox displays it: the shortest decimal
// that round-trips, without a trailing ".0". Magnitudes below 1e-6 or from
// 1e21 up use exponent form such as 1e-7 or 1.5e+21.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		return exponentForm(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exponentForm drops the zero padding strconv puts on exponents ("1e-07").
func exponentForm(s string) string {
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// PrintExpression renders an expression in a parenthesized prefix form, e.g.
// `1 ? 2 : 3` becomes `(?: 1 2 3)`.
func PrintExpression(expr Expression) string {
	var b strings.Builder
	writeExpression(&b, expr)
	return b.String()
}

// PrintStatements renders a program, one top-level statement per line.
func PrintStatements(stmts []Statement) string {
	var b strings.Builder
	for idx, stmt := range stmts {
		if idx > 0 {
			b.WriteByte('\n')
		}
		writeStatement(&b, stmt)
	}
	return b.String()
}

func parenthesize(b *strings.Builder, name string, parts ...func()) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		part()
	}
	b.WriteByte(')')
}

func exprPart(b *strings.Builder, expr Expression) func() {
	return func() { writeExpression(b, expr) }
}

func stmtPart(b *strings.Builder, stmt Statement) func() {
	return func() { writeStatement(b, stmt) }
}

func textPart(b *strings.Builder, text string) func() {
	return func() { b.WriteString(text) }
}

func paramsPart(b *strings.Builder, params []Token) func() {
	return func() {
		names := make([]string, 0, len(params))
		for _, p := range params {
			names = append(names, p.Lexeme)
		}
		b.WriteString("(" + strings.Join(names, " ") + ")")
	}
}

func literalText(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return `"` + v + `"`
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeExpression(b *strings.Builder, expr Expression) {
	switch n := expr.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Literal:
		b.WriteString(literalText(n.Value))
	case *Grouping:
		parenthesize(b, "group", exprPart(b, n.Expression))
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, exprPart(b, n.Right))
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, exprPart(b, n.Left), exprPart(b, n.Right))
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, exprPart(b, n.Left), exprPart(b, n.Right))
	case *Ternary:
		parenthesize(b, "?:", exprPart(b, n.Condition), exprPart(b, n.Then), exprPart(b, n.Else))
	case *Assign:
		parenthesize(b, "=", textPart(b, n.Name.Lexeme), exprPart(b, n.Value))
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Call:
		parts := []func(){exprPart(b, n.Callee)}
		for _, arg := range n.Arguments {
			parts = append(parts, exprPart(b, arg))
		}
		parenthesize(b, "call", parts...)
	case *Get:
		parenthesize(b, ".", exprPart(b, n.Object), textPart(b, n.Name.Lexeme))
	case *Set:
		parenthesize(b, "=", exprPart(b, NewGet(n.Object, n.Name)), exprPart(b, n.Value))
	case *This:
		b.WriteString("this")
	case *Super:
		parenthesize(b, "super", textPart(b, n.Method.Lexeme))
	case *Lambda:
		parts := []func(){paramsPart(b, n.Params)}
		for _, stmt := range n.Body {
			parts = append(parts, stmtPart(b, stmt))
		}
		parenthesize(b, "fun", parts...)
	case *ArrayLiteral:
		parts := make([]func(), 0, len(n.Elements))
		for _, el := range n.Elements {
			parts = append(parts, exprPart(b, el))
		}
		parenthesize(b, "array", parts...)
	case *IndexGet:
		parenthesize(b, "[]", exprPart(b, n.Object), exprPart(b, n.Index))
	case *IndexSet:
		parenthesize(b, "=", exprPart(b, NewIndexGet(n.Object, n.Bracket, n.Index)), exprPart(b, n.Value))
	default:
		fmt.Fprintf(b, "<%s>", expr.NodeType())
	}
}

func writeStatement(b *strings.Builder, stmt Statement) {
	switch n := stmt.(type) {
	case nil:
		b.WriteString("<nil>")
	case *ExpressionStatement:
		parenthesize(b, ";", exprPart(b, n.Expression))
	case *Print:
		parenthesize(b, "print", exprPart(b, n.Expression))
	case *Var:
		if n.Initializer == nil {
			parenthesize(b, "var", textPart(b, n.Name.Lexeme))
			return
		}
		parenthesize(b, "var", textPart(b, n.Name.Lexeme), exprPart(b, n.Initializer))
	case *Block:
		parts := make([]func(), 0, len(n.Statements))
		for _, inner := range n.Statements {
			parts = append(parts, stmtPart(b, inner))
		}
		parenthesize(b, "block", parts...)
	case *If:
		if n.Else == nil {
			parenthesize(b, "if", exprPart(b, n.Condition), stmtPart(b, n.Then))
			return
		}
		parenthesize(b, "if-else", exprPart(b, n.Condition), stmtPart(b, n.Then), stmtPart(b, n.Else))
	case *While:
		parenthesize(b, "while", exprPart(b, n.Condition), stmtPart(b, n.Body))
	case *Function:
		parts := []func(){textPart(b, n.Name.Lexeme), paramsPart(b, n.Params)}
		for _, inner := range n.Body {
			parts = append(parts, stmtPart(b, inner))
		}
		parenthesize(b, "fun", parts...)
	case *Return:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", exprPart(b, n.Value))
	case *Class:
		parts := []func(){textPart(b, n.Name.Lexeme)}
		if n.Superclass != nil {
			parts = append(parts, textPart(b, "< "+n.Superclass.Name.Lexeme))
		}
		for _, method := range n.Methods {
			parts = append(parts, stmtPart(b, method))
		}
		parenthesize(b, "class", parts...)
	default:
		fmt.Fprintf(b, "<%s>", stmt.NodeType())
	}
}
