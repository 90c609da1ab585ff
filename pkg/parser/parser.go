package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
)

const maxArguments = 255

// ParseError marks a declaration that failed to parse. It has already been
// reported when it is returned.
type ParseError struct {
	Token   ast.Token
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parser is a recursive-descent parser over a scanned token stream.
type Parser struct {
	tokens   []ast.Token
	current  int
	reporter *diagnostics.Reporter
}

// New builds a parser. tokens must end with an EOF token.
func New(tokens []ast.Token, reporter *diagnostics.Reporter) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, ast.NewToken(ast.TokenEOF, "", nil, line))
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse is shorthand for New(tokens, reporter).Parse().
func Parse(tokens []ast.Token, reporter *diagnostics.Reporter) []ast.Statement {
	return New(tokens, reporter).Parse()
}

// Parse reads declarations until EOF. A declaration that fails to parse is
// dropped and the parser resynchronizes at the next statement boundary, so
// one call can report several errors.
func (p *Parser) Parse() []ast.Statement {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

// ParseExpression parses a single expression that must span the whole token
// stream.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.error(p.peek(), "Expect end of expression.")
	}
	return expr, nil
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == ast.TokenSemicolon {
			return
		}
		switch p.peek().Type {
		case ast.TokenClass, ast.TokenFun, ast.TokenVar, ast.TokenFor,
			ast.TokenIf, ast.TokenWhile, ast.TokenPrint, ast.TokenReturn:
			return
		}
		p.advance()
	}
}

func (p *Parser) consume(kind ast.TokenType, message string) (ast.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return ast.Token{}, p.error(p.peek(), message)
}

func (p *Parser) match(kinds ...ast.TokenType) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind ast.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == kind
}

func (p *Parser) checkNext(kind ast.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == kind
}

// ternaryAhead reports whether a `?` appears before the current expression
// ends. Only tokens at bracket depth 0 count, and the scan stops at anything
// that cannot continue a ternary condition.
func (p *Parser) ternaryAhead() bool {
	depth := 0
	for i := p.current; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case ast.TokenEOF, ast.TokenSemicolon, ast.TokenLeftBrace, ast.TokenRightBrace:
			return false
		case ast.TokenLeftParen, ast.TokenLeftBracket:
			depth++
		case ast.TokenRightParen, ast.TokenRightBracket:
			if depth == 0 {
				return false
			}
			depth--
		case ast.TokenEqual, ast.TokenComma, ast.TokenColon:
			if depth == 0 {
				return false
			}
		case ast.TokenQuestion:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) advance() ast.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == ast.TokenEOF
}

func (p *Parser) peek() ast.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() ast.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) error(token ast.Token, message string) *ParseError {
	p.reporter.TokenError(token, message)
	return &ParseError{Token: token, Message: message}
}
