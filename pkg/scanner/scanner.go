package scanner

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
)

// Scanner turns source text into tokens in a single left-to-right pass.
type Scanner struct {
	source   []rune
	tokens   []ast.Token
	reporter *diagnostics.Reporter

	start   int
	current int
	line    int
}

// New prepares a scanner over source. Lexical errors go to reporter.
func New(source string, reporter *diagnostics.Reporter) *Scanner {
	return &Scanner{
		source:   []rune(source),
		reporter: reporter,
		line:     1,
	}
}

// Scan is shorthand for New(source, reporter).ScanTokens().
func Scan(source string, reporter *diagnostics.Reporter) []ast.Token {
	return New(source, reporter).ScanTokens()
}

// ScanTokens consumes the whole source. The result always ends with exactly
// one EOF token.
func (s *Scanner) ScanTokens() []ast.Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, ast.NewToken(ast.TokenEOF, "", nil, s.line))
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(ast.TokenLeftParen)
	case ')':
		s.addToken(ast.TokenRightParen)
	case '{':
		s.addToken(ast.TokenLeftBrace)
	case '}':
		s.addToken(ast.TokenRightBrace)
	case '[':
		s.addToken(ast.TokenLeftBracket)
	case ']':
		s.addToken(ast.TokenRightBracket)
	case ',':
		s.addToken(ast.TokenComma)
	case '.':
		s.addToken(ast.TokenDot)
	case '-':
		s.addToken(ast.TokenMinus)
	case '+':
		s.addToken(ast.TokenPlus)
	case ';':
		s.addToken(ast.TokenSemicolon)
	case '*':
		s.addToken(ast.TokenStar)
	case '?':
		s.addToken(ast.TokenQuestion)
	case ':':
		s.addToken(ast.TokenColon)
	case '!':
		s.addToken(s.pick('=', ast.TokenBangEqual, ast.TokenBang))
	case '=':
		s.addToken(s.pick('=', ast.TokenEqualEqual, ast.TokenEqual))
	case '<':
		s.addToken(s.pick('=', ast.TokenLessEqual, ast.TokenLess))
	case '>':
		s.addToken(s.pick('=', ast.TokenGreaterEqual, ast.TokenGreater))
	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(ast.TokenSlash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.reporter.Error(s.line, fmt.Sprintf("Unexpected character '%c'.", c))
		}
	}
}

// Block comments do not nest.
func (s *Scanner) blockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.current += 2
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	s.reporter.Error(s.line, "Unterminated block comment.")
}

func (s *Scanner) string() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.reporter.Error(s.line, "Unterminated string.")
		return
	}
	s.advance()
	value := string(s.source[s.start+1 : s.current-1])
	s.addLiteral(ast.TokenString, value)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.reporter.Error(s.line, fmt.Sprintf("Invalid number '%s'.", text))
		return
	}
	s.addLiteral(ast.TokenNumber, value)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := string(s.source[s.start:s.current])
	if kind, ok := ast.Keywords[text]; ok {
		s.addToken(kind)
		return
	}
	s.addToken(ast.TokenIdentifier)
}

func (s *Scanner) pick(expected rune, matched, otherwise ast.TokenType) ast.TokenType {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(kind ast.TokenType) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind ast.TokenType, literal any) {
	text := string(s.source[s.start:s.current])
	s.tokens = append(s.tokens, ast.NewToken(kind, text, literal, s.line))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
