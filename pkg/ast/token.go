package ast

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	// Single-character punctuation.
	TokenLeftParen    TokenType = "LEFT_PAREN"
	TokenRightParen   TokenType = "RIGHT_PAREN"
	TokenLeftBrace    TokenType = "LEFT_BRACE"
	TokenRightBrace   TokenType = "RIGHT_BRACE"
	TokenLeftBracket  TokenType = "LEFT_BRACKET"
	TokenRightBracket TokenType = "RIGHT_BRACKET"
	TokenComma        TokenType = "COMMA"
	TokenDot          TokenType = "DOT"
	TokenMinus        TokenType = "MINUS"
	TokenPlus         TokenType = "PLUS"
	TokenSemicolon    TokenType = "SEMICOLON"
	TokenSlash        TokenType = "SLASH"
	TokenStar         TokenType = "STAR"
	TokenQuestion     TokenType = "QUESTION_MARK"
	TokenColon        TokenType = "COLON"

	// One or two character operators.
	TokenBang         TokenType = "BANG"
	TokenBangEqual    TokenType = "BANG_EQUAL"
	TokenEqual        TokenType = "EQUAL"
	TokenEqualEqual   TokenType = "EQUAL_EQUAL"
	TokenGreater      TokenType = "GREATER"
	TokenGreaterEqual TokenType = "GREATER_EQUAL"
	TokenLess         TokenType = "LESS"
	TokenLessEqual    TokenType = "LESS_EQUAL"

	// Literals.
	TokenIdentifier TokenType = "IDENTIFIER"
	TokenString     TokenType = "STRING"
	TokenNumber     TokenType = "NUMBER"

	// Keywords.
	TokenAnd    TokenType = "AND"
	TokenClass  TokenType = "CLASS"
	TokenElse   TokenType = "ELSE"
	TokenFalse  TokenType = "FALSE"
	TokenFor    TokenType = "FOR"
	TokenFun    TokenType = "FUN"
	TokenIf     TokenType = "IF"
	TokenNil    TokenType = "NIL"
	TokenOr     TokenType = "OR"
	TokenPrint  TokenType = "PRINT"
	TokenReturn TokenType = "RETURN"
	TokenSuper  TokenType = "SUPER"
	TokenThis   TokenType = "THIS"
	TokenTrue   TokenType = "TRUE"
	TokenVar    TokenType = "VAR"
	TokenWhile  TokenType = "WHILE"

	TokenEOF TokenType = "EOF"
)

// Keywords maps reserved words to their token types.
var Keywords = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// Token is a lexeme produced by the scanner. Literal holds a float64 for
// NUMBER tokens, a string for STRING tokens and nil otherwise.
type Token struct {
	Type    TokenType `json:"type"`
	Lexeme  string    `json:"lexeme"`
	Literal any       `json:"literal,omitempty"`
	Line    int       `json:"line"`
}

// NewToken builds a token.
func NewToken(kind TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}
