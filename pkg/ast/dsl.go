package ast

// Builders for hand-assembled trees, mostly used by tests. Every token they
// produce sits on line 1.

var operatorTypes = map[string]TokenType{
	"(":   TokenLeftParen,
	")":   TokenRightParen,
	"{":   TokenLeftBrace,
	"}":   TokenRightBrace,
	"[":   TokenLeftBracket,
	"]":   TokenRightBracket,
	",":   TokenComma,
	".":   TokenDot,
	"-":   TokenMinus,
	"+":   TokenPlus,
	";":   TokenSemicolon,
	"/":   TokenSlash,
	"*":   TokenStar,
	"?":   TokenQuestion,
	":":   TokenColon,
	"!":   TokenBang,
	"!=":  TokenBangEqual,
	"=":   TokenEqual,
	"==":  TokenEqualEqual,
	">":   TokenGreater,
	">=":  TokenGreaterEqual,
	"<":   TokenLess,
	"<=":  TokenLessEqual,
	"and": TokenAnd,
	"or":  TokenOr,
}

// Ident returns an identifier token.
func Ident(name string) Token {
	return NewToken(TokenIdentifier, name, nil, 1)
}

// Op returns the operator or punctuation token spelled by lexeme.
func Op(lexeme string) Token {
	kind, ok := operatorTypes[lexeme]
	if !ok {
		panic("ast.Op: unknown operator " + lexeme)
	}
	return NewToken(kind, lexeme, nil, 1)
}

// Keyword returns the keyword token for word.
func Keyword(word string) Token {
	kind, ok := Keywords[word]
	if !ok {
		panic("ast.Keyword: unknown keyword " + word)
	}
	return NewToken(kind, word, nil, 1)
}

func Num(value float64) *Literal { return NewLiteral(value) }
func Str(value string) *Literal  { return NewLiteral(value) }
func Bool(value bool) *Literal   { return NewLiteral(value) }
func Nil() *Literal              { return NewLiteral(nil) }

func Ref(name string) *Variable {
	return NewVariable(Ident(name))
}

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Bin(left Expression, op string, right Expression) *Binary {
	return NewBinary(left, Op(op), right)
}

func Logic(left Expression, op string, right Expression) *Logical {
	return NewLogical(left, Op(op), right)
}

func Neg(right Expression) *Unary {
	return NewUnary(Op("-"), right)
}

func Not(right Expression) *Unary {
	return NewUnary(Op("!"), right)
}

func Cond(condition, then, otherwise Expression) *Ternary {
	return NewTernary(condition, then, otherwise)
}

func Assignment(name string, value Expression) *Assign {
	return NewAssign(Ident(name), value)
}

func CallExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, Op(")"), args)
}

func Prop(object Expression, name string) *Get {
	return NewGet(object, Ident(name))
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(Op("["), elements)
}

func Index(object, index Expression) *IndexGet {
	return NewIndexGet(object, Op("]"), index)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func PrintStmt(expr Expression) *Print {
	return NewPrint(expr)
}

func Let(name string, initializer Expression) *Var {
	return NewVar(Ident(name), initializer)
}

func Scope(stmts ...Statement) *Block {
	return NewBlock(stmts)
}

func Fn(name string, params []string, body ...Statement) *Function {
	tokens := make([]Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, Ident(p))
	}
	return NewFunction(Ident(name), tokens, body)
}

func Ret(value Expression) *Return {
	return NewReturn(Keyword("return"), value)
}
