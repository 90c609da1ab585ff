package parser

import (
	"lox/interpreter-go/pkg/ast"
)

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(ast.TokenClass):
		return p.classDeclaration()
	case p.check(ast.TokenFun) && p.checkNext(ast.TokenIdentifier):
		p.advance()
		return p.function("function")
	case p.match(ast.TokenVar):
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(ast.TokenIdentifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(ast.TokenLess) {
		superName, err := p.consume(ast.TokenIdentifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariable(superName)
	}

	if _, err := p.consume(ast.TokenLeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*ast.Function
	for !p.check(ast.TokenRightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(ast.TokenRightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClass(name, superclass, methods), nil
}

// function parses a named function or method after its `fun` keyword.
func (p *Parser) function(kind string) (*ast.Function, error) {
	name, err := p.consume(ast.TokenIdentifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenLeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	params, body, err := p.functionRest(kind)
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(name, params, body), nil
}

// functionRest parses `params? ")" block`, shared by named functions and
// lambdas.
func (p *Parser) functionRest(kind string) ([]ast.Token, []ast.Statement, error) {
	var params []ast.Token
	if !p.check(ast.TokenRightParen) {
		for {
			if len(params) >= maxArguments {
				p.error(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(ast.TokenIdentifier, "Expect parameter name.")
			if err != nil {
				return nil, nil, err
			}
			params = append(params, param)
			if !p.match(ast.TokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(ast.TokenRightParen, "Expect ')' after parameters."); err != nil {
		return nil, nil, err
	}
	if _, err := p.consume(ast.TokenLeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(ast.TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(ast.TokenEqual) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVar(name, initializer), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(ast.TokenFor):
		return p.forStatement()
	case p.match(ast.TokenIf):
		return p.ifStatement()
	case p.match(ast.TokenPrint):
		return p.printStatement()
	case p.match(ast.TokenReturn):
		return p.returnStatement()
	case p.match(ast.TokenWhile):
		return p.whileStatement()
	case p.match(ast.TokenLeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(stmts), nil
	}
	return p.expressionStatement()
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokenLeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(ast.TokenSemicolon):
	case p.match(ast.TokenVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(ast.TokenSemicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokenSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(ast.TokenRightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokenRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if increment != nil {
		body = ast.NewBlock([]ast.Statement{body, ast.NewExpressionStatement(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	var loop ast.Statement = ast.NewWhile(condition, body)
	if initializer != nil {
		loop = ast.NewBlock([]ast.Statement{initializer, loop})
	}
	return loop, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokenLeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenRightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(ast.TokenElse) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(condition, thenBranch, elseBranch), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrint(value), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(ast.TokenSemicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokenSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturn(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokenLeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(condition, body), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed.
func (p *Parser) block() ([]ast.Statement, error) {
	statements := []ast.Statement{}
	for !p.check(ast.TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(ast.TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}
