package parser

import (
	"lox/interpreter-go/pkg/ast"
)

func (p *Parser) expression() (ast.Expression, error) {
	if p.ternaryAhead() {
		return p.ternary()
	}
	return p.assignment()
}

func (p *Parser) lambda() (ast.Expression, error) {
	keyword := p.advance()
	if _, err := p.consume(ast.TokenLeftParen, "Expect '(' after 'fun'."); err != nil {
		return nil, err
	}
	params, body, err := p.functionRest("lambda")
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(keyword, params, body), nil
}

func (p *Parser) ternary() (ast.Expression, error) {
	condition, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenQuestion, "Expect '?' after condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokenColon, "Expect ':' after first expression."); err != nil {
		return nil, err
	}
	elseBranch, err := p.comparison()
	if err != nil {
		return nil, err
	}
	return ast.NewTernary(condition, thenBranch, elseBranch), nil
}

// assignment reports a bad target without failing the statement.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(ast.TokenEqual) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Variable:
		return ast.NewAssign(target.Name, value), nil
	case *ast.Get:
		return ast.NewSet(target.Object, target.Name, value), nil
	case *ast.IndexGet:
		return ast.NewIndexSet(target.Object, target.Bracket, target.Index, value), nil
	}
	p.error(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	return p.leftAssoc(p.and, true, ast.TokenOr)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.leftAssoc(p.equality, true, ast.TokenAnd)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.leftAssoc(p.comparison, false, ast.TokenBangEqual, ast.TokenEqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.leftAssoc(p.term, false, ast.TokenGreater, ast.TokenGreaterEqual, ast.TokenLess, ast.TokenLessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.leftAssoc(p.factor, false, ast.TokenMinus, ast.TokenPlus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.leftAssoc(p.unary, false, ast.TokenSlash, ast.TokenStar)
}

// leftAssoc parses `operand (op operand)*` and folds to the left. logical
// selects Logical nodes instead of Binary ones.
func (p *Parser) leftAssoc(operand func() (ast.Expression, error), logical bool, operators ...ast.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		if logical {
			expr = ast.NewLogical(expr, operator, right)
		} else {
			expr = ast.NewBinary(expr, operator, right)
		}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(ast.TokenBang, ast.TokenMinus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, right), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(ast.TokenLeftParen):
			args, err := p.arguments(ast.TokenRightParen)
			if err != nil {
				return nil, err
			}
			paren, err := p.consume(ast.TokenRightParen, "Expect ')' after arguments.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewCall(expr, paren, args)
		case p.match(ast.TokenDot):
			name, err := p.consume(ast.TokenIdentifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, name)
		case p.match(ast.TokenLeftBracket):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			bracket, err := p.consume(ast.TokenRightBracket, "Expect ']' after index.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewIndexGet(expr, bracket, index)
		default:
			return expr, nil
		}
	}
}

// arguments parses a comma-separated expression list up to (not including)
// the closing token.
func (p *Parser) arguments(closing ast.TokenType) ([]ast.Expression, error) {
	args := []ast.Expression{}
	if p.check(closing) {
		return args, nil
	}
	for {
		if len(args) >= maxArguments {
			p.error(p.peek(), "Can't have more than 255 arguments.")
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(ast.TokenComma) {
			return args, nil
		}
	}
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(ast.TokenFalse):
		return ast.NewLiteral(false), nil
	case p.match(ast.TokenTrue):
		return ast.NewLiteral(true), nil
	case p.match(ast.TokenNil):
		return ast.NewLiteral(nil), nil
	case p.match(ast.TokenNumber, ast.TokenString):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(ast.TokenThis):
		return ast.NewThis(p.previous()), nil
	case p.match(ast.TokenSuper):
		keyword := p.previous()
		if _, err := p.consume(ast.TokenDot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(ast.TokenIdentifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuper(keyword, method), nil
	case p.match(ast.TokenIdentifier):
		return ast.NewVariable(p.previous()), nil
	case p.check(ast.TokenFun):
		return p.lambda()
	case p.match(ast.TokenLeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case p.match(ast.TokenLeftBracket):
		bracket := p.previous()
		elements, err := p.arguments(ast.TokenRightBracket)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.TokenRightBracket, "Expect ']' after array elements."); err != nil {
			return nil, err
		}
		return ast.NewArrayLiteral(bracket, elements), nil
	}
	return nil, p.error(p.peek(), "Expect expression.")
}
