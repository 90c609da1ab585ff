package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// isTruthy treats nil and false as false and everything else as true.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case nil, runtime.NilValue:
		return false
	case runtime.BoolValue:
		return val.Val
	default:
		return true
	}
}

// valuesEqual never coerces: scalars compare by value, everything else by
// identity.
func valuesEqual(a, b runtime.Value) bool {
	switch left := a.(type) {
	case nil, runtime.NilValue:
		return isNil(b)
	case runtime.BoolValue:
		right, ok := b.(runtime.BoolValue)
		return ok && left.Val == right.Val
	case runtime.NumberValue:
		right, ok := b.(runtime.NumberValue)
		return ok && left.Val == right.Val
	case runtime.StringValue:
		right, ok := b.(runtime.StringValue)
		return ok && left.Val == right.Val
	default:
		return a == b
	}
}

func isNil(v runtime.Value) bool {
	switch v.(type) {
	case nil, runtime.NilValue:
		return true
	}
	return false
}

func (i *Interpreter) evaluateUnary(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Type {
	case ast.TokenBang:
		return runtime.BoolValue{Val: !isTruthy(right)}, nil
	case ast.TokenMinus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	}
	return nil, runtimeErrorf(n.Operator, "Unsupported unary operator %s.", n.Operator.Lexeme)
}

func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case ast.TokenEqualEqual:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case ast.TokenBangEqual:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case ast.TokenPlus:
		return add(n.Operator, left, right)
	}

	l, r, err := numberOperands(n.Operator, left, right)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Type {
	case ast.TokenMinus:
		return runtime.NumberValue{Val: l - r}, nil
	case ast.TokenStar:
		return runtime.NumberValue{Val: l * r}, nil
	case ast.TokenSlash:
		return runtime.NumberValue{Val: l / r}, nil
	case ast.TokenGreater:
		return runtime.BoolValue{Val: l > r}, nil
	case ast.TokenGreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case ast.TokenLess:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.TokenLessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	}
	return nil, runtimeErrorf(n.Operator, "Unsupported binary operator %s.", n.Operator.Lexeme)
}

// add sums two numbers, or concatenates when either side is a string.
func add(operator ast.Token, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if lok && rok {
		return runtime.NumberValue{Val: l.Val + r.Val}, nil
	}
	_, lstr := left.(runtime.StringValue)
	_, rstr := right.(runtime.StringValue)
	if lstr || rstr {
		return runtime.StringValue{Val: runtime.Display(left) + runtime.Display(right)}, nil
	}
	return nil, runtimeErrorf(operator, "Operands must be two numbers or at least one string.")
}

func numberOperands(operator ast.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtimeErrorf(operator, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}
