package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return runtime.FromLiteral(n.Value), nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Ternary:
		condition, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(condition) {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Else, env)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Lambda:
		return runtime.NewFunction("", n, env, false), nil
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.Super:
		return i.evaluateSuper(n, env)
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.IndexGet:
		return i.evaluateIndexGet(n, env)
	case *ast.IndexSet:
		return i.evaluateIndexSet(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

// lookUpVariable reads a resolved local at its recorded distance, or a global
// by name.
func (i *Interpreter) lookUpVariable(name ast.Token, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	var (
		value runtime.Value
		err   error
	)
	if distance, ok := i.bindings[expr]; ok {
		value, err = env.GetAt(distance, name.Lexeme)
	} else {
		value, err = i.global.Get(name.Lexeme)
	}
	if err != nil {
		return nil, runtimeErrorf(name, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) evaluateAssign(n *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.bindings[n]; ok {
		err = env.AssignAt(distance, n.Name.Lexeme, value)
	} else {
		err = i.global.Assign(n.Name.Lexeme, value)
	}
	if err != nil {
		return nil, runtimeErrorf(n.Name, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) evaluateLogical(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	if n.Operator.Type == ast.TokenOr {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(n.Right, env)
}

func (i *Interpreter) evaluateArrayLiteral(n *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		value, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, value)
	}
	return runtime.NewArray(elements), nil
}
