package interpreter

import (
	"math"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateGet(n *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case *runtime.InstanceValue:
		if value, ok := obj.Get(n.Name.Lexeme); ok {
			return value, nil
		}
	case *runtime.ArrayValue:
		if n.Name.Lexeme == "length" {
			return runtime.NumberValue{Val: float64(len(obj.Elements))}, nil
		}
	default:
		return nil, runtimeErrorf(n.Name, "Only instances have properties.")
	}
	return nil, runtimeErrorf(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
}

func (i *Interpreter) evaluateSet(n *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Name, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name.Lexeme, value)
	return value, nil
}

// evaluateSuper finds the method on the superclass captured when the class
// was declared and binds it to the current `this`, which lives one scope
// inside `super`.
func (i *Interpreter) evaluateSuper(n *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.bindings[n]
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Can't use 'super' outside of a class.")
	}
	superValue, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, runtimeErrorf(n.Keyword, "%s", err.Error())
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Superclass must be a class.")
	}
	thisValue, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, runtimeErrorf(n.Keyword, "%s", err.Error())
	}
	instance, ok := thisValue.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Only instances have properties.")
	}
	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, runtimeErrorf(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (i *Interpreter) evaluateIndexGet(n *ast.IndexGet, env *runtime.Environment) (runtime.Value, error) {
	array, idx, err := i.indexTarget(n.Object, n.Index, n.Bracket, env)
	if err != nil {
		return nil, err
	}
	return array.Elements[idx], nil
}

func (i *Interpreter) evaluateIndexSet(n *ast.IndexSet, env *runtime.Environment) (runtime.Value, error) {
	array, idx, err := i.indexTarget(n.Object, n.Index, n.Bracket, env)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	array.Elements[idx] = value
	return value, nil
}

// indexTarget evaluates the object and index of an index expression and
// checks that the index addresses an existing element.
func (i *Interpreter) indexTarget(objectExpr, indexExpr ast.Expression, bracket ast.Token, env *runtime.Environment) (*runtime.ArrayValue, int, error) {
	object, err := i.evaluateExpression(objectExpr, env)
	if err != nil {
		return nil, 0, err
	}
	index, err := i.evaluateExpression(indexExpr, env)
	if err != nil {
		return nil, 0, err
	}
	num, ok := index.(runtime.NumberValue)
	if !ok {
		return nil, 0, runtimeErrorf(bracket, "Only numbers are allowed as index.")
	}
	array, ok := object.(*runtime.ArrayValue)
	if !ok {
		return nil, 0, runtimeErrorf(bracket, "Only arrays can be indexed.")
	}
	if num.Val != math.Trunc(num.Val) {
		return nil, 0, runtimeErrorf(bracket, "Array index must be an integer.")
	}
	if num.Val < 0 || num.Val >= float64(len(array.Elements)) {
		return nil, 0, runtimeErrorf(bracket, "Array index out of range.")
	}
	return array, int(num.Val), nil
}
