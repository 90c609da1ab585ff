package interpreter

import (
	"errors"
	"log/slog"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		value, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtimeErrorf(n.Paren, "Can only call functions and classes.")
	}
	if arity := callable.Arity(); len(args) != arity {
		return nil, runtimeErrorf(n.Paren, "Expected %d arguments but got %d.", arity, len(args))
	}
	return i.call(callable, args, n.Paren)
}

// call invokes callable with arguments whose count has already been checked.
func (i *Interpreter) call(callable runtime.Callable, args []runtime.Value, paren ast.Token) (runtime.Value, error) {
	if i.depth >= maxCallDepth {
		return nil, runtimeErrorf(paren, "Stack overflow.")
	}
	i.depth++
	defer func() { i.depth-- }()
	i.logger.Debug("call", slog.String("callee", runtime.Display(callable)), slog.Int("args", len(args)), slog.Int("depth", i.depth), slog.Int("line", paren.Line))

	switch fn := callable.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(fn, args)
	case *runtime.NativeFunctionValue:
		result, err := fn.Impl(&runtime.NativeCallContext{Globals: i.global}, args)
		if err != nil {
			var rtErr *RuntimeError
			if errors.As(err, &rtErr) {
				return nil, rtErr
			}
			return nil, runtimeErrorf(paren, "%s", err.Error())
		}
		if result == nil {
			result = runtime.Nil
		}
		return result, nil
	case *runtime.ClassValue:
		return i.instantiate(fn, args)
	}
	return nil, runtimeErrorf(paren, "Can only call functions and classes.")
}

// callFunction runs the body in a fresh scope parented to the closure. An
// initializer always yields its instance, even after an early `return;`.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Parameters() {
		env.Define(param.Lexeme, args[idx])
	}
	result, err := i.executeBlock(fn.Declaration.Statements(), env)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	if result.returning() {
		return result.value, nil
	}
	return runtime.Nil, nil
}

func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if initializer, ok := class.FindMethod("init"); ok {
		if _, err := i.callFunction(initializer.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
