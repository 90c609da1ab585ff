package interpreter

import (
	"fmt"
	"log/slog"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execute(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normalCompletion, err
	case *ast.Print:
		value, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return normalCompletion, err
		}
		fmt.Fprintln(i.out, runtime.Display(value))
		return normalCompletion, nil
	case *ast.Var:
		var value runtime.Value = runtime.Nil
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return normalCompletion, err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return normalCompletion, nil
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Function:
		env.Define(n.Name.Lexeme, runtime.NewFunction(n.Name.Lexeme, n, env, false))
		return normalCompletion, nil
	case *ast.Return:
		var value runtime.Value = runtime.Nil
		if n.Value != nil {
			v, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return normalCompletion, err
			}
			value = v
		}
		return returnCompletion(value), nil
	case *ast.Class:
		return normalCompletion, i.executeClass(n, env)
	default:
		return normalCompletion, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// executeBlock runs stmts in env, which the caller has already created.
func (i *Interpreter) executeBlock(stmts []ast.Statement, env *runtime.Environment) (completion, error) {
	i.logger.Debug("push scope", slog.Int("statements", len(stmts)))
	for _, stmt := range stmts {
		result, err := i.execute(stmt, env)
		if err != nil || result.returning() {
			return result, err
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeIf(n *ast.If, env *runtime.Environment) (completion, error) {
	condition, err := i.evaluateExpression(n.Condition, env)
	if err != nil {
		return normalCompletion, err
	}
	if isTruthy(condition) {
		return i.execute(n.Then, env)
	}
	if n.Else != nil {
		return i.execute(n.Else, env)
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeWhile(n *ast.While, env *runtime.Environment) (completion, error) {
	for {
		condition, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !isTruthy(condition) {
			return normalCompletion, nil
		}
		result, err := i.execute(n.Body, env)
		if err != nil || result.returning() {
			return result, err
		}
	}
}

func (i *Interpreter) executeClass(n *ast.Class, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if n.Superclass != nil {
		value, err := i.evaluateExpression(n.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return runtimeErrorf(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(n.Name.Lexeme, runtime.Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}
	methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
	for _, method := range n.Methods {
		name := method.Name.Lexeme
		methods[name] = runtime.NewFunction(name, method, methodEnv, name == "init")
	}

	class := runtime.NewClass(n.Name.Lexeme, superclass, methods)
	return env.Assign(n.Name.Lexeme, class)
}
