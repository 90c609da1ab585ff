package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
)

// Bindings maps each resolved Variable, Assign, This and Super node to the
// number of scopes between its use and its declaration. Names missing from
// the table are globals.
type Bindings map[ast.Expression]int

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionMethod
	functionInitializer
	functionLambda
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

// scope maps a name to whether its initializer has finished.
type scope map[string]bool

// Resolver is the static pass between parsing and evaluation. It computes
// scope distances and reports misuse of return, this and super.
type Resolver struct {
	reporter        *diagnostics.Reporter
	bindings        Bindings
	scopes          []scope
	currentFunction functionKind
	currentClass    classKind
}

func New(reporter *diagnostics.Reporter) *Resolver {
	return &Resolver{reporter: reporter, bindings: make(Bindings)}
}

// Resolve is shorthand for New(reporter).Resolve(stmts).
func Resolve(stmts []ast.Statement, reporter *diagnostics.Reporter) Bindings {
	return New(reporter).Resolve(stmts)
}

// Resolve walks stmts and returns the accumulated bindings. Errors are
// reported and resolution continues.
func (r *Resolver) Resolve(stmts []ast.Statement) Bindings {
	r.resolveStatements(stmts)
	return r.bindings
}

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(n.Statements)
		r.endScope()
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, functionPlain)
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name)
	case *ast.ExpressionStatement:
		r.resolveExpression(n.Expression)
	case *ast.If:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Then)
		if n.Else != nil {
			r.resolveStatement(n.Else)
		}
	case *ast.Print:
		r.resolveExpression(n.Expression)
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.reporter.TokenError(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.reporter.TokenError(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(n.Value)
		}
	case *ast.While:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Body)
	}
}

func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.reporter.TokenError(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(n.Superclass)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range n.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if n.Superclass != nil {
		r.endScope()
	}
}

// Parameters and body share one scope.
func (r *Resolver) resolveFunction(fn ast.FunctionNode, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, param := range fn.Parameters() {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Statements())
	r.endScope()
	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.reporter.TokenError(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	case *ast.Assign:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Lambda:
		r.resolveFunction(n, functionLambda)
	case *ast.Ternary:
		r.resolveExpression(n.Condition)
		r.resolveExpression(n.Then)
		r.resolveExpression(n.Else)
	case *ast.Binary:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Logical:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Call:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(n.Object)
	case *ast.Set:
		r.resolveExpression(n.Value)
		r.resolveExpression(n.Object)
	case *ast.Grouping:
		r.resolveExpression(n.Expression)
	case *ast.Unary:
		r.resolveExpression(n.Right)
	case *ast.This:
		if r.currentClass == classNone {
			r.reporter.TokenError(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.reporter.TokenError(n.Keyword, "Can't use 'super' outside of a class.")
			return
		case classPlain:
			r.reporter.TokenError(n.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			r.resolveExpression(el)
		}
	case *ast.IndexGet:
		r.resolveExpression(n.Object)
		r.resolveExpression(n.Index)
	case *ast.IndexSet:
		r.resolveExpression(n.Value)
		r.resolveExpression(n.Object)
		r.resolveExpression(n.Index)
	case *ast.Literal:
	}
}

func (r *Resolver) resolveLocal(expr ast.Expression, name ast.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bindings[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
