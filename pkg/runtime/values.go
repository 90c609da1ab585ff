package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Callable is implemented by functions, natives and classes.
type Callable interface {
	Value
	Arity() int
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// Nil is the single nil value.
var Nil = NilValue{}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Arrays
//-----------------------------------------------------------------------------

// ArrayValue is a mutable sequence shared by reference.
type ArrayValue struct {
	Elements []Value
}

func NewArray(elements []Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

func (v *ArrayValue) Kind() Kind { return KindArray }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a user function, method or lambda paired with the
// environment it was declared in.
type FunctionValue struct {
	Name          string
	Declaration   ast.FunctionNode
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(name string, decl ast.FunctionNode, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Name: name, Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Parameters()) }

// IsLambda reports whether the function came from a lambda expression.
func (v *FunctionValue) IsLambda() bool {
	_, ok := v.Declaration.(*ast.Lambda)
	return ok
}

// Bind returns a copy of the method whose closure defines `this`.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return NewFunction(v.Name, v.Declaration, env, v.IsInitializer)
}

// NativeCallContext is handed to native functions on each call.
type NativeCallContext struct {
	Globals *Environment
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name     string
	ArityVal int
	Impl     NativeFunc
}

func NewNativeFunction(name string, arity int, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, ArityVal: arity, Impl: impl}
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ArityVal }

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{Name: name, Superclass: superclass, Methods: methods}
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod looks in the class, then up the superclass chain.
func (v *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	for class := v; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

// Arity is the initializer's arity, or zero without one.
func (v *ClassValue) Arity() int {
	if initializer, ok := v.FindMethod("init"); ok {
		return initializer.Arity()
	}
	return 0
}

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get returns a field, or else a method bound to this instance.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if field, ok := v.Fields[name]; ok {
		return field, true
	}
	if method, ok := v.Class.FindMethod(name); ok {
		return method.Bind(v), true
	}
	return nil, false
}

func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}
