package runtime

import (
	"fmt"
	"sort"
)

// UndefinedVariableError is returned when a name is bound nowhere in the
// searched scopes.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Environment provides lexical scoping for Lox runtime values. Evaluation is
// single-threaded, so it carries no lock.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Ancestor walks distance parent links. It returns nil if the chain is
// shorter than that.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from exactly the scope distance hops out.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	env := e.Ancestor(distance)
	if env != nil {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// AssignAt writes name in exactly the scope distance hops out.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	env := e.Ancestor(distance)
	if env == nil {
		return &UndefinedVariableError{Name: name}
	}
	env.values[name] = value
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
