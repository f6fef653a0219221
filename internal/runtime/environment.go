package runtime

import (
	"fmt"
	"sort"
)

// Environment is one lexical scope. Lookups walk the parent chain, which
// always ends at the global scope.
type Environment struct {
	values map[string]Value
	parent *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates the binding in the nearest scope that defines name. It never
// creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("undefined variable '%s'", name)
}

// Keys returns the bindings of this scope only, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
