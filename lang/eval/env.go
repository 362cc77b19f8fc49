package eval

import (
	"iter"
	"maps"
	"slices"

	"github.com/ardnew/brace/lang/ast"
)

// Binding is a variable's declared type and current value.
type Binding struct {
	Type  ast.Type
	Value Value
}

// Environment is a stack of scopes mapping names to bindings. It starts with
// a single global scope that is never popped.
type Environment struct {
	scopes []map[string]*Binding
}

// NewEnvironment returns an Environment holding only the global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]*Binding{{}}}
}

// Depth returns the number of scopes on the stack, 1 for the global scope
// alone.
func (e *Environment) Depth() int { return len(e.scopes) }

// Enter pushes a new innermost scope and returns the function that pops it.
// Callers release the scope on every exit path with:
//
//	defer env.Enter()()
func (e *Environment) Enter() (leave func()) {
	e.scopes = append(e.scopes, map[string]*Binding{})
	depth := len(e.scopes)

	return func() {
		// Scopes are released in LIFO order.
		if len(e.scopes) != depth {
			panic("eval: scope released out of order")
		}

		e.scopes = e.scopes[:depth-1]
	}
}

// Declare binds name in the innermost scope, replacing any binding of the
// same name in that scope and shadowing bindings in enclosing scopes.
func (e *Environment) Declare(name string, typ ast.Type, v Value) {
	e.scopes[len(e.scopes)-1][name] = &Binding{Type: typ, Value: v}
}

// Lookup returns the binding of name in the innermost scope that holds it.
func (e *Environment) Lookup(name string) (Binding, bool) {
	if b := e.find(name); b != nil {
		return *b, true
	}

	return Binding{}, false
}

// Assign overwrites the value of the nearest existing binding of name. It
// reports false, and changes nothing, if no scope holds name.
func (e *Environment) Assign(name string, v Value) bool {
	b := e.find(name)
	if b == nil {
		return false
	}

	b.Value = v

	return true
}

func (e *Environment) find(name string) *Binding {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			return b
		}
	}

	return nil
}

// Visible returns the bindings visible from the innermost scope in name
// order. Shadowed bindings are omitted.
func (e *Environment) Visible() iter.Seq2[string, Binding] {
	seen := map[string]*Binding{}
	for _, scope := range e.scopes {
		maps.Copy(seen, scope)
	}

	return func(yield func(string, Binding) bool) {
		for _, name := range slices.Sorted(maps.Keys(seen)) {
			if !yield(name, *seen[name]) {
				return
			}
		}
	}
}
