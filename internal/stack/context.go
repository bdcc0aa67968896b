package stack

import "github.com/google/uuid"

// Context is the compile-time owner of all variables belonging to a module or
// function: it has its own imports (other Contexts), a top
// Scope, and a monotonically growing list of every variable ever declared
// within it. Indices into AllVariables double as Stack slot indices and
// must remain stable once handed out, so Context never removes an entry.
//
// ID uses google/uuid so Contexts can be referenced from diagnostics or
// external tooling (disassembly output, error messages) without relying on
// pointer identity, which doesn't survive serialization.
type Context struct {
	ID           uuid.UUID
	Imports      []*Context
	Top          *Scope
	AllVariables []*Variable
}

// NewContext constructs a Context with no variables and a fresh top Scope,
// closing over imports.
func NewContext(imports []*Context) *Context {
	ctx := &Context{ID: uuid.New(), Imports: imports}
	ctx.Top = newScope(nil, ctx)
	return ctx
}

// Declare appends a new Variable to the context (stable index, never
// reused) and registers it in scope's variable list. It is the sole way new
// Variables are created; Declare, not the Scope, owns slot-index assignment
// because indices are Context-global, not Scope-local.
func (c *Context) Declare(scope *Scope, name string) *Variable {
	idx := len(c.AllVariables)
	v := NewVariable(name, idx, scope)
	c.AllVariables = append(c.AllVariables, v)
	scope.variables = append(scope.variables, v)
	return v
}

// DeclareLazy is Declare for a variable with a lazy initializer.
func (c *Context) DeclareLazy(scope *Scope, name string, lazyExpression any) *Variable {
	idx := len(c.AllVariables)
	v := NewLazyVariable(name, idx, scope, lazyExpression)
	c.AllVariables = append(c.AllVariables, v)
	scope.variables = append(scope.variables, v)
	return v
}

// NewStack allocates a fresh Stack sized to the context's current variable
// count, with imports mapped through importStacks (supplied by the caller,
// since a Context's imports are other Contexts, not Stacks — a Context may be
// shared by many activations, each needing its own import Stacks bound).
func (c *Context) NewStack(importStacks []*Stack) *Stack {
	return New(importStacks, len(c.AllVariables))
}
