// Package stack implements the lexical-scope model of the core: Stack,
// Context, Scope, Variable and VariableAddress. A Stack is the runtime
// activation record a Function closes over; Context/Scope/Variable are the
// compile-time binding-site bookkeeping the compiler consults to resolve
// identifiers to stack slots.
package stack
