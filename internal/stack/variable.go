package stack

import (
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/value"
)

// EvalState is a Variable's lazy-initialization state; reentry while
// Evaluating is a cycle error.
type EvalState byte

const (
	NotEvaluated EvalState = iota
	Evaluating
	Evaluated
)

// Variable is a compile-time binding-site record: a name bound to a stack
// slot within its owning Context, with an optional lazy initializer.
// LazyExpression is held as `any` rather than a concrete instruction type
// to avoid a package cycle (internal/instr is built above internal/stack);
// the evaluator, which imports both, asserts it back.
type Variable struct {
	Name           string
	CachedType     *ptype.Type
	StackIndex     int
	Scope          *Scope
	LazyExpression any
	State          EvalState
}

// NewVariable constructs a Variable bound to stackIndex within scope, with no
// lazy initializer and no cached type yet.
func NewVariable(name string, stackIndex int, scope *Scope) *Variable {
	return &Variable{Name: name, StackIndex: stackIndex, Scope: scope, State: Evaluated}
}

// NewLazyVariable constructs a Variable whose value is computed from
// lazyExpression the first time it is observed.
func NewLazyVariable(name string, stackIndex int, scope *Scope, lazyExpression any) *Variable {
	return &Variable{Name: name, StackIndex: stackIndex, Scope: scope, LazyExpression: lazyExpression, State: NotEvaluated}
}

// CycleError reports that a lazy variable's initializer observed its own
// variable before finishing evaluation.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	return "cycle detected evaluating lazy variable " + e.Name
}

// Resolve returns the Variable's value out of stk, running its lazy
// initializer exactly once via force if the variable hasn't been evaluated
// yet. force is supplied by the evaluator (which knows how to run a
// LazyExpression) rather than imported directly, keeping this package free
// of an internal/coreeval dependency.
func (v *Variable) Resolve(stk *Stack, force func(lazyExpression any) (value.Value, error)) (value.Value, error) {
	switch v.State {
	case Evaluated:
		return stk.Get(v.StackIndex), nil
	case Evaluating:
		return value.Value{}, &CycleError{Name: v.Name}
	default:
		v.State = Evaluating
		result, err := force(v.LazyExpression)
		if err != nil {
			v.State = NotEvaluated
			return value.Value{}, err
		}
		stk.Set(v.StackIndex, result)
		v.State = Evaluated
		return result, nil
	}
}
