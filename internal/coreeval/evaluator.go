package coreeval

import (
	"github.com/cwbudde/corelang/internal/dispatch"
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// Evaluator owns one Stack at a time; evaluation is single-threaded and
// cooperative. The zero Evaluator never cancels; a host installs Cancelled
// to enforce budgets or timeouts, and CancelPayload to choose what the
// raised cancellation Effect carries.
type Evaluator struct {
	Cancelled     func() bool
	CancelPayload value.Value
}

// New constructs an Evaluator with no cancellation installed.
func New() *Evaluator {
	return &Evaluator{}
}

// Run evaluates ins against stk. An Effect that unwinds all the way out is
// returned as the result value alongside an UnhandledEffect error.
func (e *Evaluator) Run(ins *instr.Instruction, stk *stack.Stack) (value.Value, error) {
	v, err := e.eval(ins, stk)
	if err != nil {
		return value.None, err
	}
	if v.Kind == value.KindEffect {
		return v, corerr.NewUnhandledEffect(v.AsEffect().Inner.String())
	}
	return v, nil
}

// checkCancel is the cooperative suspension point: consulted at While and
// DoUntil iteration heads and before FunctionCall/Dispatch invocation. A
// cancelled evaluator raises an Effect carrying CancelPayload.
func (e *Evaluator) checkCancel() (value.Value, bool) {
	if e.Cancelled != nil && e.Cancelled() {
		return value.EffectOf(e.CancelPayload), true
	}
	return value.None, false
}

func (e *Evaluator) eval(i *instr.Instruction, stk *stack.Stack) (value.Value, error) {
	switch i.Kind {
	case instr.NoOp:
		return value.None, nil

	case instr.Constant:
		return i.ConstantValue, nil

	case instr.FunctionCall:
		if eff, stop := e.checkCancel(); stop {
			return eff, nil
		}
		callee, err := e.eval(i.Callee, stk)
		if err != nil || callee.Kind == value.KindEffect {
			return callee, err
		}
		args, eff, err := e.evalAll(i.Args, stk)
		if err != nil || eff.Kind == value.KindEffect {
			return eff, err
		}
		return e.callValue(callee, args)

	case instr.Dispatch:
		return e.evalDispatch(i, stk)

	case instr.Sequence:
		result := value.None
		for _, item := range i.Items {
			v, err := e.eval(item, stk)
			if err != nil || v.Kind == value.KindEffect {
				return v, err
			}
			result = v
		}
		return result, nil

	case instr.VariableGet:
		return stk.Get(i.VarIndex), nil

	case instr.VariableSet:
		v, err := e.eval(i.VarValue, stk)
		if err != nil || v.Kind == value.KindEffect {
			return v, err
		}
		return stk.Set(i.VarIndex, v), nil

	case instr.FromImportedStack:
		if i.ImportIndex < 0 || i.ImportIndex >= len(stk.Imports) {
			return value.None, corerr.NewDomainError("import access", "import index out of range")
		}
		return e.eval(i.Sub, stk.Import(i.ImportIndex))

	case instr.SetAddress:
		return e.evalSetAddress(i, stk)

	case instr.ArmStack:
		fn, err := e.eval(i.Fn, stk)
		if err != nil || fn.Kind == value.KindEffect {
			return fn, err
		}
		if fn.Kind != value.KindFunction {
			return value.None, corerr.NewDomainError("arm stack", "operand is not a function")
		}
		return value.FunctionOf(stk, fn.AsFunction().Instruction), nil

	case instr.If:
		cond, err := e.eval(i.Condition, stk)
		if err != nil || cond.Kind == value.KindEffect {
			return cond, err
		}
		if cond.Kind != value.KindBoolean {
			return value.None, corerr.NewTypeMismatchError(ptype.BooleanT, value.ToType(cond))
		}
		if cond.AsBool() {
			return e.eval(i.Then, stk)
		}
		if i.Else == nil {
			return value.None, nil
		}
		return e.eval(i.Else, stk)

	case instr.While:
		for {
			if eff, stop := e.checkCancel(); stop {
				return eff, nil
			}
			cond, err := e.eval(i.Condition, stk)
			if err != nil || cond.Kind == value.KindEffect {
				return cond, err
			}
			if cond.Kind != value.KindBoolean {
				return value.None, corerr.NewTypeMismatchError(ptype.BooleanT, value.ToType(cond))
			}
			if !cond.AsBool() {
				return value.None, nil
			}
			body, err := e.eval(i.Body, stk)
			if err != nil || body.Kind == value.KindEffect {
				return body, err
			}
		}

	case instr.DoUntil:
		for {
			body, err := e.eval(i.Body, stk)
			if err != nil || body.Kind == value.KindEffect {
				return body, err
			}
			cond, err := e.eval(i.Condition, stk)
			if err != nil || cond.Kind == value.KindEffect {
				return cond, err
			}
			if cond.Kind != value.KindBoolean {
				return value.None, corerr.NewTypeMismatchError(ptype.BooleanT, value.ToType(cond))
			}
			if cond.AsBool() {
				return value.None, nil
			}
			if eff, stop := e.checkCancel(); stop {
				return eff, nil
			}
		}

	case instr.EmitEffect:
		v, err := e.eval(i.Callee, stk)
		if err != nil || v.Kind == value.KindEffect {
			return v, err
		}
		return value.EffectOf(v), nil

	case instr.HandleEffect:
		body, err := e.eval(i.Body, stk)
		if err != nil {
			return body, err
		}
		if body.Kind != value.KindEffect {
			return body, nil
		}
		handler, err := e.eval(i.Handler, stk)
		if err != nil || handler.Kind == value.KindEffect {
			return handler, err
		}
		return e.callValue(handler, []value.Value{body.AsEffect().Inner})

	case instr.BuildTuple:
		items, eff, err := e.evalAll(i.Args, stk)
		if err != nil || eff.Kind == value.KindEffect {
			return eff, err
		}
		return value.ArrayOf(items...), nil

	case instr.BuildList:
		items, eff, err := e.evalAll(i.Args, stk)
		if err != nil || eff.Kind == value.KindEffect {
			return eff, err
		}
		return value.ListOf(items...), nil

	case instr.BuildSet:
		items, eff, err := e.evalAll(i.Args, stk)
		if err != nil || eff.Kind == value.KindEffect {
			return eff, err
		}
		s := value.NewSet()
		for _, item := range items {
			s.Add(item)
		}
		return value.SetOf(s), nil

	case instr.BuildTable:
		t := value.NewTable()
		for idx := range i.Keys {
			k, err := e.eval(i.Keys[idx], stk)
			if err != nil || k.Kind == value.KindEffect {
				return k, err
			}
			v, err := e.eval(i.Values[idx], stk)
			if err != nil || v.Kind == value.KindEffect {
				return v, err
			}
			t.Set(k, v)
		}
		return value.TableOf(t), nil

	case instr.BuildComposite:
		fields := make(map[string]value.Value, len(i.Names))
		for idx, name := range i.Names {
			v, err := e.eval(i.Values[idx], stk)
			if err != nil || v.Kind == value.KindEffect {
				return v, err
			}
			fields[name] = v
		}
		return value.CompositeOf(fields), nil

	default:
		if i.Kind.IsArithmetic() {
			return e.evalArithmetic(i, stk)
		}
		return value.None, corerr.NewDomainError("evaluate", "unknown instruction kind "+i.Kind.String())
	}
}

// evalAll evaluates items in program order. The middle return is an
// in-flight Effect to propagate (None otherwise), keeping the rule that any
// instruction evaluating a sub-instruction forwards an Effect result
// immediately.
func (e *Evaluator) evalAll(items []*instr.Instruction, stk *stack.Stack) ([]value.Value, value.Value, error) {
	out := make([]value.Value, len(items))
	for idx, item := range items {
		v, err := e.eval(item, stk)
		if err != nil || v.Kind == value.KindEffect {
			return nil, v, err
		}
		out[idx] = v
	}
	return out, value.None, nil
}

// callValue invokes a callable with already-evaluated arguments: a
// Function gets a shallow-refreshed copy of its
// captured frame with arguments bound into slots 0..n-1; a NativeFunction
// is passed the arguments positionally.
func (e *Evaluator) callValue(callee value.Value, args []value.Value) (value.Value, error) {
	switch callee.Kind {
	case value.KindFunction:
		fn := callee.AsFunction()
		frame, ok := fn.Stack.ShallowRefresh().(*stack.Stack)
		if !ok {
			return value.None, corerr.NewDomainError("call", "function frame is not a stack")
		}
		body, ok := fn.Instruction.(*instr.Instruction)
		if !ok {
			return value.None, corerr.NewDomainError("call", "function body is not an instruction")
		}
		frame.Grow(len(args))
		for idx, a := range args {
			frame.Set(idx, a)
		}
		return e.eval(body, frame)
	case value.KindNativeFunction:
		return callee.AsNativeFunction()(args), nil
	default:
		return value.None, corerr.NewDomainError("call", "value of kind "+callee.Kind.String()+" is not callable")
	}
}

// evalDispatch implements overload dispatch: evaluate arguments eagerly, derive
// their runtime types, let the shared dispatcher rank the candidates, then
// run the winner's body in a fresh frame importing the defining context's
// stack (reached by the compiled ImportPath hops).
func (e *Evaluator) evalDispatch(i *instr.Instruction, stk *stack.Stack) (value.Value, error) {
	if eff, stop := e.checkCancel(); stop {
		return eff, nil
	}
	args, eff, err := e.evalAll(i.Args, stk)
	if err != nil || eff.Kind == value.KindEffect {
		return eff, err
	}

	argTypes := make([]*ptype.Type, len(args))
	for idx, a := range args {
		argTypes[idx] = value.ToType(a)
	}

	cands := make([]dispatch.Candidate, len(i.Dispatchees))
	for idx, d := range i.Dispatchees {
		cands[idx] = dispatch.Candidate{ArgTypes: d.ArgTypes}
	}
	winner, err := dispatch.Select(cands, argTypes)
	if err != nil {
		return value.None, corerr.NewNoOverloadFoundError("dispatch", argTypes, "")
	}

	owner := stk
	for _, hop := range i.ImportPath {
		if hop < 0 || hop >= len(owner.Imports) {
			return value.None, corerr.NewDomainError("dispatch", "import path out of range")
		}
		owner = owner.Import(hop)
	}

	cand := i.Dispatchees[winner]
	size := cand.Locals
	if size < len(args) {
		size = len(args)
	}
	frame := stack.New([]*stack.Stack{owner}, size)
	for idx, a := range args {
		frame.Set(idx, a)
	}
	return e.eval(cand.Body, frame)
}

// evalSetAddress walks a VariableAddress from the current stack: every index
// but the last selects an import, the last is the slot.
func (e *Evaluator) evalSetAddress(i *instr.Instruction, stk *stack.Stack) (value.Value, error) {
	if len(i.Address) == 0 {
		return value.None, corerr.NewDomainError("set address", "empty address")
	}
	v, err := e.eval(i.SetValue, stk)
	if err != nil || v.Kind == value.KindEffect {
		return v, err
	}
	target := stk
	for _, hop := range i.Address[:len(i.Address)-1] {
		if hop < 0 || hop >= len(target.Imports) {
			return value.None, corerr.NewDomainError("set address", "import index out of range")
		}
		target = target.Import(hop)
	}
	slot := i.Address[len(i.Address)-1]
	if slot < 0 || slot >= target.Len() {
		return value.None, corerr.NewDomainError("set address", "slot index out of range")
	}
	return target.Set(slot, v), nil
}

// ResolveVariable reads a compile-time Variable's value out of stk, forcing
// its lazy initializer (a lowered *instr.Instruction installed by the
// compiler) exactly once; re-entry during that evaluation is the cycle
// error stack.Variable.Resolve raises.
func (e *Evaluator) ResolveVariable(v *stack.Variable, stk *stack.Stack) (value.Value, error) {
	return v.Resolve(stk, func(lazy any) (value.Value, error) {
		ins, ok := lazy.(*instr.Instruction)
		if !ok {
			return value.None, corerr.NewDomainError("lazy variable", "initializer is not an instruction")
		}
		result, err := e.eval(ins, stk)
		if err != nil {
			return value.None, err
		}
		if result.Kind == value.KindEffect {
			return value.None, corerr.NewUnhandledEffect(result.AsEffect().Inner.String())
		}
		return result, nil
	})
}
