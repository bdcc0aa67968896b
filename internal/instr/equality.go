package instr

import (
	"github.com/cwbudde/corelang/internal/value"
)

// Equal implements structural equality for Instruction trees. Two
// Instructions are equal iff their Kind and every populated field match
// recursively; nil Instructions are equal to each other and to nothing else.
// Dispatch candidates may be self-referential (a recursive overload's body
// dispatches back to its own candidate), so candidate pairs currently under
// comparison are assumed equal on re-entry instead of recursed into again.
func Equal(a, b *Instruction) bool {
	st := &eqState{visiting: make(map[candidatePair]bool)}
	return st.equal(a, b)
}

type candidatePair struct {
	a, b *InstrDispatchCandidate
}

type eqState struct {
	visiting map[candidatePair]bool
}

func (st *eqState) equal(a, b *Instruction) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Constant:
		return value.Equal(a.ConstantValue, b.ConstantValue)
	case FunctionCall, BuildTuple, BuildList, BuildSet:
		return st.equal(a.Callee, b.Callee) && st.sliceEqual(a.Args, b.Args)
	case Dispatch:
		return st.sliceEqual(a.Args, b.Args) && st.dispatcheesEqual(a.Dispatchees, b.Dispatchees) &&
			addressEqual(a.ImportPath, b.ImportPath)
	case Sequence:
		return st.sliceEqual(a.Items, b.Items)
	case VariableGet:
		return a.VarIndex == b.VarIndex
	case VariableSet:
		return a.VarIndex == b.VarIndex && st.equal(a.VarValue, b.VarValue)
	case FromImportedStack:
		return a.ImportIndex == b.ImportIndex && st.equal(a.Sub, b.Sub)
	case SetAddress:
		return addressEqual(a.Address, b.Address) && st.equal(a.SetValue, b.SetValue)
	case ArmStack:
		return st.equal(a.Fn, b.Fn)
	case If:
		return st.equal(a.Condition, b.Condition) && st.equal(a.Then, b.Then) && st.equal(a.Else, b.Else)
	case While:
		return st.equal(a.Condition, b.Condition) && st.equal(a.Body, b.Body)
	case DoUntil:
		return st.equal(a.Body, b.Body) && st.equal(a.Condition, b.Condition)
	case EmitEffect:
		return st.equal(a.Callee, b.Callee)
	case HandleEffect:
		return st.equal(a.Handler, b.Handler) && st.equal(a.Body, b.Body)
	case BuildTable:
		return st.sliceEqual(a.Keys, b.Keys) && st.sliceEqual(a.Values, b.Values)
	case BuildComposite:
		return namesEqual(a.Names, b.Names) && st.sliceEqual(a.Values, b.Values)
	case NoOp:
		return true
	default:
		if a.Kind.IsArithmetic() {
			if a.Kind.IsUnaryArithmetic() {
				return st.equal(a.Left, b.Left)
			}
			return st.equal(a.Left, b.Left) && st.equal(a.Right, b.Right)
		}
		return true
	}
}

func (st *eqState) sliceEqual(a, b []*Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !st.equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (st *eqState) dispatcheesEqual(a, b []*InstrDispatchCandidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if len(a[i].ArgTypes) != len(b[i].ArgTypes) {
			return false
		}
		for j := range a[i].ArgTypes {
			if !a[i].ArgTypes[j].Equal(b[i].ArgTypes[j]) {
				return false
			}
		}
		if a[i].Locals != b[i].Locals {
			return false
		}
		pair := candidatePair{a[i], b[i]}
		if st.visiting[pair] {
			continue
		}
		st.visiting[pair] = true
		if !st.equal(a[i].Body, b[i].Body) {
			return false
		}
	}
	return true
}

func addressEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func namesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
