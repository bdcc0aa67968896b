package instr

import (
	"testing"

	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

func addTree() *Statement {
	return NewBinaryArith(AddInt,
		NewConstant(value.Int(1)).WithType(ptype.IntegerT),
		NewConstant(value.Int(2)).WithType(ptype.IntegerT))
}

func TestLowerPromotesArithmeticKinds(t *testing.T) {
	ins := Lower(addTree())
	if ins.Kind != AddInt {
		t.Fatalf("lowered kind = %s, want AddInt", ins.Kind)
	}
	if ins.Left == nil || ins.Left.Kind != Constant || ins.Right == nil {
		t.Fatal("operands not lowered into Left/Right")
	}

	neg := Lower(NewUnaryArith(NegFloat, NewConstant(value.Float(1)).WithType(ptype.FloatT)))
	if neg.Kind != NegFloat || neg.Left == nil || neg.Right != nil {
		t.Fatalf("unary lowering wrong: %s", neg.Kind)
	}
}

func TestLowerTranslatesAddressVerbatim(t *testing.T) {
	addr := stack.VariableAddress{1, 0, 3}
	ins := Lower(NewSetAddress(addr, NewConstant(value.Int(5)).WithType(ptype.IntegerT)))
	if len(ins.Address) != 3 || ins.Address[0] != 1 || ins.Address[1] != 0 || ins.Address[2] != 3 {
		t.Errorf("lowered address = %v, want %v", ins.Address, addr)
	}
}

// selfRecursiveDispatch builds a candidate whose body dispatches back to
// itself, the shape the compiler produces for a recursive function.
func selfRecursiveDispatch() *Statement {
	cand := &DispatchCandidate{ArgTypes: []*ptype.Type{ptype.IntegerT}, Locals: 1}
	cand.Body = NewSequence(
		NewDispatch([]*Statement{NewVariableGet(0).WithType(ptype.IntegerT)}, []int{0}, cand),
	)
	return NewDispatch([]*Statement{NewConstant(value.Int(1)).WithType(ptype.IntegerT)}, nil, cand)
}

func TestLowerTerminatesOnRecursiveCandidates(t *testing.T) {
	ins := Lower(selfRecursiveDispatch())
	cand := ins.Dispatchees[0]
	inner := cand.Body.Items[0]
	if inner.Dispatchees[0] != cand {
		t.Error("lowered recursive candidate not shared")
	}
}

func TestInstructionEqualityAndHash(t *testing.T) {
	a := Lower(addTree())
	b := Lower(addTree())
	if !Equal(a, b) {
		t.Error("identically built trees must be equal")
	}
	if Hash(a) != Hash(b) {
		t.Error("equal trees must hash equal")
	}

	c := Lower(NewBinaryArith(AddInt,
		NewConstant(value.Int(1)).WithType(ptype.IntegerT),
		NewConstant(value.Int(3)).WithType(ptype.IntegerT)))
	if Equal(a, c) {
		t.Error("trees with different constants must differ")
	}

	if !Equal(nil, nil) {
		t.Error("nil instructions are equal to each other")
	}
	if Equal(a, nil) {
		t.Error("nil is equal to nothing else")
	}
}

func TestRecursiveEqualityTerminates(t *testing.T) {
	a := Lower(selfRecursiveDispatch())
	b := Lower(selfRecursiveDispatch())
	if !Equal(a, b) {
		t.Error("structurally identical recursive trees must be equal")
	}
	if Hash(a) != Hash(b) {
		t.Error("structurally identical recursive trees must hash equal")
	}
	if !Equal(a, a) {
		t.Error("recursive tree must equal itself")
	}
}

func TestStatementEqualityIncludesCachedType(t *testing.T) {
	a := NewConstant(value.Int(1)).WithType(ptype.IntegerT)
	b := NewConstant(value.Int(1)).WithType(ptype.IntegerT)
	c := NewConstant(value.Int(1)).WithType(ptype.AnyT)

	if !EqualStatements(a, b) {
		t.Error("same constant, same cached type: must be equal")
	}
	if HashStatement(a) != HashStatement(b) {
		t.Error("equal statements must hash equal")
	}
	if EqualStatements(a, c) {
		t.Error("cached type participates in statement equality")
	}
}

func TestStatementEqualityIsStructural(t *testing.T) {
	mk := func() *Statement {
		return NewSequence(
			NewVariableSet(0, NewConstant(value.Int(1)).WithType(ptype.IntegerT)).WithType(ptype.IntegerT),
			NewVariableGet(0).WithType(ptype.IntegerT),
		).WithType(ptype.IntegerT)
	}
	if !EqualStatements(mk(), mk()) {
		t.Error("identically built statement trees must be equal")
	}
	if HashStatement(mk()) != HashStatement(mk()) {
		t.Error("equal statement trees must hash equal")
	}
}
