package ptype

import "testing"

func TestMatchSelfIdentity(t *testing.T) {
	types := []*Type{IntegerT, FloatT, StringT, BooleanT, NewList(IntegerT), NewUnion(IntegerT, FloatT)}
	for _, ty := range types {
		if got := ty.Match(ty); got != Equal {
			t.Errorf("Match(%s, %s) = %s, want Equal", ty, ty, got)
		}
	}
}

func TestStructuralMatchClampsToAlmostEqual(t *testing.T) {
	// Two distinct List<Integer> Type values are structurally the same set,
	// but concrete equality is only reached through the identity fast path;
	// structural recursion clamps at AlmostEqual.
	a := NewList(IntegerT)
	b := NewList(IntegerT)
	if got := a.Match(b); got != AlmostEqual {
		t.Errorf("Match(List<Integer>, List<Integer>) = %s, want AlmostEqual", got)
	}
	if a.Match(b) != b.Match(a) {
		t.Fatal("match must be commutative once both sides report AlmostEqual")
	}
}

func TestAnyMatchesEverything(t *testing.T) {
	if !Matches(AnyT, IntegerT) {
		t.Fatal("Any should match Integer")
	}
	if !Matches(AnyT, NewList(StringT)) {
		t.Fatal("Any should match List<String>")
	}
}

func TestConcreteKindMismatchIsNone(t *testing.T) {
	if got := IntegerT.Match(StringT); got != None {
		t.Errorf("Integer.Match(String) = %s, want None", got)
	}
}

func TestConcreteVsTypeclassIsUnknown(t *testing.T) {
	if got := IntegerT.Match(AnyT); got != Unknown {
		t.Errorf("Integer.Match(Any) = %s, want Unknown", got)
	}
}

func TestUnionMonotonicity(t *testing.T) {
	u := NewUnion(IntegerT, StringT)
	if !Matches(u, IntegerT) {
		t.Fatal("Union(Integer, String) should match Integer")
	}
	if !Matches(u, StringT) {
		t.Fatal("Union(Integer, String) should match String")
	}
	if Matches(u, FloatT) {
		t.Fatal("Union(Integer, String) should not match Float")
	}
}

func TestIntersectionAntitonicity(t *testing.T) {
	i := NewIntersection(IntegerT, NewBaseType(KindString))
	if Matches(i, IntegerT) {
		t.Fatal("Intersection(Integer, BaseType<String>) should not match Integer (String base-kind check fails)")
	}
}

func TestNotInvolution(t *testing.T) {
	inner := IntegerT
	doubled := NewNot(NewNot(inner))
	for _, candidate := range []*Type{IntegerT, StringT, FloatT} {
		got := doubled.Match(candidate)
		want := inner.Match(candidate)
		if got != want {
			t.Errorf("Not(Not(Integer)) match %s = %s, want %s", candidate, got, want)
		}
	}
}

func TestWithPropertyRequiresTagPresence(t *testing.T) {
	tag := &Tag{Name: "Template"}
	wp := NewWithProperty(IntegerT, tag)

	plain := IntegerT
	if Matches(wp, plain) {
		t.Fatal("WithProperty should fail when the tag is absent")
	}

	tagged := IntegerT.WithProps(NewProperties().With(tag))
	if !Matches(wp, tagged) {
		t.Fatal("WithProperty should succeed once the tag is attached")
	}
}

func TestBaseTypeMatchesKindOnly(t *testing.T) {
	bt := NewBaseType(KindInteger)
	if bt.Match(IntegerT) != True {
		t.Fatal("BaseType<Integer> should match Integer with True")
	}
	if bt.Match(StringT) != False {
		t.Fatal("BaseType<Integer> should not match String")
	}
}

func TestFunctionVariance(t *testing.T) {
	narrow := NewFunction(NewTuple([]*Type{IntegerT}, nil), IntegerT)
	wideArgs := NewFunction(NewTuple([]*Type{AnyT}, nil), IntegerT)

	// Arguments are contravariant: a function accepting Any satisfies a
	// matcher requiring a function accepting Integer.
	if !Matches(narrow, wideArgs) {
		t.Fatal("narrower-arg matcher should accept a function accepting a wider argument type")
	}
}

func TestTupleArityMismatchIsNone(t *testing.T) {
	a := NewTuple([]*Type{IntegerT}, nil)
	b := NewTuple([]*Type{IntegerT, IntegerT}, nil)
	if a.Match(b) != None {
		t.Fatal("tuples of different arity must not match")
	}
}

func TestMoreSpecificOverloadRanking(t *testing.T) {
	// foo(x) vs foo(x: Int) called with an Integer argument: the Int
	// overload must rank as more specific than Any.
	if !MoreSpecific([]*Type{IntegerT}, []*Type{AnyT}) {
		t.Fatal("Integer parameter should be more specific than Any parameter")
	}
	if MoreSpecific([]*Type{AnyT}, []*Type{IntegerT}) {
		t.Fatal("Any parameter must not be considered more specific than Integer")
	}
}

func TestCommonType(t *testing.T) {
	ct := CommonType(AnyT, IntegerT)
	if ct != AnyT {
		t.Fatalf("CommonType(Any, Integer) = %s, want Any", ct)
	}
}

func TestHashEqualCoherence(t *testing.T) {
	a := NewList(IntegerT)
	b := NewList(IntegerT)
	if !a.Equal(b) {
		t.Fatal("structurally identical List<Integer> types should be Equal")
	}
	if Hash(a) != Hash(b) {
		t.Fatal("equal types must hash equally")
	}
}

func TestNilTypeHashIsSentinel(t *testing.T) {
	if Hash(nil) != nilTypeHash {
		t.Fatal("nil type hash must be the fixed sentinel")
	}
}
