package coreeval

import (
	"errors"
	"math"
	"testing"

	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

func constInt(n int64) *instr.Statement {
	return instr.NewConstant(value.Int(n)).WithType(ptype.IntegerT)
}

func run(t *testing.T, s *instr.Statement, stk *stack.Stack) value.Value {
	t.Helper()
	v, err := New().Run(instr.Lower(s), stk)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return v
}

func TestSequenceYieldsLast(t *testing.T) {
	s := instr.NewSequence(constInt(1), constInt(2), constInt(3))
	got := run(t, s, stack.New(nil, 0))
	if !value.Equal(got, value.Int(3)) {
		t.Errorf("got %s, want 3", got)
	}
}

func TestEmptySequenceYieldsNone(t *testing.T) {
	got := run(t, instr.NewSequence(), stack.New(nil, 0))
	if !got.IsNone() {
		t.Errorf("got %s, want none", got)
	}
}

func TestVariableSetReturnsStoredValue(t *testing.T) {
	stk := stack.New(nil, 1)
	got := run(t, instr.NewVariableSet(0, constInt(42)), stk)
	if !value.Equal(got, value.Int(42)) {
		t.Errorf("set result = %s, want 42", got)
	}
	if !value.Equal(stk.Get(0), value.Int(42)) {
		t.Errorf("slot 0 = %s, want 42", stk.Get(0))
	}
}

func TestWhileCountsToFive(t *testing.T) {
	// i = 0; while i < 5 do i = i + 1
	loop := instr.NewSequence(
		instr.NewVariableSet(0, constInt(0)),
		instr.NewWhile(
			instr.NewBinaryArith(instr.CmpLtInt, instr.NewVariableGet(0), constInt(5)),
			instr.NewVariableSet(0, instr.NewBinaryArith(instr.AddInt, instr.NewVariableGet(0), constInt(1))),
		),
	)
	stk := stack.New(nil, 1)
	got := run(t, loop, stk)
	if !got.IsNone() {
		t.Errorf("while result = %s, want none", got)
	}
	if !value.Equal(stk.Get(0), value.Int(5)) {
		t.Errorf("counter = %s, want 5", stk.Get(0))
	}
}

func TestDoUntilRunsBodyAtLeastOnce(t *testing.T) {
	// i starts at 10; do i = i + 1 until i > 0  -- body runs exactly once
	s := instr.NewSequence(
		instr.NewVariableSet(0, constInt(10)),
		instr.NewDoUntil(
			instr.NewVariableSet(0, instr.NewBinaryArith(instr.AddInt, instr.NewVariableGet(0), constInt(1))),
			instr.NewBinaryArith(instr.CmpGtInt, instr.NewVariableGet(0), constInt(0)),
		),
	)
	stk := stack.New(nil, 1)
	run(t, s, stk)
	if !value.Equal(stk.Get(0), value.Int(11)) {
		t.Errorf("counter = %s, want 11", stk.Get(0))
	}
}

func TestIfWithoutElseYieldsNone(t *testing.T) {
	s := instr.NewIf(instr.NewConstant(value.Bool(false)), constInt(1), nil)
	got := run(t, s, stack.New(nil, 0))
	if !got.IsNone() {
		t.Errorf("got %s, want none", got)
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	s := instr.NewIf(constInt(1), constInt(2), nil)
	_, err := New().Run(instr.Lower(s), stack.New(nil, 0))
	var tm *corerr.TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("err = %v, want TypeMismatchError", err)
	}
}

func TestIntegerDivisionByZero(t *testing.T) {
	s := instr.NewBinaryArith(instr.DivInt, constInt(1), constInt(0))
	_, err := New().Run(instr.Lower(s), stack.New(nil, 0))
	var de *corerr.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DomainError", err)
	}
}

func TestFloatDivisionByZeroIsIEEE(t *testing.T) {
	s := instr.NewBinaryArith(instr.DivFloat,
		instr.NewConstant(value.Float(1)), instr.NewConstant(value.Float(0)))
	got := run(t, s, stack.New(nil, 0))
	if got.Kind != value.KindFloat || !math.IsInf(got.AsFloat(), 1) {
		t.Errorf("1.0/0.0 = %s, want +Inf", got)
	}
}

func TestHandleEffectCatchesEmit(t *testing.T) {
	handler := value.NativeFunctionOf(func(args []value.Value) value.Value {
		return value.Int(args[0].AsInt() + 10)
	})
	// handle: body emits 32, then would produce 99; the emit unwinds first.
	s := instr.NewHandleEffect(
		instr.NewConstant(handler),
		instr.NewSequence(instr.NewEmitEffect(constInt(32)), constInt(99)),
	)
	got := run(t, s, stack.New(nil, 0))
	if !value.Equal(got, value.Int(42)) {
		t.Errorf("handled effect = %s, want 42", got)
	}
}

func TestHandleEffectPassesThroughPlainResult(t *testing.T) {
	handler := value.NativeFunctionOf(func(args []value.Value) value.Value {
		t.Error("handler must not run for a non-effect body result")
		return value.None
	})
	s := instr.NewHandleEffect(instr.NewConstant(handler), constInt(7))
	got := run(t, s, stack.New(nil, 0))
	if !value.Equal(got, value.Int(7)) {
		t.Errorf("got %s, want 7", got)
	}
}

func TestUnhandledEffectReturnsEffectAndError(t *testing.T) {
	s := instr.NewSequence(instr.NewEmitEffect(constInt(5)), constInt(9))
	got, err := New().Run(instr.Lower(s), stack.New(nil, 0))
	var ue *corerr.UnhandledEffect
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnhandledEffect", err)
	}
	if got.Kind != value.KindEffect || !value.Equal(got.AsEffect().Inner, value.Int(5)) {
		t.Errorf("result = %s, want effect 5", got)
	}
}

func TestEffectUnwindsThroughSequenceAndArguments(t *testing.T) {
	// The effect emitted by the first argument must prevent the second
	// argument's side effect from running.
	ran := false
	spy := value.NativeFunctionOf(func(args []value.Value) value.Value {
		ran = true
		return value.None
	})
	s := instr.NewSequence(
		instr.NewBuildList(
			instr.NewEmitEffect(constInt(1)),
			instr.NewFunctionCall(instr.NewConstant(spy)),
		),
	)
	_, err := New().Run(instr.Lower(s), stack.New(nil, 0))
	var ue *corerr.UnhandledEffect
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnhandledEffect", err)
	}
	if ran {
		t.Error("second argument evaluated after an in-flight effect")
	}
}

func TestCancellationRaisesEffect(t *testing.T) {
	e := New()
	ticks := 0
	e.Cancelled = func() bool {
		ticks++
		return ticks > 3
	}
	e.CancelPayload = value.StringOf("deadline")
	// while true do none  -- only the cancellation flag can stop it.
	loop := instr.NewWhile(instr.NewConstant(value.Bool(true)), instr.NewNoOp())
	got, err := e.Run(instr.Lower(loop), stack.New(nil, 0))
	var ue *corerr.UnhandledEffect
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnhandledEffect from cancellation", err)
	}
	if got.Kind != value.KindEffect || !value.Equal(got.AsEffect().Inner, value.StringOf("deadline")) {
		t.Errorf("result = %s, want the cancellation payload effect", got)
	}
}

func TestArmStackCapturesCurrentFrame(t *testing.T) {
	// Body adds the bound argument (slot 0) to a captured variable (slot 1).
	body := instr.Lower(instr.NewBinaryArith(instr.AddInt, instr.NewVariableGet(0), instr.NewVariableGet(1)))
	template := stack.New(nil, 2)
	fn := value.FunctionOf(template, body)

	current := stack.New(nil, 2)
	current.Set(1, value.Int(41))

	call := instr.NewFunctionCall(
		instr.NewArmStack(instr.NewConstant(fn)),
		constInt(1),
	)
	got := run(t, call, current)
	if !value.Equal(got, value.Int(42)) {
		t.Errorf("closure call = %s, want 42", got)
	}
	// The armed call must not clobber the capturing frame's slots.
	if !value.Equal(current.Get(0), value.None) {
		t.Errorf("caller slot 0 = %s, want untouched none", current.Get(0))
	}
}

func TestFunctionCallRefreshesTemplateFrame(t *testing.T) {
	body := instr.Lower(instr.NewVariableSet(0, instr.NewBinaryArith(instr.AddInt, instr.NewVariableGet(0), constInt(1))))
	template := stack.New(nil, 1)
	template.Set(0, value.Int(100))
	fn := value.FunctionOf(template, body)

	call := instr.NewFunctionCall(instr.NewConstant(fn), constInt(1))
	got := run(t, call, stack.New(nil, 0))
	if !value.Equal(got, value.Int(2)) {
		t.Errorf("call = %s, want 2", got)
	}
	if !value.Equal(template.Get(0), value.Int(100)) {
		t.Errorf("template slot mutated to %s; calls must run on a refreshed copy", template.Get(0))
	}
}

func TestImportedStackAccessAndSetAddress(t *testing.T) {
	module := stack.New(nil, 3)
	local := stack.New([]*stack.Stack{module}, 1)

	// SetAddress [0 2] writes the imported module's slot 2; the write is
	// observable through FromImportedStack (module variables are shared).
	s := instr.NewSequence(
		instr.NewSetAddress(stack.VariableAddress{0, 2}, constInt(9)),
		instr.NewFromImportedStack(0, instr.NewVariableGet(2)),
	)
	got := run(t, s, local)
	if !value.Equal(got, value.Int(9)) {
		t.Errorf("import read = %s, want 9", got)
	}
	if !value.Equal(module.Get(2), value.Int(9)) {
		t.Errorf("module slot 2 = %s, want 9", module.Get(2))
	}
}

func TestSetAddressOutOfRange(t *testing.T) {
	s := instr.NewSetAddress(stack.VariableAddress{5}, constInt(1))
	_, err := New().Run(instr.Lower(s), stack.New(nil, 1))
	var de *corerr.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DomainError", err)
	}
}

func TestRuntimeDispatchNoCandidate(t *testing.T) {
	cand := &instr.DispatchCandidate{
		ArgTypes: []*ptype.Type{ptype.IntegerT},
		Body:     instr.NewVariableGet(0).WithType(ptype.IntegerT),
		Locals:   1,
	}
	s := instr.NewDispatch(
		[]*instr.Statement{instr.NewConstant(value.Float(1.5)).WithType(ptype.FloatT)},
		nil, cand)
	_, err := New().Run(instr.Lower(s), stack.New(nil, 0))
	var nf *corerr.NoOverloadFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NoOverloadFoundError", err)
	}
}

func TestBuildCollections(t *testing.T) {
	stk := stack.New(nil, 0)

	list := run(t, instr.NewBuildList(constInt(1), constInt(2)), stk)
	if !value.Equal(list, value.ListOf(value.Int(1), value.Int(2))) {
		t.Errorf("list = %s", list)
	}

	tuple := run(t, instr.NewBuildTuple(constInt(1), instr.NewConstant(value.StringOf("x"))), stk)
	if !value.Equal(tuple, value.ArrayOf(value.Int(1), value.StringOf("x"))) {
		t.Errorf("tuple = %s", tuple)
	}

	set := run(t, instr.NewBuildSet(constInt(1), constInt(1), constInt(2)), stk)
	if set.AsSet().Len() != 2 {
		t.Errorf("set size = %d, want 2 (duplicates collapse)", set.AsSet().Len())
	}

	table := run(t, instr.NewBuildTable(
		[]*instr.Statement{instr.NewConstant(value.StringOf("k"))},
		[]*instr.Statement{constInt(3)},
	), stk)
	v, ok := table.AsTable().Get(value.StringOf("k"))
	if !ok || !value.Equal(v, value.Int(3)) {
		t.Errorf("table[k] = %s, %v", v, ok)
	}

	comp := run(t, instr.NewBuildComposite([]string{"a", "b"}, []*instr.Statement{constInt(1), constInt(2)}), stk)
	if !value.Equal(comp, value.CompositeOf(map[string]value.Value{"a": value.Int(1), "b": value.Int(2)})) {
		t.Errorf("composite = %s", comp)
	}
}

func TestLazyVariableEvaluatesOnce(t *testing.T) {
	ctx := stack.NewContext(nil)
	// Slot 1 counts initializer runs; the lazy initializer bumps it and
	// yields 7.
	lazyInit := instr.Lower(instr.NewSequence(
		instr.NewVariableSet(1, instr.NewBinaryArith(instr.AddInt, instr.NewVariableGet(1), constInt(1))),
		constInt(7),
	))
	lazy := ctx.Top.DeclareLazy("x", lazyInit)
	ctx.Top.Declare("runs")

	stk := ctx.NewStack(nil)
	stk.Set(1, value.Int(0))

	e := New()
	for i := 0; i < 2; i++ {
		got, err := e.ResolveVariable(lazy, stk)
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if !value.Equal(got, value.Int(7)) {
			t.Errorf("resolve %d = %s, want 7", i, got)
		}
	}
	if !value.Equal(stk.Get(1), value.Int(1)) {
		t.Errorf("initializer ran %s times, want 1", stk.Get(1))
	}
}
