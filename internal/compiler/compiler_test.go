package compiler

import (
	"testing"

	"github.com/cwbudde/corelang/internal/ast"
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
)

func compileExpr(t *testing.T, e ast.Expression) (*instr.Statement, *stack.Context) {
	t.Helper()
	ctx := stack.NewContext(nil)
	st, err := New().Compile(e, ctx.Top)
	if err != nil {
		t.Fatalf("compile %s: %v", e, err)
	}
	return st, ctx
}

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		expr ast.Expression
		want *ptype.Type
	}{
		{ast.Int(1), ptype.IntegerT},
		{ast.Float(1.5), ptype.FloatT},
		{ast.Str("x"), ptype.StringT},
	}
	for _, tt := range tests {
		st, _ := compileExpr(t, tt.expr)
		if st.CachedType != tt.want {
			t.Errorf("%s: cached type %s, want %s", tt.expr, st.CachedType, tt.want)
		}
	}
}

func TestEveryStatementCarriesACachedType(t *testing.T) {
	st, _ := compileExpr(t, ast.DoBlock(
		ast.NewAssign("a", ast.Int(1)),
		ast.Bin("+", ast.Id("a"), ast.Int(2)),
	))
	var walk func(s *instr.Statement)
	walk = func(s *instr.Statement) {
		if s == nil {
			return
		}
		if s.CachedType == nil {
			t.Errorf("statement kind %s has no cached type", s.Kind)
		}
		for _, item := range s.Items {
			walk(item)
		}
		walk(s.VarValue)
		walk(s.Left)
		walk(s.Right)
	}
	walk(st)
}

func TestMixedArithmeticIsCompileError(t *testing.T) {
	ctx := stack.NewContext(nil)
	_, err := New().Compile(ast.Bin("+", ast.Int(1), ast.Float(1.0)), ctx.Top)
	if _, ok := err.(*corerr.CompileError); !ok {
		t.Fatalf("err = %v, want CompileError", err)
	}
}

func TestUnresolvedIdentifier(t *testing.T) {
	ctx := stack.NewContext(nil)
	_, err := New().Compile(ast.Id("nope"), ctx.Top)
	if _, ok := err.(*corerr.CompileError); !ok {
		t.Fatalf("err = %v, want CompileError", err)
	}
}

func TestDivisionAlwaysCompilesToFloat(t *testing.T) {
	st, _ := compileExpr(t, ast.Bin("/", ast.Int(1), ast.Int(2)))
	if st.CachedType != ptype.FloatT {
		t.Errorf("1 / 2 cached type %s, want Float", st.CachedType)
	}
}

func TestAssignDeclaresAndTypes(t *testing.T) {
	st, ctx := compileExpr(t, ast.NewAssign("a", ast.Str("abcd")))
	if st.Kind != instr.VariableSet {
		t.Fatalf("assign compiled to %s", st.Kind)
	}
	if len(ctx.AllVariables) != 1 || ctx.AllVariables[0].Name != "a" {
		t.Fatalf("expected one declared variable 'a', got %d", len(ctx.AllVariables))
	}
	if ctx.AllVariables[0].CachedType != ptype.StringT {
		t.Errorf("a's cached type = %s, want String", ctx.AllVariables[0].CachedType)
	}
}

func TestUntypedParamArithmeticCompilesToDispatch(t *testing.T) {
	st, _ := compileExpr(t, ast.DoBlock(
		ast.NewFuncDef("foo", []ast.Param{ast.P("x")}, ast.Bin("+", ast.Id("x"), ast.Int(1))),
		ast.NewCall("foo", ast.Int(3)),
	))
	call := st.Items[1]
	if call.Kind != instr.Dispatch {
		t.Fatalf("call compiled to %s, want Dispatch", call.Kind)
	}
	// The Int literal operand of `+` inside the body eliminates the Float `+`
	// candidate, so foo's inferred return type collapses to Integer.
	if call.CachedType != ptype.IntegerT {
		t.Errorf("foo(3) cached type = %s, want Integer", call.CachedType)
	}
}

func TestStaticEliminationDropsFloatOverload(t *testing.T) {
	st, _ := compileExpr(t, ast.DoBlock(
		ast.NewFuncDef("foo", []ast.Param{ast.TypedParam("x", "Float")},
			ast.Bin("-", ast.Id("x"), ast.Float(1.0))),
		ast.NewFuncDef("foo", []ast.Param{ast.P("x")},
			ast.Bin("+", ast.Id("x"), ast.Int(1))),
		ast.NewCall("foo", ast.Int(3)),
	))
	call := st.Items[2]
	if call.Kind != instr.Dispatch {
		t.Fatalf("call compiled to %s, want Dispatch", call.Kind)
	}
	if len(call.Dispatchees) != 1 {
		t.Fatalf("%d candidates survived, want 1 (Float eliminated statically)", len(call.Dispatchees))
	}
	if call.Dispatchees[0].ArgTypes[0] != ptype.AnyT {
		t.Errorf("survivor's parameter type = %s, want Any", call.Dispatchees[0].ArgTypes[0])
	}
}

func TestCallToUndefinedFunction(t *testing.T) {
	ctx := stack.NewContext(nil)
	_, err := New().Compile(ast.NewCall("missing", ast.Int(1)), ctx.Top)
	if _, ok := err.(*corerr.CompileError); !ok {
		t.Fatalf("err = %v, want CompileError", err)
	}
}

func TestRecursiveCandidateBodyIsShared(t *testing.T) {
	st, _ := compileExpr(t, ast.DoBlock(
		ast.NewFuncDef("gcd",
			[]ast.Param{ast.TypedParam("a", "Int"), ast.TypedParam("b", "Int")},
			ast.NewIf(
				ast.Bin("==", ast.Id("b"), ast.Int(0)),
				ast.Id("a"),
				ast.NewCall("gcd", ast.Id("b"), ast.Bin("mod", ast.Id("a"), ast.Id("b"))),
			)).WithReturnType("Int"),
		ast.NewCall("gcd", ast.Int(12), ast.Int(42)),
	))
	outer := st.Items[1]
	if outer.Kind != instr.Dispatch || len(outer.Dispatchees) != 1 {
		t.Fatalf("outer call shape unexpected: %s with %d candidates", outer.Kind, len(outer.Dispatchees))
	}
	cand := outer.Dispatchees[0]
	if cand.Body == nil {
		t.Fatal("candidate body not filled in after compile")
	}
	inner := cand.Body.Else
	if inner == nil || inner.Kind != instr.Dispatch {
		t.Fatalf("recursive call not compiled to Dispatch")
	}
	if inner.Dispatchees[0] != cand {
		t.Error("recursive call site does not share the defining candidate")
	}
	if len(inner.ImportPath) != 1 || inner.ImportPath[0] != 0 {
		t.Errorf("recursive import path = %v, want [0]", inner.ImportPath)
	}
	// Lowering the self-referential tree must terminate and preserve sharing.
	ins := instr.Lower(st)
	lcand := ins.Items[1].Dispatchees[0]
	linner := lcand.Body.Else
	if linner.Dispatchees[0] != lcand {
		t.Error("lowered recursive call site does not share the lowered candidate")
	}
}
