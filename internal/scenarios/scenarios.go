// Package scenarios holds the end-to-end smoke programs: each couples a
// builder-surface Expression graph with its expected outcome, exercising the
// full Expression -> Statement -> Instruction -> Value pipeline. The CLI's
// smoke and disasm subcommands and this package's end-to-end tests all
// consume the same table.
package scenarios

import (
	"github.com/cwbudde/corelang/internal/ast"
	"github.com/cwbudde/corelang/internal/compiler"
	"github.com/cwbudde/corelang/internal/coreeval"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// Scenario is one smoke program. Build constructs a fresh Expression graph
// per call so compiles never share mutable state; Want is meaningful only
// when WantErr is false.
type Scenario struct {
	Name    string
	Source  string
	Build   func() ast.Expression
	Want    value.Value
	WantErr bool
}

// All lists the smoke programs in their canonical order.
var All = []Scenario{
	{
		Name:   "add-integers",
		Source: `1 + 1`,
		Build: func() ast.Expression {
			return ast.Bin("+", ast.Int(1), ast.Int(1))
		},
		Want: value.Int(2),
	},
	{
		Name:   "mixed-addition-rejected",
		Source: `1 + 1.0`,
		Build: func() ast.Expression {
			return ast.Bin("+", ast.Int(1), ast.Float(1.0))
		},
		WantErr: true,
	},
	{
		Name:   "string-binding",
		Source: `a = "abcd"; a`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewAssign("a", ast.Str("abcd")),
				ast.Id("a"),
			)
		},
		Want: value.StringOf("abcd"),
	},
	{
		Name:   "nested-bindings",
		Source: `a = (b = do c = 1); a + (b + 3) + c`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewAssign("a", ast.NewAssign("b", ast.DoBlock(ast.NewAssign("c", ast.Int(1))))),
				ast.Bin("+",
					ast.Bin("+", ast.Id("a"), ast.Bin("+", ast.Id("b"), ast.Int(3))),
					ast.Id("c")),
			)
		},
		Want: value.Int(6),
	},
	{
		Name:   "float-division",
		Source: `9 * (1 + 4) / 2 - 3f`,
		Build: func() ast.Expression {
			return ast.Bin("-",
				ast.Bin("/",
					ast.Bin("*", ast.Int(9), ast.Bin("+", ast.Int(1), ast.Int(4))),
					ast.Int(2)),
				ast.Float(3))
		},
		Want: value.Float(19.5),
	},
	{
		Name:   "integer-division",
		Source: `9 * (1 + 4) div 2 - 3`,
		Build: func() ast.Expression {
			return ast.Bin("-",
				ast.Bin("div",
					ast.Bin("*", ast.Int(9), ast.Bin("+", ast.Int(1), ast.Int(4))),
					ast.Int(2)),
				ast.Int(3))
		},
		Want: value.Int(19),
	},
	{
		Name:   "simple-function",
		Source: `foo(x) = x + 1; foo(3)`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewFuncDef("foo", []ast.Param{ast.P("x")},
					ast.Bin("+", ast.Id("x"), ast.Int(1))),
				ast.NewCall("foo", ast.Int(3)),
			)
		},
		Want: value.Int(4),
	},
	{
		Name:   "recursive-gcd",
		Source: `gcd(a: Int, b: Int): Int = if b == 0 then a else gcd(b, a mod b); gcd(12, 42)`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewFuncDef("gcd",
					[]ast.Param{ast.TypedParam("a", "Int"), ast.TypedParam("b", "Int")},
					ast.NewIf(
						ast.Bin("==", ast.Id("b"), ast.Int(0)),
						ast.Id("a"),
						ast.NewCall("gcd", ast.Id("b"), ast.Bin("mod", ast.Id("a"), ast.Id("b"))),
					)).WithReturnType("Int"),
				ast.NewCall("gcd", ast.Int(12), ast.Int(42)),
			)
		},
		Want: value.Int(6),
	},
	{
		Name:   "specific-overload-wins",
		Source: `foo(x) = x + 1; foo(x: Int) = x - 1; foo(3)`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewFuncDef("foo", []ast.Param{ast.P("x")},
					ast.Bin("+", ast.Id("x"), ast.Int(1))),
				ast.NewFuncDef("foo", []ast.Param{ast.TypedParam("x", "Int")},
					ast.Bin("-", ast.Id("x"), ast.Int(1))),
				ast.NewCall("foo", ast.Int(3)),
			)
		},
		Want: value.Int(2),
	},
	{
		Name:   "incompatible-overload-eliminated",
		Source: `foo(x: Float) = x - 1.0; foo(x) = x + 1; foo(3)`,
		Build: func() ast.Expression {
			return ast.DoBlock(
				ast.NewFuncDef("foo", []ast.Param{ast.TypedParam("x", "Float")},
					ast.Bin("-", ast.Id("x"), ast.Float(1.0))),
				ast.NewFuncDef("foo", []ast.Param{ast.P("x")},
					ast.Bin("+", ast.Id("x"), ast.Int(1))),
				ast.NewCall("foo", ast.Int(3)),
			)
		},
		Want: value.Int(4),
	},
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range All {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Compile builds the scenario's Expression graph and compiles it in a fresh
// top-level Context, returning the typed Statement and the Context that owns
// its variables.
func (s Scenario) Compile() (*instr.Statement, *stack.Context, error) {
	ctx := stack.NewContext(nil)
	st, err := compiler.New().Compile(s.Build(), ctx.Top)
	if err != nil {
		return nil, nil, err
	}
	return st, ctx, nil
}

// Run compiles, lowers, and evaluates the scenario end to end.
func (s Scenario) Run() (value.Value, error) {
	st, ctx, err := s.Compile()
	if err != nil {
		return value.None, err
	}
	return coreeval.New().Run(instr.Lower(st), ctx.NewStack(nil))
}
