package compiler

import (
	"github.com/cwbudde/corelang/internal/ast"
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
)

func (c *Compiler) compileUnary(n *ast.Unary, scope *stack.Scope) (*instr.Statement, error) {
	operand, err := c.compile(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch operand.CachedType {
		case ptype.IntegerT:
			return instr.NewUnaryArith(instr.NegInt, operand).WithType(ptype.IntegerT), nil
		case ptype.FloatT:
			return instr.NewUnaryArith(instr.NegFloat, operand).WithType(ptype.FloatT), nil
		default:
			if !operand.CachedType.Kind.IsConcrete() {
				return c.compileDynamicOp(n.Op, dynamicUnaryOps[n.Op], []*instr.Statement{operand}, n.String())
			}
			return nil, corerr.NewCompileError("unary - requires Integer or Float", n.String())
		}
	default:
		return nil, corerr.NewCompileError("unsupported unary operator "+n.Op, n.String())
	}
}

// promoteToFloat wraps an Integer-typed operand in an IntToFloat conversion;
// a Float-typed operand passes through unchanged.
func promoteToFloat(s *instr.Statement) *instr.Statement {
	if s.CachedType == ptype.FloatT {
		return s
	}
	return instr.NewUnaryArith(instr.IntToFloat, s).WithType(ptype.FloatT)
}

func (c *Compiler) compileBinary(n *ast.Binary, scope *stack.Scope) (*instr.Statement, error) {
	left, err := c.compile(n.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Right, scope)
	if err != nil {
		return nil, err
	}

	// Statically mixed concrete kinds are a compile error (`1 + 1.0`), but
	// a typeclass operand (Any from an untyped parameter, a Union folded
	// from overload returns) defers the operator to runtime dispatch over
	// the built-in typed candidates.
	if !left.CachedType.Kind.IsConcrete() || !right.CachedType.Kind.IsConcrete() {
		group, ok := dynamicBinaryOps[n.Op]
		if !ok {
			return nil, corerr.NewCompileError("unsupported binary operator "+n.Op, n.String())
		}
		return c.compileDynamicOp(n.Op, group, []*instr.Statement{left, right}, n.String())
	}

	switch n.Op {
	case "+", "-", "*", "mod":
		return c.compileSameKindArith(n.Op, left, right, n.String())
	case "/":
		return c.compileDivide(left, right, n.String())
	case "div":
		if left.CachedType != ptype.IntegerT || right.CachedType != ptype.IntegerT {
			return nil, corerr.NewCompileError("div requires Integer operands", n.String())
		}
		return instr.NewBinaryArith(instr.DivInt, left, right).WithType(ptype.IntegerT), nil
	case "==", "<>", "<", "<=", ">", ">=":
		return c.compileComparison(n.Op, left, right, n.String())
	default:
		return nil, corerr.NewCompileError("unsupported binary operator "+n.Op, n.String())
	}
}

var intArithKind = map[string]instr.Kind{
	"+":   instr.AddInt,
	"-":   instr.SubInt,
	"*":   instr.MulInt,
	"mod": instr.ModInt,
}

var floatArithKind = map[string]instr.Kind{
	"+": instr.AddFloat,
	"-": instr.SubFloat,
	"*": instr.MulFloat,
}

// compileSameKindArith implements "+", "-", "*" and "mod": both operands
// must compile to the same numeric kind, with no implicit promotion between
// Integer and Float. `1 + 1.0` is a CompileError rather than an implicit
// widening.
func (c *Compiler) compileSameKindArith(op string, left, right *instr.Statement, debug string) (*instr.Statement, error) {
	switch {
	case left.CachedType == ptype.IntegerT && right.CachedType == ptype.IntegerT:
		return instr.NewBinaryArith(intArithKind[op], left, right).WithType(ptype.IntegerT), nil
	case left.CachedType == ptype.FloatT && right.CachedType == ptype.FloatT:
		kind, ok := floatArithKind[op]
		if !ok {
			return nil, corerr.NewCompileError(op+" is not defined on Float", debug)
		}
		return instr.NewBinaryArith(kind, left, right).WithType(ptype.FloatT), nil
	default:
		return nil, corerr.NewCompileError(
			"operands of "+op+" must both be Integer or both Float, got "+
				left.CachedType.String()+" and "+right.CachedType.String(), debug)
	}
}

// compileDivide implements "/": always produces Float, promoting either
// operand if it's Integer.
func (c *Compiler) compileDivide(left, right *instr.Statement, debug string) (*instr.Statement, error) {
	if left.CachedType != ptype.IntegerT && left.CachedType != ptype.FloatT {
		return nil, corerr.NewCompileError("/ requires numeric operands", debug)
	}
	if right.CachedType != ptype.IntegerT && right.CachedType != ptype.FloatT {
		return nil, corerr.NewCompileError("/ requires numeric operands", debug)
	}
	return instr.NewBinaryArith(instr.DivFloat, promoteToFloat(left), promoteToFloat(right)).WithType(ptype.FloatT), nil
}

var intCmpKind = map[string]instr.Kind{
	"==": instr.CmpEqInt, "<>": instr.CmpNeInt,
	"<": instr.CmpLtInt, "<=": instr.CmpLeInt,
	">": instr.CmpGtInt, ">=": instr.CmpGeInt,
}

var floatCmpKind = map[string]instr.Kind{
	"==": instr.CmpEqFloat, "<>": instr.CmpNeFloat,
	"<": instr.CmpLtFloat, "<=": instr.CmpLeFloat,
	">": instr.CmpGtFloat, ">=": instr.CmpGeFloat,
}

func (c *Compiler) compileComparison(op string, left, right *instr.Statement, debug string) (*instr.Statement, error) {
	switch {
	case left.CachedType == ptype.IntegerT && right.CachedType == ptype.IntegerT:
		return instr.NewBinaryArith(intCmpKind[op], left, right).WithType(ptype.BooleanT), nil
	case left.CachedType == ptype.FloatT && right.CachedType == ptype.FloatT:
		return instr.NewBinaryArith(floatCmpKind[op], left, right).WithType(ptype.BooleanT), nil
	default:
		return nil, corerr.NewCompileError(
			"comparison operands must both be Integer or both Float, got "+
				left.CachedType.String()+" and "+right.CachedType.String(), debug)
	}
}
