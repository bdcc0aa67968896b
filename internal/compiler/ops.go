package compiler

import (
	"github.com/cwbudde/corelang/internal/dispatch"
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
)

// The arithmetic and comparison operators double as overload groups: when an
// operand's static type is a typeclass (an untyped parameter compiles as
// Any, a folded overload return may be a Union), the operator cannot be
// resolved to a single typed instruction at compile time. It compiles to a
// Dispatch over these built-in candidates instead, and the runtime
// dispatcher picks the typed body against the concrete argument types, the
// same machinery user-defined overloads go through (e.g. the untyped
// `foo(x) = x + 1`).
//
// The candidates are shared package-wide; their bodies read the two bound
// argument slots and apply the promoted instruction directly.
var dynamicBinaryOps = buildDynamicBinaryOps()

var dynamicUnaryOps = map[string][]*instr.DispatchCandidate{
	"-": {
		unOp(instr.NegInt, ptype.IntegerT, ptype.IntegerT),
		unOp(instr.NegFloat, ptype.FloatT, ptype.FloatT),
	},
}

func buildDynamicBinaryOps() map[string][]*instr.DispatchCandidate {
	groups := map[string][]*instr.DispatchCandidate{
		"mod": {binOp(instr.ModInt, ptype.IntegerT, ptype.IntegerT, ptype.IntegerT)},
		"div": {binOp(instr.DivInt, ptype.IntegerT, ptype.IntegerT, ptype.IntegerT)},
		"/": {
			divOp(ptype.IntegerT, ptype.IntegerT),
			divOp(ptype.IntegerT, ptype.FloatT),
			divOp(ptype.FloatT, ptype.IntegerT),
			divOp(ptype.FloatT, ptype.FloatT),
		},
	}
	for op, kinds := range map[string][2]instr.Kind{
		"+": {instr.AddInt, instr.AddFloat},
		"-": {instr.SubInt, instr.SubFloat},
		"*": {instr.MulInt, instr.MulFloat},
	} {
		groups[op] = []*instr.DispatchCandidate{
			binOp(kinds[0], ptype.IntegerT, ptype.IntegerT, ptype.IntegerT),
			binOp(kinds[1], ptype.FloatT, ptype.FloatT, ptype.FloatT),
		}
	}
	for op, kinds := range map[string][2]instr.Kind{
		"==": {instr.CmpEqInt, instr.CmpEqFloat},
		"<>": {instr.CmpNeInt, instr.CmpNeFloat},
		"<":  {instr.CmpLtInt, instr.CmpLtFloat},
		"<=": {instr.CmpLeInt, instr.CmpLeFloat},
		">":  {instr.CmpGtInt, instr.CmpGtFloat},
		">=": {instr.CmpGeInt, instr.CmpGeFloat},
	} {
		groups[op] = []*instr.DispatchCandidate{
			binOp(kinds[0], ptype.IntegerT, ptype.IntegerT, ptype.BooleanT),
			binOp(kinds[1], ptype.FloatT, ptype.FloatT, ptype.BooleanT),
		}
	}
	return groups
}

func binOp(k instr.Kind, lt, rt, ret *ptype.Type) *instr.DispatchCandidate {
	left := instr.NewVariableGet(0).WithType(lt)
	right := instr.NewVariableGet(1).WithType(rt)
	return &instr.DispatchCandidate{
		ArgTypes: []*ptype.Type{lt, rt},
		Body:     instr.NewBinaryArith(k, left, right).WithType(ret),
		Locals:   2,
	}
}

// divOp is binOp for "/": always a float division, widening any Integer
// operand.
func divOp(lt, rt *ptype.Type) *instr.DispatchCandidate {
	left := promoteToFloat(instr.NewVariableGet(0).WithType(lt))
	right := promoteToFloat(instr.NewVariableGet(1).WithType(rt))
	return &instr.DispatchCandidate{
		ArgTypes: []*ptype.Type{lt, rt},
		Body:     instr.NewBinaryArith(instr.DivFloat, left, right).WithType(ptype.FloatT),
		Locals:   2,
	}
}

func unOp(k instr.Kind, at, ret *ptype.Type) *instr.DispatchCandidate {
	operand := instr.NewVariableGet(0).WithType(at)
	return &instr.DispatchCandidate{
		ArgTypes: []*ptype.Type{at},
		Body:     instr.NewUnaryArith(k, operand).WithType(ret),
		Locals:   1,
	}
}

// compileDynamicOp builds the Dispatch for an operator whose operand types
// are not all statically concrete, narrowing the candidate group the same
// way compileCall narrows user overloads.
func (c *Compiler) compileDynamicOp(op string, group []*instr.DispatchCandidate, operands []*instr.Statement, debug string) (*instr.Statement, error) {
	argTypes := make([]*ptype.Type, len(operands))
	for i, o := range operands {
		argTypes[i] = o.CachedType
	}
	dcands := make([]dispatch.Candidate, len(group))
	for i, g := range group {
		dcands[i] = dispatch.Candidate{ArgTypes: g.ArgTypes}
	}
	idxs := dispatch.Eliminate(dcands, argTypes)
	if len(idxs) == 0 {
		return nil, corerr.NewCompileError("no overload of "+op+" accepts the operand types", debug)
	}
	survivors := make([]*instr.DispatchCandidate, len(idxs))
	var retType *ptype.Type
	for i, idx := range idxs {
		survivors[i] = group[idx]
		rt := group[idx].Body.CachedType
		if retType == nil {
			retType = rt
		} else {
			retType = ptype.CommonType(retType, rt)
		}
	}
	return instr.NewDispatch(operands, nil, survivors...).WithType(retType), nil
}
