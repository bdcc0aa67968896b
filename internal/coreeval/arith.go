package coreeval

import (
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// evalArithmetic applies the promoted arithmetic and comparison kinds:
// integer wraparound follows two's-complement (Go's native int64 behavior),
// float follows IEEE-754, integer division by zero is a domain error, and
// float division by zero produces the IEEE-754 result.
func (e *Evaluator) evalArithmetic(i *instr.Instruction, stk *stack.Stack) (value.Value, error) {
	left, err := e.eval(i.Left, stk)
	if err != nil || left.Kind == value.KindEffect {
		return left, err
	}

	if i.Kind.IsUnaryArithmetic() {
		switch i.Kind {
		case instr.NegInt:
			return value.Int(-left.AsInt()), nil
		case instr.NegFloat:
			return value.Float(-left.AsFloat()), nil
		case instr.IntToFloat:
			return value.Float(float64(left.AsInt())), nil
		}
	}

	right, err := e.eval(i.Right, stk)
	if err != nil || right.Kind == value.KindEffect {
		return right, err
	}

	switch i.Kind {
	case instr.AddInt:
		return value.Int(left.AsInt() + right.AsInt()), nil
	case instr.SubInt:
		return value.Int(left.AsInt() - right.AsInt()), nil
	case instr.MulInt:
		return value.Int(left.AsInt() * right.AsInt()), nil
	case instr.DivInt:
		if right.AsInt() == 0 {
			return value.None, corerr.NewDomainError("integer division", "division by zero")
		}
		return value.Int(left.AsInt() / right.AsInt()), nil
	case instr.ModInt:
		if right.AsInt() == 0 {
			return value.None, corerr.NewDomainError("integer modulo", "division by zero")
		}
		return value.Int(left.AsInt() % right.AsInt()), nil
	case instr.AddFloat:
		return value.Float(left.AsFloat() + right.AsFloat()), nil
	case instr.SubFloat:
		return value.Float(left.AsFloat() - right.AsFloat()), nil
	case instr.MulFloat:
		return value.Float(left.AsFloat() * right.AsFloat()), nil
	case instr.DivFloat:
		return value.Float(left.AsFloat() / right.AsFloat()), nil
	case instr.CmpEqInt:
		return value.Bool(left.AsInt() == right.AsInt()), nil
	case instr.CmpNeInt:
		return value.Bool(left.AsInt() != right.AsInt()), nil
	case instr.CmpLtInt:
		return value.Bool(left.AsInt() < right.AsInt()), nil
	case instr.CmpLeInt:
		return value.Bool(left.AsInt() <= right.AsInt()), nil
	case instr.CmpGtInt:
		return value.Bool(left.AsInt() > right.AsInt()), nil
	case instr.CmpGeInt:
		return value.Bool(left.AsInt() >= right.AsInt()), nil
	case instr.CmpEqFloat:
		return value.Bool(left.AsFloat() == right.AsFloat()), nil
	case instr.CmpNeFloat:
		return value.Bool(left.AsFloat() != right.AsFloat()), nil
	case instr.CmpLtFloat:
		return value.Bool(left.AsFloat() < right.AsFloat()), nil
	case instr.CmpLeFloat:
		return value.Bool(left.AsFloat() <= right.AsFloat()), nil
	case instr.CmpGtFloat:
		return value.Bool(left.AsFloat() > right.AsFloat()), nil
	case instr.CmpGeFloat:
		return value.Bool(left.AsFloat() >= right.AsFloat()), nil
	default:
		return value.None, corerr.NewDomainError("arithmetic", "unknown arithmetic kind "+i.Kind.String())
	}
}
