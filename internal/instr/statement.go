package instr

import (
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// DispatchCandidate pairs a candidate's declared parameter types with its
// body, used by both Statement and Instruction Dispatch nodes. Locals is the
// number of stack slots the candidate's own Context allocates (its
// parameters plus any locals declared in its body); the evaluator sizes the
// Stack it runs Body against from this count, since the winner's body
// executes like a FunctionCall with arguments bound into its first slots.
//
// Dispatch nodes hold candidates by pointer, and every call site of the
// same overload group shares the same pointers: a recursive function's body
// contains a Dispatch referencing its own still-being-compiled candidate,
// whose Body and Locals the compiler fills in only once the body is done.
// Sharing is also what lets Lower and the equality/hash walks terminate on
// such self-referential trees.
type DispatchCandidate struct {
	ArgTypes []*ptype.Type
	Body     *Statement
	Locals   int
}

// Statement is the compiler's typed, still-growable tree node: every node
// carries a CachedType populated by the compiler, and
// variable-arity nodes use ordinary growable Go slices rather than a
// pre-sized array, since a Statement tree may still be edited (e.g. a
// Sequence under construction) before Lower freezes it.
type Statement struct {
	Kind       Kind
	CachedType *ptype.Type

	// Constant
	ConstantValue value.Value

	// FunctionCall: Callee plus Args; also reused by collection builders
	// (BuildTuple/BuildList/BuildSet elements live in Args) and by
	// EmitEffect (its operand lives in Callee).
	Callee *Statement
	Args   []*Statement

	// Dispatch: ImportPath is the hop sequence, applied to whatever Stack is
	// current when the Dispatch evaluates, needed to reach the Stack that
	// corresponds to the overload group's own defining Context — not
	// necessarily the calling Stack itself, since a recursive call happens
	// one context deeper than the definition.
	Dispatchees []*DispatchCandidate
	ImportPath  []int

	// Sequence
	Items []*Statement

	// VariableGet / VariableSet
	VarIndex int
	VarValue *Statement

	// FromImportedStack
	ImportIndex int
	Sub         *Statement

	// SetAddress
	Address  stack.VariableAddress
	SetValue *Statement

	// ArmStack
	Fn *Statement

	// If / While / DoUntil
	Condition *Statement
	Then      *Statement
	Else      *Statement

	// HandleEffect
	Handler *Statement
	Body    *Statement

	// BuildTable: Keys[i]/Values[i] pair up; BuildComposite: Names[i]/Values[i].
	Keys   []*Statement
	Values []*Statement
	Names  []string

	// UnaryArith / BinaryArith: Arith names the promoted arithmetic Kind
	// this node lowers to (e.g. AddInt); Left/Right (Right unused for
	// unary) are its operands.
	Arith Kind
	Left  *Statement
	Right *Statement
}

func NewNoOp() *Statement { return &Statement{Kind: NoOp} }

func NewConstant(v value.Value) *Statement {
	return &Statement{Kind: Constant, ConstantValue: v}
}

func NewFunctionCall(callee *Statement, args ...*Statement) *Statement {
	return &Statement{Kind: FunctionCall, Callee: callee, Args: args}
}

func NewDispatch(args []*Statement, importPath []int, candidates ...*DispatchCandidate) *Statement {
	return &Statement{Kind: Dispatch, Args: args, Dispatchees: candidates, ImportPath: importPath}
}

func NewSequence(items ...*Statement) *Statement {
	return &Statement{Kind: Sequence, Items: items}
}

// Append grows a Sequence Statement in place, the one place a Statement
// tree is mutated after construction.
func (s *Statement) Append(item *Statement) {
	s.Items = append(s.Items, item)
}

func NewVariableGet(index int) *Statement {
	return &Statement{Kind: VariableGet, VarIndex: index}
}

func NewVariableSet(index int, v *Statement) *Statement {
	return &Statement{Kind: VariableSet, VarIndex: index, VarValue: v}
}

func NewFromImportedStack(importIndex int, sub *Statement) *Statement {
	return &Statement{Kind: FromImportedStack, ImportIndex: importIndex, Sub: sub}
}

func NewSetAddress(addr stack.VariableAddress, v *Statement) *Statement {
	return &Statement{Kind: SetAddress, Address: addr, SetValue: v}
}

func NewArmStack(fn *Statement) *Statement {
	return &Statement{Kind: ArmStack, Fn: fn}
}

func NewIf(cond, thenBranch, elseBranch *Statement) *Statement {
	return &Statement{Kind: If, Condition: cond, Then: thenBranch, Else: elseBranch}
}

func NewWhile(cond, body *Statement) *Statement {
	return &Statement{Kind: While, Condition: cond, Body: body}
}

func NewDoUntil(body, cond *Statement) *Statement {
	return &Statement{Kind: DoUntil, Body: body, Condition: cond}
}

func NewEmitEffect(v *Statement) *Statement {
	return &Statement{Kind: EmitEffect, Callee: v}
}

func NewHandleEffect(handler, body *Statement) *Statement {
	return &Statement{Kind: HandleEffect, Handler: handler, Body: body}
}

func NewBuildTuple(elems ...*Statement) *Statement {
	return &Statement{Kind: BuildTuple, Args: elems}
}

func NewBuildList(elems ...*Statement) *Statement {
	return &Statement{Kind: BuildList, Args: elems}
}

func NewBuildSet(elems ...*Statement) *Statement {
	return &Statement{Kind: BuildSet, Args: elems}
}

func NewBuildTable(keys, values []*Statement) *Statement {
	return &Statement{Kind: BuildTable, Keys: keys, Values: values}
}

func NewBuildComposite(names []string, values []*Statement) *Statement {
	return &Statement{Kind: BuildComposite, Names: names, Values: values}
}

func NewUnaryArith(arith Kind, operand *Statement) *Statement {
	return &Statement{Kind: UnaryArith, Arith: arith, Left: operand}
}

func NewBinaryArith(arith Kind, left, right *Statement) *Statement {
	return &Statement{Kind: BinaryArith, Arith: arith, Left: left, Right: right}
}

// WithType sets s.CachedType and returns s, for fluent use by the compiler.
func (s *Statement) WithType(t *ptype.Type) *Statement {
	s.CachedType = t
	return s
}
