package instr

import (
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// InstrDispatchCandidate is the lowered counterpart of DispatchCandidate.
// Like its Statement-level twin it is shared by pointer across every
// Dispatch node of the same overload group, which is what keeps a recursive
// candidate (whose Body contains a Dispatch back to itself) finite.
type InstrDispatchCandidate struct {
	ArgTypes []*ptype.Type
	Body     *Instruction
	Locals   int
}

// Instruction is the lowered, immutable tree the evaluator walks: it
// mirrors Statement minus CachedType, and its arithmetic kinds are
// never wrapped in Unary/BinaryArith — Lower promotes them directly to one
// of Kind's AddInt..CmpGeFloat variants. Children are plain slices sized
// exactly at construction and never appended to again; Go has no separate
// fixed-array-of-pointers idiom that beats a slice here without giving up
// range/indexing ergonomics, so an un-grown slice stands in for "fixed-length
// array" (this is a stdlib-only deliberate choice, not a deviation).
type Instruction struct {
	Kind Kind

	ConstantValue value.Value

	Callee *Instruction
	Args   []*Instruction

	Dispatchees []*InstrDispatchCandidate
	ImportPath  []int

	Items []*Instruction

	VarIndex int
	VarValue *Instruction

	ImportIndex int
	Sub         *Instruction

	Address  stack.VariableAddress
	SetValue *Instruction

	Fn *Instruction

	Condition *Instruction
	Then      *Instruction
	Else      *Instruction

	Handler *Instruction
	Body    *Instruction

	Keys   []*Instruction
	Values []*Instruction
	Names  []string

	// Unary arithmetic (NegInt/NegFloat/IntToFloat) uses Left only.
	Left  *Instruction
	Right *Instruction
}

// Lower copies a Statement tree into an Instruction tree: constants are
// copied, growable sequences are frozen, SetAddress's address sequence is
// translated verbatim, and the arithmetic wrapper variants map to promoted
// kinds. A nil Statement lowers to nil. Dispatch
// candidates are lowered once per Lower call and shared, so a candidate
// whose body dispatches back to itself lowers to a finite graph.
func Lower(s *Statement) *Instruction {
	l := &lowerer{candidates: make(map[*DispatchCandidate]*InstrDispatchCandidate)}
	return l.lower(s)
}

type lowerer struct {
	candidates map[*DispatchCandidate]*InstrDispatchCandidate
}

func (l *lowerer) lower(s *Statement) *Instruction {
	if s == nil {
		return nil
	}

	switch s.Kind {
	case UnaryArith:
		return &Instruction{Kind: s.Arith, Left: l.lower(s.Left)}
	case BinaryArith:
		return &Instruction{Kind: s.Arith, Left: l.lower(s.Left), Right: l.lower(s.Right)}
	}

	out := &Instruction{
		Kind:          s.Kind,
		ConstantValue: s.ConstantValue,
		Callee:        l.lower(s.Callee),
		Args:          l.lowerList(s.Args),
		Items:         l.lowerList(s.Items),
		VarIndex:      s.VarIndex,
		VarValue:      l.lower(s.VarValue),
		ImportIndex:   s.ImportIndex,
		Sub:           l.lower(s.Sub),
		Address:       s.Address,
		SetValue:      l.lower(s.SetValue),
		Fn:            l.lower(s.Fn),
		Condition:     l.lower(s.Condition),
		Then:          l.lower(s.Then),
		Else:          l.lower(s.Else),
		Handler:       l.lower(s.Handler),
		Body:          l.lower(s.Body),
		Keys:          l.lowerList(s.Keys),
		Values:        l.lowerList(s.Values),
		Names:         s.Names,
		ImportPath:    s.ImportPath,
	}

	if len(s.Dispatchees) > 0 {
		out.Dispatchees = make([]*InstrDispatchCandidate, len(s.Dispatchees))
		for i, d := range s.Dispatchees {
			out.Dispatchees[i] = l.lowerCandidate(d)
		}
	}

	return out
}

// lowerCandidate registers the lowered candidate before descending into its
// body, so a recursive body's Dispatch back to the same candidate finds the
// entry instead of recursing forever.
func (l *lowerer) lowerCandidate(d *DispatchCandidate) *InstrDispatchCandidate {
	if ic, ok := l.candidates[d]; ok {
		return ic
	}
	ic := &InstrDispatchCandidate{ArgTypes: d.ArgTypes, Locals: d.Locals}
	l.candidates[d] = ic
	ic.Body = l.lower(d.Body)
	return ic
}

func (l *lowerer) lowerList(ss []*Statement) []*Instruction {
	if ss == nil {
		return nil
	}
	out := make([]*Instruction, len(ss))
	for i, s := range ss {
		out[i] = l.lower(s)
	}
	return out
}
