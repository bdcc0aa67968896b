package instr

import (
	"hash/fnv"

	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/value"
)

// nilInstrHash is the fixed sentinel a nil Instruction or Statement child
// hashes to.
const nilInstrHash uint64 = 0xC0FFEE1EAFC0DE00

// Hash computes a structural hash for an Instruction tree consistent with
// Equal. Dispatch candidates are hashed once and referenced by a
// traversal-order ordinal on every later visit; since Lower gives
// structurally equal trees the same sharing shape, equal trees assign equal
// ordinals and the hash/equality coherence contract holds.
func Hash(i *Instruction) uint64 {
	h := fnv.New64a()
	hs := &hashState{seen: make(map[*InstrDispatchCandidate]int)}
	hs.hashInto(h, i)
	return h.Sum64()
}

type writer interface {
	Write([]byte) (int, error)
}

type hashState struct {
	seen map[*InstrDispatchCandidate]int
}

func (hs *hashState) hashInto(h writer, i *Instruction) {
	if i == nil {
		writeU64b(h, nilInstrHash)
		return
	}
	writeByteb(h, byte(i.Kind))
	switch i.Kind {
	case Constant:
		writeU64b(h, value.Hash(i.ConstantValue))
	case FunctionCall, BuildTuple, BuildList, BuildSet:
		hs.hashInto(h, i.Callee)
		hs.hashListInto(h, i.Args)
	case Dispatch:
		hs.hashListInto(h, i.Args)
		for _, p := range i.ImportPath {
			writeU64b(h, uint64(p))
		}
		for _, d := range i.Dispatchees {
			hs.hashCandidateInto(h, d)
		}
	case Sequence:
		hs.hashListInto(h, i.Items)
	case VariableGet:
		writeU64b(h, uint64(i.VarIndex))
	case VariableSet:
		writeU64b(h, uint64(i.VarIndex))
		hs.hashInto(h, i.VarValue)
	case FromImportedStack:
		writeU64b(h, uint64(i.ImportIndex))
		hs.hashInto(h, i.Sub)
	case SetAddress:
		for _, a := range i.Address {
			writeU64b(h, uint64(a))
		}
		hs.hashInto(h, i.SetValue)
	case ArmStack:
		hs.hashInto(h, i.Fn)
	case If:
		hs.hashInto(h, i.Condition)
		hs.hashInto(h, i.Then)
		hs.hashInto(h, i.Else)
	case While, DoUntil:
		hs.hashInto(h, i.Condition)
		hs.hashInto(h, i.Body)
	case EmitEffect:
		hs.hashInto(h, i.Callee)
	case HandleEffect:
		hs.hashInto(h, i.Handler)
		hs.hashInto(h, i.Body)
	case BuildTable:
		hs.hashListInto(h, i.Keys)
		hs.hashListInto(h, i.Values)
	case BuildComposite:
		for _, n := range i.Names {
			writeBytesb(h, []byte(n))
		}
		hs.hashListInto(h, i.Values)
	case NoOp:
	default:
		if i.Kind.IsArithmetic() {
			hs.hashInto(h, i.Left)
			if !i.Kind.IsUnaryArithmetic() {
				hs.hashInto(h, i.Right)
			}
		}
	}
}

// hashCandidateInto hashes a candidate's signature and body on first visit,
// then writes only its ordinal on every later visit: the cycle-breaker for
// recursive candidates, the same identity split Reference and Function
// values use.
func (hs *hashState) hashCandidateInto(h writer, d *InstrDispatchCandidate) {
	if ord, ok := hs.seen[d]; ok {
		writeByteb(h, 0xB1)
		writeU64b(h, uint64(ord))
		return
	}
	hs.seen[d] = len(hs.seen)
	writeByteb(h, 0xB0)
	for _, at := range d.ArgTypes {
		writeU64b(h, ptype.Hash(at))
	}
	writeU64b(h, uint64(d.Locals))
	hs.hashInto(h, d.Body)
}

func (hs *hashState) hashListInto(h writer, items []*Instruction) {
	for _, it := range items {
		hs.hashInto(h, it)
	}
}

func writeByteb(h writer, b byte)    { _, _ = h.Write([]byte{b}) }
func writeBytesb(h writer, b []byte) { _, _ = h.Write(b) }
func writeU64b(h writer, v uint64) {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf)
}
