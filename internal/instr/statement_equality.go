package instr

import (
	"hash/fnv"

	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/value"
)

// EqualStatements implements structural equality for Statement trees;
// CachedType participates. The same candidate-pair re-entry rule as Equal
// keeps recursive overload bodies finite.
func EqualStatements(a, b *Statement) bool {
	st := &stmtEqState{visiting: make(map[stmtCandidatePair]bool)}
	return st.equal(a, b)
}

type stmtCandidatePair struct {
	a, b *DispatchCandidate
}

type stmtEqState struct {
	visiting map[stmtCandidatePair]bool
}

func (st *stmtEqState) equal(a, b *Statement) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Arith != b.Arith {
		return false
	}
	if !a.CachedType.Equal(b.CachedType) {
		return false
	}
	if !value.Equal(a.ConstantValue, b.ConstantValue) {
		return false
	}
	if a.VarIndex != b.VarIndex || a.ImportIndex != b.ImportIndex {
		return false
	}
	if !addressEqual(a.Address, b.Address) || !addressEqual(a.ImportPath, b.ImportPath) {
		return false
	}
	if !namesEqual(a.Names, b.Names) {
		return false
	}
	if !st.dispatcheesEqual(a.Dispatchees, b.Dispatchees) {
		return false
	}
	return st.equal(a.Callee, b.Callee) &&
		st.sliceEqual(a.Args, b.Args) &&
		st.sliceEqual(a.Items, b.Items) &&
		st.equal(a.VarValue, b.VarValue) &&
		st.equal(a.Sub, b.Sub) &&
		st.equal(a.SetValue, b.SetValue) &&
		st.equal(a.Fn, b.Fn) &&
		st.equal(a.Condition, b.Condition) &&
		st.equal(a.Then, b.Then) &&
		st.equal(a.Else, b.Else) &&
		st.equal(a.Handler, b.Handler) &&
		st.equal(a.Body, b.Body) &&
		st.sliceEqual(a.Keys, b.Keys) &&
		st.sliceEqual(a.Values, b.Values) &&
		st.equal(a.Left, b.Left) &&
		st.equal(a.Right, b.Right)
}

func (st *stmtEqState) sliceEqual(a, b []*Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !st.equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (st *stmtEqState) dispatcheesEqual(a, b []*DispatchCandidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if len(a[i].ArgTypes) != len(b[i].ArgTypes) || a[i].Locals != b[i].Locals {
			return false
		}
		for j := range a[i].ArgTypes {
			if !a[i].ArgTypes[j].Equal(b[i].ArgTypes[j]) {
				return false
			}
		}
		pair := stmtCandidatePair{a[i], b[i]}
		if st.visiting[pair] {
			continue
		}
		st.visiting[pair] = true
		if !st.equal(a[i].Body, b[i].Body) {
			return false
		}
	}
	return true
}

// HashStatement computes a structural hash consistent with EqualStatements.
func HashStatement(s *Statement) uint64 {
	h := fnv.New64a()
	hs := &stmtHashState{seen: make(map[*DispatchCandidate]int)}
	hs.hashInto(h, s)
	return h.Sum64()
}

type stmtHashState struct {
	seen map[*DispatchCandidate]int
}

func (hs *stmtHashState) hashInto(h writer, s *Statement) {
	if s == nil {
		writeU64b(h, nilInstrHash)
		return
	}
	writeByteb(h, byte(s.Kind))
	writeByteb(h, byte(s.Arith))
	writeU64b(h, ptype.Hash(s.CachedType))
	writeU64b(h, value.Hash(s.ConstantValue))
	writeU64b(h, uint64(s.VarIndex))
	writeU64b(h, uint64(s.ImportIndex))
	for _, a := range s.Address {
		writeU64b(h, uint64(a))
	}
	for _, p := range s.ImportPath {
		writeU64b(h, uint64(p))
	}
	for _, n := range s.Names {
		writeBytesb(h, []byte(n))
	}
	for _, d := range s.Dispatchees {
		hs.hashCandidateInto(h, d)
	}
	hs.hashInto(h, s.Callee)
	hs.hashListInto(h, s.Args)
	hs.hashListInto(h, s.Items)
	hs.hashInto(h, s.VarValue)
	hs.hashInto(h, s.Sub)
	hs.hashInto(h, s.SetValue)
	hs.hashInto(h, s.Fn)
	hs.hashInto(h, s.Condition)
	hs.hashInto(h, s.Then)
	hs.hashInto(h, s.Else)
	hs.hashInto(h, s.Handler)
	hs.hashInto(h, s.Body)
	hs.hashListInto(h, s.Keys)
	hs.hashListInto(h, s.Values)
	hs.hashInto(h, s.Left)
	hs.hashInto(h, s.Right)
}

func (hs *stmtHashState) hashCandidateInto(h writer, d *DispatchCandidate) {
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

func (hs *stmtHashState) hashListInto(h writer, items []*Statement) {
	for _, s := range items {
		hs.hashInto(h, s)
	}
}
