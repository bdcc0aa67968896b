package stack

// VariableAddress is an ordered sequence of integers indexing from the
// current context through zero or more imports to the variable's stack
// slot: every element but the last selects an import by index;
// the last element is the stack slot index within the final Stack reached.
// A single-element address refers to a slot in the current Stack directly.
type VariableAddress []int

// NewVariableAddress builds a VariableAddress reaching a local variable at
// stackIndex with no import hops.
func NewVariableAddress(stackIndex int) VariableAddress {
	return VariableAddress{stackIndex}
}

// Extend returns a new VariableAddress that first follows importIndex, then
// a, mirroring how an outer FromImportedStack nests around an inner
// access.
func (a VariableAddress) Extend(importIndex int) VariableAddress {
	out := make(VariableAddress, 0, len(a)+1)
	out = append(out, importIndex)
	out = append(out, a...)
	return out
}

// Resolve walks from into the Stack the address designates, following every
// import hop but the last index, and returns that final Stack plus the slot
// index to access within it.
func (a VariableAddress) Resolve(from *Stack) (*Stack, int) {
	s := from
	for _, hop := range a[:len(a)-1] {
		s = s.Import(hop)
	}
	return s, a[len(a)-1]
}
