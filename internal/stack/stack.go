package stack

import "github.com/cwbudde/corelang/internal/value"

// Stack is the activation record of a context or function: a fixed set of
// imported Stacks plus an owned, growable array of value slots. It satisfies
// value.Frame so a Function value can capture one without internal/value
// importing this package back.
type Stack struct {
	Imports []*Stack
	Slots   []value.Value
}

// New constructs a Stack with size slots, all initialized to None, closing
// over imports.
func New(imports []*Stack, size int) *Stack {
	slots := make([]value.Value, size)
	for i := range slots {
		slots[i] = value.None
	}
	return &Stack{Imports: imports, Slots: slots}
}

// Get reads slot index.
func (s *Stack) Get(index int) value.Value {
	return s.Slots[index]
}

// Set writes and returns the stored value.
func (s *Stack) Set(index int, v value.Value) value.Value {
	s.Slots[index] = v
	return v
}

// Import returns the i'th imported stack.
func (s *Stack) Import(i int) *Stack {
	return s.Imports[i]
}

// ShallowRefresh returns a new Stack sharing Imports but with a freshly
// allocated, value-copied Slots array: used on function entry
// so recursive calls do not clobber the template frame captured by a
// Function's ArmStack. It returns value.Frame to satisfy that interface;
// callers within this package that need the concrete type use Refresh.
func (s *Stack) ShallowRefresh() value.Frame {
	return s.Refresh()
}

// Refresh is ShallowRefresh with the concrete *Stack return type, for callers
// inside or alongside this package that don't need to go through value.Frame.
func (s *Stack) Refresh() *Stack {
	slots := make([]value.Value, len(s.Slots))
	copy(slots, s.Slots)
	return &Stack{Imports: s.Imports, Slots: slots}
}

// Len reports the number of slots.
func (s *Stack) Len() int { return len(s.Slots) }

// Grow extends Slots to at least n slots, filling new entries with None.
// Context.AllVariables is append-only with stable indices, so a Stack built
// before all variables were declared must be able to grow without
// invalidating the indices already handed out.
func (s *Stack) Grow(n int) {
	for len(s.Slots) < n {
		s.Slots = append(s.Slots, value.None)
	}
}
