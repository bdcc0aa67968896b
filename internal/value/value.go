package value

import "github.com/cwbudde/corelang/internal/ptype"

// Value is the tagged-union runtime datum. It carries no type tag beyond its
// Kind: primitives pack their payload directly into Data,
// collections/composites/functions/types hold an owned pointer to a heap
// object.
type Value struct {
	Kind Kind
	Data any
}

// Frame is the subset of Stack's behavior that a Function closure needs to
// reference. It lives here, rather than a direct dependency on the stack
// package, to avoid the import cycle that would otherwise exist (stack needs
// []Value for its slots; Function needs *Stack for its captured frame). The
// stack package supplies the concrete implementation; the evaluator asserts
// it back where it needs the full type.
type Frame interface {
	Get(index int) Value
	Set(index int, v Value) Value
	ShallowRefresh() Frame
}

// List is the owned heap object backing a KindList value: a growable ordered
// sequence.
type List struct {
	Items []Value
}

// Str is the owned heap object backing a KindString value: a mutable byte
// sequence. UTF-8 is not enforced by the core.
type Str struct {
	Bytes []byte
}

// Array is the owned heap object backing a KindArray value: a fixed-length
// ordered sequence, tuple-like and heterogeneous.
type Array struct {
	Items []Value
}

// Ref is the owned heap object backing a KindReference value: exactly one
// mutable Value cell.
type Ref struct {
	Cell Value
}

// Composite is the owned heap object backing a KindComposite value: a
// mapping from short field names to values.
type Composite struct {
	Fields map[string]Value
}

// PropertyReference is the owned heap object backing a KindPropertyReference
// value: a value annotated with a runtime Properties bag.
type PropertyReference struct {
	Properties *ptype.Properties
	Value      Value
}

// Function is the owned heap object backing a KindFunction value: a closure
// pairing a captured Stack frame with the instruction it runs. Instruction is
// held as `any` (rather than *instr.Instruction) purely to avoid a package
// cycle — internal/instr holds Value in its Constant nodes, so it cannot also
// be imported here. Callers that need the concrete type assert it back; see
// internal/coreeval, which is the only consumer.
type Function struct {
	Stack       Frame
	Instruction any
}

// NativeFunction is the non-owning callable payload backing a
// KindNativeFunction value: a host function accepting a positional argument
// list and returning a single Value.
type NativeFunction func(args []Value) Value

// Set is the owned heap object backing a KindSet value.
type Set struct {
	// buckets indexes distinct values by their Hash(); collisions are resolved
	// by a short bucket scan using Equal, the same split used everywhere else
	// in this package between a fast structural hash and an authoritative
	// equality check.
	buckets map[uint64][]Value
}

// NewSet constructs an empty Set.
func NewSet() *Set { return &Set{buckets: make(map[uint64][]Value)} }

// Add inserts v if not already present; reports whether it was newly added.
func (s *Set) Add(v Value) bool {
	h := Hash(v)
	for _, existing := range s.buckets[h] {
		if Equal(existing, v) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	return true
}

// Has reports whether v is a member.
func (s *Set) Has(v Value) bool {
	h := Hash(v)
	for _, existing := range s.buckets[h] {
		if Equal(existing, v) {
			return true
		}
	}
	return false
}

// Len reports the number of members.
func (s *Set) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}

// Each calls fn for every member, in unspecified order.
func (s *Set) Each(fn func(Value)) {
	for _, b := range s.buckets {
		for _, v := range b {
			fn(v)
		}
	}
}

// Table is the owned heap object backing a KindTable value: a hash-map from
// Value to Value, using the same hash-then-equal bucket scheme as Set.
type Table struct {
	buckets map[uint64][]tableEntry
}

type tableEntry struct {
	Key   Value
	Value Value
}

// NewTable constructs an empty Table.
func NewTable() *Table { return &Table{buckets: make(map[uint64][]tableEntry)} }

// Set stores value under key, overwriting any existing entry.
func (t *Table) Set(key, val Value) {
	h := Hash(key)
	bucket := t.buckets[h]
	for i, e := range bucket {
		if Equal(e.Key, key) {
			bucket[i].Value = val
			return
		}
	}
	t.buckets[h] = append(bucket, tableEntry{Key: key, Value: val})
}

// Get looks up key, reporting whether it was found.
func (t *Table) Get(key Value) (Value, bool) {
	for _, e := range t.buckets[Hash(key)] {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return Value{Kind: KindNone}, false
}

// Len reports the number of entries.
func (t *Table) Len() int {
	n := 0
	for _, b := range t.buckets {
		n += len(b)
	}
	return n
}

// Each calls fn for every (key, value) pair, in unspecified order.
func (t *Table) Each(fn func(key, val Value)) {
	for _, b := range t.buckets {
		for _, e := range b {
			fn(e.Key, e.Value)
		}
	}
}

// Effect is the owned heap object backing a KindEffect value: an in-flight
// effect token wrapping the value it carries.
type Effect struct {
	Inner Value
}

// --- toValue constructors ---

// None is the unit datum.
var None = Value{Kind: KindNone}

func Int(i int64) Value    { return Value{Kind: KindInteger, Data: i} }
func Unsigned(u uint64) Value { return Value{Kind: KindUnsigned, Data: u} }
func Float(f float64) Value { return Value{Kind: KindFloat, Data: f} }
func Bool(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{Kind: KindBoolean, Data: i}
}

func ListOf(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{Kind: KindList, Data: &List{Items: cp}}
}

func StringOf(s string) Value {
	return Value{Kind: KindString, Data: &Str{Bytes: []byte(s)}}
}

func ArrayOf(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{Kind: KindArray, Data: &Array{Items: cp}}
}

func ReferenceOf(initial Value) Value {
	return Value{Kind: KindReference, Data: &Ref{Cell: initial}}
}

func CompositeOf(fields map[string]Value) Value {
	return Value{Kind: KindComposite, Data: &Composite{Fields: fields}}
}

func PropertyReferenceOf(props *ptype.Properties, v Value) Value {
	return Value{Kind: KindPropertyReference, Data: &PropertyReference{Properties: props, Value: v}}
}

func TypeOf(t *ptype.Type) Value { return Value{Kind: KindType, Data: t} }

func NativeFunctionOf(fn NativeFunction) Value {
	return Value{Kind: KindNativeFunction, Data: fn}
}

func FunctionOf(frame Frame, instruction any) Value {
	return Value{Kind: KindFunction, Data: &Function{Stack: frame, Instruction: instruction}}
}

func EffectOf(v Value) Value { return Value{Kind: KindEffect, Data: &Effect{Inner: v}} }

func SetOf(s *Set) Value   { return Value{Kind: KindSet, Data: s} }
func TableOf(t *Table) Value { return Value{Kind: KindTable, Data: t} }

// Compile-time entities carried as first-class values. The payload is held
// as `any` for the same package-cycle reason Function.Instruction is: the
// packages defining the concrete types sit above this one. Equality and
// hashing treat these by identity, so the payload must be a pointer.
func ExpressionOf(e any) Value { return Value{Kind: KindExpression, Data: e} }
func StatementOf(s any) Value  { return Value{Kind: KindStatement, Data: s} }
func ScopeOf(s any) Value      { return Value{Kind: KindScope, Data: s} }

// --- payload accessors (panic on kind mismatch; callers are expected to
// have checked Kind first) ---

func (v Value) AsInt() int64        { return v.Data.(int64) }
func (v Value) AsUnsigned() uint64  { return v.Data.(uint64) }
func (v Value) AsFloat() float64    { return v.Data.(float64) }
func (v Value) AsBool() bool        { return v.Data.(int64) != 0 }
func (v Value) AsList() *List       { return v.Data.(*List) }
func (v Value) AsString() *Str      { return v.Data.(*Str) }
func (v Value) AsArray() *Array     { return v.Data.(*Array) }
func (v Value) AsReference() *Ref   { return v.Data.(*Ref) }
func (v Value) AsComposite() *Composite { return v.Data.(*Composite) }
func (v Value) AsPropertyReference() *PropertyReference { return v.Data.(*PropertyReference) }
func (v Value) AsType() *ptype.Type { return v.Data.(*ptype.Type) }
func (v Value) AsNativeFunction() NativeFunction { return v.Data.(NativeFunction) }
func (v Value) AsFunction() *Function { return v.Data.(*Function) }
func (v Value) AsEffect() *Effect   { return v.Data.(*Effect) }
func (v Value) AsSet() *Set         { return v.Data.(*Set) }
func (v Value) AsTable() *Table     { return v.Data.(*Table) }

// StringValue returns the Go string content of a KindString value.
func (v Value) StringValue() string { return string(v.AsString().Bytes) }

// IsNone reports whether v is the unit datum.
func (v Value) IsNone() bool { return v.Kind == KindNone }
