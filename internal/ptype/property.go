package ptype

// Tag identifies a named, user-extensible property on a Type (or, via
// WithProperty, on a value). Tag identity is by pointer, never by name: two
// tags with the same Name are distinct unless they are the same *Tag. This
// lets host code (the primitives registry, template metaprogramming, both
// out of core scope) mint new refinement kinds without the core ever
// enumerating them.
type Tag struct {
	// Name is for debugging/printing only; it plays no role in equality.
	Name string

	// ArgKinds documents the expected argument kinds for error messages; it
	// is not enforced by the core.
	ArgKinds []Kind

	// TypeMatcher, if set, is folded into match() via min() whenever this tag
	// is present on the matcher type's Properties.
	TypeMatcher func(t *Type, args []any) Match

	// ValueMatcher, if set, is consulted by checkType-style value checks (see
	// the value package's CheckType) for any tag present on a type's
	// Properties. args is the Property's argument list.
	ValueMatcher func(v any, args []any) bool
}

// Property pairs a Tag with its argument list.
type Property struct {
	Tag  *Tag
	Args []any
}

// Properties is a mapping from tag identity to argument list. Per spec, a
// Properties table never holds two entries for the same tag.
type Properties struct {
	entries map[*Tag][]any
	order   []*Tag // insertion order, used only for deterministic iteration/printing
}

// NewProperties creates an empty property bag.
func NewProperties() *Properties {
	return &Properties{entries: make(map[*Tag][]any)}
}

// With returns a new Properties with the given tag bound to args, replacing
// any prior binding for that tag. The receiver is left unmodified;
// Properties are treated as immutable once attached to a Type.
func (p *Properties) With(tag *Tag, args ...any) *Properties {
	next := NewProperties()
	if p != nil {
		for _, t := range p.order {
			next.set(t, p.entries[t])
		}
	}
	next.set(tag, args)
	return next
}

func (p *Properties) set(tag *Tag, args []any) {
	if _, exists := p.entries[tag]; !exists {
		p.order = append(p.order, tag)
	}
	p.entries[tag] = args
}

// Has reports whether tag is present.
func (p *Properties) Has(tag *Tag) bool {
	if p == nil {
		return false
	}
	_, ok := p.entries[tag]
	return ok
}

// Args returns the argument list bound to tag, or nil if absent.
func (p *Properties) Args(tag *Tag) []any {
	if p == nil {
		return nil
	}
	return p.entries[tag]
}

// Tags returns the set of tags present, in insertion order.
func (p *Properties) Tags() []*Tag {
	if p == nil {
		return nil
	}
	out := make([]*Tag, len(p.order))
	copy(out, p.order)
	return out
}

// Len reports the number of properties attached.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}
