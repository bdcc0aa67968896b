package ptype

// Equal implements Type structural equality. Ref-typed
// subfields compare by pointed-to content when both sides are non-nil, by
// nullness otherwise; equal pointer identity is always equal regardless of
// payload, which keeps this total even if a caller manages to construct a
// cyclic Type (not expected in normal use, but the core must not crash on
// ill-formed input).
func (a *Type) Equal(b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	if !propertiesEqual(a.Props, b.Props) {
		return false
	}

	switch a.Kind {
	case KindFunction:
		return a.Function.Arguments.Equal(b.Function.Arguments) &&
			a.Function.ReturnType.Equal(b.Function.ReturnType)
	case KindTuple:
		if len(a.Tuple.Elements) != len(b.Tuple.Elements) {
			return false
		}
		for i := range a.Tuple.Elements {
			if !a.Tuple.Elements[i].Equal(b.Tuple.Elements[i]) {
				return false
			}
		}
		return nullableEqual(a.Tuple.Varargs, b.Tuple.Varargs)
	case KindReference, KindList, KindSet:
		return a.Elem.Equal(b.Elem)
	case KindTable:
		return a.Table.Key.Equal(b.Table.Key) && a.Table.Value.Equal(b.Table.Value)
	case KindComposite:
		if len(a.Composite) != len(b.Composite) {
			return false
		}
		for name, at := range a.Composite {
			bt, ok := b.Composite[name]
			if !ok || !at.Equal(bt) {
				return false
			}
		}
		return true
	case KindType:
		return a.Inner.Equal(b.Inner)
	case KindUnion, KindIntersection:
		if len(a.Operands) != len(b.Operands) {
			return false
		}
		for i := range a.Operands {
			if !a.Operands[i].Equal(b.Operands[i]) {
				return false
			}
		}
		return true
	case KindNot:
		return a.Inner.Equal(b.Inner)
	case KindBaseType:
		return a.BaseKind == b.BaseKind
	case KindWithProperty:
		return a.Required == b.Required && a.Inner.Equal(b.Inner)
	case KindCustomMatcher:
		// CustomMatcher payloads hold closures; identity is the only sound
		// comparison (this is why the a == b fast path above exists at all).
		return false
	default:
		return true // atomic concrete/typeclass kinds with no further payload
	}
}

func nullableEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

func propertiesEqual(a, b *Properties) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, tag := range a.Tags() {
		if !b.Has(tag) {
			return false
		}
		aa, ba := a.Args(tag), b.Args(tag)
		if len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if aa[i] != ba[i] {
				return false
			}
		}
	}
	return true
}
