package value

import "github.com/cwbudde/corelang/internal/ptype"

// Equal implements the Value equality contract: atoms
// compare by kind then payload; Reference and Function compare by identity
// (the sole cycle-breaker); every other collection/composite kind recurses
// structurally.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNone:
		return true
	case KindInteger, KindBoolean:
		return a.Data.(int64) == b.Data.(int64)
	case KindUnsigned:
		return a.Data.(uint64) == b.Data.(uint64)
	case KindFloat:
		return a.Data.(float64) == b.Data.(float64)
	case KindString:
		return string(a.AsString().Bytes) == string(b.AsString().Bytes)
	case KindList:
		return slicesEqual(a.AsList().Items, b.AsList().Items)
	case KindArray:
		return slicesEqual(a.AsArray().Items, b.AsArray().Items)
	case KindReference:
		return a.AsReference() == b.AsReference()
	case KindFunction:
		return a.AsFunction() == b.AsFunction()
	case KindComposite:
		return compositeEqual(a.AsComposite(), b.AsComposite())
	case KindSet:
		return setEqual(a.AsSet(), b.AsSet())
	case KindTable:
		return tableEqual(a.AsTable(), b.AsTable())
	case KindPropertyReference:
		pa, pb := a.AsPropertyReference(), b.AsPropertyReference()
		return propertiesEqual(pa.Properties, pb.Properties) && Equal(pa.Value, pb.Value)
	case KindType:
		return a.AsType().Equal(b.AsType())
	case KindEffect:
		return Equal(a.AsEffect().Inner, b.AsEffect().Inner)
	case KindNativeFunction:
		return nativeFuncPointer(a.AsNativeFunction()) == nativeFuncPointer(b.AsNativeFunction())
	case KindExpression, KindStatement, KindScope:
		// These wrap compile-time entities by reference; compare by identity.
		return a.Data == b.Data
	default:
		return false
	}
}

func slicesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func compositeEqual(a, b *Composite) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for name, av := range a.Fields {
		bv, ok := b.Fields[name]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func setEqual(a, b *Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Each(func(v Value) {
		if !b.Has(v) {
			equal = false
		}
	})
	return equal
}

func tableEqual(a, b *Table) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Each(func(k, v Value) {
		bv, ok := b.Get(k)
		if !ok || !Equal(v, bv) {
			equal = false
		}
	})
	return equal
}

func propertiesEqual(a, b *ptype.Properties) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, tag := range a.Tags() {
		if !b.Has(tag) {
			return false
		}
	}
	return true
}
