package value

import "github.com/cwbudde/corelang/internal/ptype"

// CheckType reports whether the runtime value v inhabits the type t: it
// mirrors ptype.Match but tests a concrete runtime Value against a type
// directly, recursing element-wise into concrete collections instead of
// going through ToType (which would lose per-position precision for
// heterogeneous Arrays matched against a Tuple with distinct element types).
func CheckType(v Value, t *ptype.Type) bool {
	if t == nil {
		return false
	}

	ok := checkKind(v, t)

	if t.Props != nil {
		for _, tag := range t.Props.Tags() {
			if tag.ValueMatcher == nil {
				continue
			}
			if !tag.ValueMatcher(v, t.Props.Args(tag)) {
				ok = false
			}
		}
	}

	return ok
}

func checkKind(v Value, t *ptype.Type) bool {
	// A PropertyReference only matters to WithProperty (and to the typeclass
	// combinators, which re-enter CheckType and see the wrapper again); any
	// concrete kind check underneath it must see through to the wrapped value.
	if v.Kind == KindPropertyReference && t.Kind.IsConcrete() {
		return checkKind(v.AsPropertyReference().Value, t)
	}

	switch t.Kind {
	case ptype.KindAny:
		return true
	case ptype.KindNone:
		return false
	case ptype.KindUnion:
		for _, op := range t.Operands {
			if CheckType(v, op) {
				return true
			}
		}
		return false
	case ptype.KindIntersection:
		for _, op := range t.Operands {
			if !CheckType(v, op) {
				return false
			}
		}
		return true
	case ptype.KindNot:
		return !CheckType(v, t.Inner)
	case ptype.KindBaseType:
		return ToType(v).Kind == t.BaseKind
	case ptype.KindWithProperty:
		if !hasRuntimeProperty(v, t.Required) {
			return false
		}
		return CheckType(v, t.Inner)
	case ptype.KindCustomMatcher:
		if t.Matcher == nil || t.Matcher.ValueCheck == nil {
			return false
		}
		return t.Matcher.ValueCheck(v)
	case ptype.KindNoneValue:
		return v.Kind == KindNone
	case ptype.KindInteger:
		return v.Kind == KindInteger
	case ptype.KindUnsigned:
		return v.Kind == KindUnsigned
	case ptype.KindFloat:
		return v.Kind == KindFloat
	case ptype.KindBoolean:
		return v.Kind == KindBoolean
	case ptype.KindString:
		return v.Kind == KindString
	case ptype.KindExpression:
		return v.Kind == KindExpression
	case ptype.KindStatement:
		return v.Kind == KindStatement
	case ptype.KindScope:
		return v.Kind == KindScope
	case ptype.KindFunction:
		return v.Kind == KindFunction || v.Kind == KindNativeFunction
	case ptype.KindReference:
		return v.Kind == KindReference && CheckType(v.AsReference().Cell, t.Elem)
	case ptype.KindList:
		if v.Kind != KindList {
			return false
		}
		for _, item := range v.AsList().Items {
			if !CheckType(item, t.Elem) {
				return false
			}
		}
		return true
	case ptype.KindSet:
		if v.Kind != KindSet {
			return false
		}
		ok := true
		v.AsSet().Each(func(item Value) {
			if !CheckType(item, t.Elem) {
				ok = false
			}
		})
		return ok
	case ptype.KindTable:
		if v.Kind != KindTable {
			return false
		}
		ok := true
		v.AsTable().Each(func(k, val Value) {
			if !CheckType(k, t.Table.Key) || !CheckType(val, t.Table.Value) {
				ok = false
			}
		})
		return ok
	case ptype.KindTuple:
		if v.Kind != KindArray {
			return false
		}
		items := v.AsArray().Items
		fixed := t.Tuple.Elements
		if t.Tuple.Varargs == nil {
			if len(items) != len(fixed) {
				return false
			}
		} else if len(items) < len(fixed) {
			return false
		}
		for i, elemType := range fixed {
			if !CheckType(items[i], elemType) {
				return false
			}
		}
		if t.Tuple.Varargs != nil {
			for _, item := range items[len(fixed):] {
				if !CheckType(item, t.Tuple.Varargs) {
					return false
				}
			}
		}
		return true
	case ptype.KindComposite:
		if v.Kind != KindComposite {
			return false
		}
		fields := v.AsComposite().Fields
		if len(fields) != len(t.Composite) {
			return false
		}
		for name, fieldType := range t.Composite {
			fv, ok := fields[name]
			if !ok || !CheckType(fv, fieldType) {
				return false
			}
		}
		return true
	case ptype.KindType:
		if v.Kind != KindType {
			return false
		}
		return ptype.Matches(t.Inner, v.AsType())
	default:
		return false
	}
}

func hasRuntimeProperty(v Value, tag *ptype.Tag) bool {
	if v.Kind == KindPropertyReference {
		return v.AsPropertyReference().Properties.Has(tag)
	}
	return ToType(v).Props.Has(tag)
}
