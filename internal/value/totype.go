package value

import "github.com/cwbudde/corelang/internal/ptype"

// ToType derives the tightest concrete ptype.Type describing v.
func ToType(v Value) *ptype.Type {
	switch v.Kind {
	case KindNone:
		return ptype.NoneValueT
	case KindInteger:
		return ptype.IntegerT
	case KindUnsigned:
		return ptype.UnsignedT
	case KindFloat:
		return ptype.FloatT
	case KindBoolean:
		return ptype.BooleanT
	case KindString:
		return ptype.StringT
	case KindList:
		return ptype.NewList(commonElementType(v.AsList().Items))
	case KindArray:
		items := v.AsArray().Items
		elems := make([]*ptype.Type, len(items))
		for i, it := range items {
			elems[i] = ToType(it)
		}
		return ptype.NewTuple(elems, nil)
	case KindReference:
		return ptype.NewReference(ToType(v.AsReference().Cell))
	case KindComposite:
		fields := make(map[string]*ptype.Type, len(v.AsComposite().Fields))
		for name, fv := range v.AsComposite().Fields {
			fields[name] = ToType(fv)
		}
		return ptype.NewComposite(fields)
	case KindPropertyReference:
		pr := v.AsPropertyReference()
		return ToType(pr.Value).WithProps(pr.Properties)
	case KindType:
		return ptype.NewTypeOf(v.AsType())
	case KindFunction, KindNativeFunction:
		// Call signatures are not enforced at this layer (a Function type
		// only checks that the value is callable), so the most general
		// signature is the correct structural type.
		return genericFunctionType
	case KindEffect:
		return ToType(v.AsEffect().Inner)
	case KindSet:
		items := make([]Value, 0, v.AsSet().Len())
		v.AsSet().Each(func(it Value) { items = append(items, it) })
		return ptype.NewSet(commonElementType(items))
	case KindTable:
		t := v.AsTable()
		keys := make([]Value, 0, t.Len())
		vals := make([]Value, 0, t.Len())
		t.Each(func(k, val Value) {
			keys = append(keys, k)
			vals = append(vals, val)
		})
		return ptype.NewTable(commonElementType(keys), commonElementType(vals))
	case KindExpression:
		return ptype.ExpressionT
	case KindStatement:
		return ptype.StatementT
	case KindScope:
		return ptype.ScopeT
	default:
		return ptype.AnyT
	}
}

var genericFunctionType = ptype.NewFunction(ptype.NewTuple(nil, ptype.AnyT), ptype.AnyT)

// commonElementType folds ToType across items with ptype.CommonType,
// defaulting to Any for an empty collection (an empty List/Set has no
// element to constrain its type from).
func commonElementType(items []Value) *ptype.Type {
	if len(items) == 0 {
		return ptype.AnyT
	}
	t := ToType(items[0])
	for _, it := range items[1:] {
		t = ptype.CommonType(t, ToType(it))
	}
	return t
}
