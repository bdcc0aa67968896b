package value

import (
	"fmt"
	"sort"
	"strings"
)

// String renders a debug form of v; the textual shape is debug output, not
// a stable contract.
func (v Value) String() string {
	switch v.Kind {
	case KindNone:
		return "none"
	case KindInteger:
		return fmt.Sprintf("%d", v.AsInt())
	case KindUnsigned:
		return fmt.Sprintf("%du", v.AsUnsigned())
	case KindFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case KindBoolean:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case KindString:
		return fmt.Sprintf("%q", v.StringValue())
	case KindList:
		return "[" + joinValues(v.AsList().Items) + "]"
	case KindArray:
		return "(" + joinValues(v.AsArray().Items) + ")"
	case KindReference:
		// Identity, not content: a Reference may close a cycle back to
		// itself, the same reason equality and hashing treat it by pointer.
		return fmt.Sprintf("ref(%p)", v.AsReference())
	case KindComposite:
		fields := v.AsComposite().Fields
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ": " + fields[name].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindPropertyReference:
		return "prop " + v.AsPropertyReference().Value.String()
	case KindType:
		return "type " + v.AsType().String()
	case KindNativeFunction:
		return "<native function>"
	case KindFunction:
		return "<function>"
	case KindEffect:
		return "effect " + v.AsEffect().Inner.String()
	case KindSet:
		items := make([]Value, 0, v.AsSet().Len())
		v.AsSet().Each(func(it Value) { items = append(items, it) })
		sortValuesForPrint(items)
		return "set{" + joinValues(items) + "}"
	case KindTable:
		t := v.AsTable()
		parts := make([]string, 0, t.Len())
		t.Each(func(k, val Value) { parts = append(parts, k.String()+": "+val.String()) })
		sort.Strings(parts)
		return "table{" + strings.Join(parts, ", ") + "}"
	default:
		return v.Kind.String()
	}
}

func joinValues(items []Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}

// sortValuesForPrint orders by rendered text so Set printing is stable
// across runs despite the bucket map's iteration order.
func sortValuesForPrint(items []Value) {
	sort.Slice(items, func(i, j int) bool { return items[i].String() < items[j].String() })
}
