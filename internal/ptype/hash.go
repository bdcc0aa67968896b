package ptype

import (
	"fmt"
	"hash/fnv"
)

// nilTypeHash is the fixed sentinel a nil *Type hashes to: Hash(nil) returns
// it as is, and a nil subfield writes it into the running FNV hash.
const nilTypeHash uint64 = 0xFEEDFACECAFEBEEF

// Hash computes a structural hash for t consistent with Equal: equal types
// hash identically. A nil *Type hashes to the fixed sentinel itself.
func Hash(t *Type) uint64 {
	if t == nil {
		return nilTypeHash
	}
	h := fnv.New64a()
	hashInto(h, t)
	return h.Sum64()
}

func hashInto(h interface{ Write([]byte) (int, error) }, t *Type) {
	if t == nil {
		writeU64(h, nilTypeHash)
		return
	}
	writeByte(h, byte(t.Kind))
	hashPropertiesInto(h, t.Props)

	switch t.Kind {
	case KindFunction:
		hashInto(h, t.Function.Arguments)
		hashInto(h, t.Function.ReturnType)
	case KindTuple:
		writeU64(h, uint64(len(t.Tuple.Elements)))
		for _, e := range t.Tuple.Elements {
			hashInto(h, e)
		}
		hashInto(h, t.Tuple.Varargs)
	case KindReference, KindList, KindSet:
		hashInto(h, t.Elem)
	case KindTable:
		hashInto(h, t.Table.Key)
		hashInto(h, t.Table.Value)
	case KindComposite:
		for _, name := range sortedFieldNames(t.Composite) {
			writeString(h, name)
			hashInto(h, t.Composite[name])
		}
	case KindType:
		hashInto(h, t.Inner)
	case KindUnion, KindIntersection:
		for _, op := range t.Operands {
			hashInto(h, op)
		}
	case KindNot:
		hashInto(h, t.Inner)
	case KindBaseType:
		writeByte(h, byte(t.BaseKind))
	case KindWithProperty:
		writeString(h, fmt.Sprintf("%p", t.Required))
		hashInto(h, t.Inner)
	case KindCustomMatcher:
		writeString(h, fmt.Sprintf("%p", t.Matcher))
	}
}

func hashPropertiesInto(h interface{ Write([]byte) (int, error) }, p *Properties) {
	for _, tag := range p.Tags() {
		writeString(h, fmt.Sprintf("%p", tag))
	}
}

func writeByte(h interface{ Write([]byte) (int, error) }, b byte) { _, _ = h.Write([]byte{b}) }

func writeU64(h interface{ Write([]byte) (int, error) }, v uint64) {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf)
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	_, _ = h.Write([]byte(s))
}
