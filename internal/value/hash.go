package value

import (
	"hash/fnv"
	"math"
	"reflect"

	"github.com/cwbudde/corelang/internal/ptype"
)

// nilRefHash is the fixed sentinel a nil Reference/Function payload hashes
// to; it is distinct from any hash a non-nil pointer can produce.
const nilRefHash uint64 = 0xD15EA5EDDEADC0DE

// Hash computes a structural hash for v consistent with Equal: Reference
// and Function hash their pointer bits, not their payload, matching Equal's
// identity comparison for those two kinds.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	switch v.Kind {
	case KindNone:
		writeByte(h, 0)
	case KindInteger, KindBoolean:
		writeByte(h, byte(v.Kind))
		writeU64(h, uint64(v.Data.(int64)))
	case KindUnsigned:
		writeByte(h, byte(v.Kind))
		writeU64(h, v.Data.(uint64))
	case KindFloat:
		writeByte(h, byte(v.Kind))
		writeU64(h, math.Float64bits(v.Data.(float64)))
	case KindString:
		writeByte(h, byte(v.Kind))
		writeBytes(h, v.AsString().Bytes)
	case KindList:
		writeByte(h, byte(v.Kind))
		for _, item := range v.AsList().Items {
			writeU64(h, Hash(item))
		}
	case KindArray:
		writeByte(h, byte(v.Kind))
		for _, item := range v.AsArray().Items {
			writeU64(h, Hash(item))
		}
	case KindReference:
		writeByte(h, byte(v.Kind))
		writeU64(h, pointerHash(v.AsReference()))
	case KindFunction:
		writeByte(h, byte(v.Kind))
		writeU64(h, pointerHash(v.AsFunction()))
	case KindComposite:
		writeByte(h, byte(v.Kind))
		for _, name := range sortedKeys(v.AsComposite().Fields) {
			writeBytes(h, []byte(name))
			writeU64(h, Hash(v.AsComposite().Fields[name]))
		}
	case KindSet:
		writeByte(h, byte(v.Kind))
		var acc uint64
		v.AsSet().Each(func(item Value) { acc ^= Hash(item) })
		writeU64(h, acc)
	case KindTable:
		writeByte(h, byte(v.Kind))
		var acc uint64
		v.AsTable().Each(func(k, val Value) { acc ^= Hash(k)*31 + Hash(val) })
		writeU64(h, acc)
	case KindPropertyReference:
		writeByte(h, byte(v.Kind))
		writeU64(h, Hash(v.AsPropertyReference().Value))
	case KindType:
		writeByte(h, byte(v.Kind))
		writeU64(h, ptype.Hash(v.AsType()))
	case KindEffect:
		writeByte(h, byte(v.Kind))
		writeU64(h, Hash(v.AsEffect().Inner))
	case KindNativeFunction:
		writeByte(h, byte(v.Kind))
		writeU64(h, nativeFuncPointer(v.AsNativeFunction()))
	case KindExpression, KindStatement, KindScope:
		writeByte(h, byte(v.Kind))
		writeU64(h, uint64(reflect.ValueOf(v.Data).Pointer()))
	default:
		writeByte(h, 0xFF)
	}
	return h.Sum64()
}

func pointerHash(p any) uint64 {
	if p == nil {
		return nilRefHash
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nilRefHash
	}
	return uint64(rv.Pointer())
}

func nativeFuncPointer(fn NativeFunction) uint64 {
	if fn == nil {
		return nilRefHash
	}
	return uint64(reflect.ValueOf(fn).Pointer())
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func writeByte(h interface{ Write([]byte) (int, error) }, b byte) { _, _ = h.Write([]byte{b}) }

func writeBytes(h interface{ Write([]byte) (int, error) }, b []byte) { _, _ = h.Write(b) }

func writeU64(h interface{ Write([]byte) (int, error) }, v uint64) {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf)
}
