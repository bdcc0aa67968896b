package ptype

// Kind tags a Type as one of the concrete, typeclass, or matcher variants.
// Concrete kinds describe a single class of runtime values; typeclass kinds
// describe sets of types; CustomMatcher is a host-supplied predicate pair.
type Kind int

const (
	// Concrete kinds.
	KindNoneValue Kind = iota
	KindInteger
	KindUnsigned
	KindFloat
	KindBoolean
	KindFunction
	KindTuple
	KindReference
	KindList
	KindString
	KindSet
	KindTable
	KindExpression
	KindStatement
	KindScope
	KindComposite
	KindType

	// Typeclass kinds.
	KindAny
	KindNone
	KindUnion
	KindIntersection
	KindNot
	KindBaseType
	KindWithProperty

	// Matcher kind.
	KindCustomMatcher
)

var kindNames = [...]string{
	KindNoneValue:     "NoneValue",
	KindInteger:       "Integer",
	KindUnsigned:      "Unsigned",
	KindFloat:         "Float",
	KindBoolean:       "Boolean",
	KindFunction:      "Function",
	KindTuple:         "Tuple",
	KindReference:     "Reference",
	KindList:          "List",
	KindString:        "String",
	KindSet:           "Set",
	KindTable:         "Table",
	KindExpression:    "Expression",
	KindStatement:     "Statement",
	KindScope:         "Scope",
	KindComposite:     "Composite",
	KindType:          "Type",
	KindAny:           "Any",
	KindNone:          "None",
	KindUnion:         "Union",
	KindIntersection:  "Intersection",
	KindNot:           "Not",
	KindBaseType:      "BaseType",
	KindWithProperty:  "WithProperty",
	KindCustomMatcher: "CustomMatcher",
}

// String renders the kind's debug name, falling back for any out-of-range
// value rather than panicking (the core never crashes on ill-formed input).
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsConcrete reports whether the kind describes a single class of runtime
// values, as opposed to a typeclass or matcher kind.
func (k Kind) IsConcrete() bool {
	return k >= KindNoneValue && k <= KindType
}

// IsAtomic reports whether the kind carries no structural payload beyond the
// kind tag itself.
func (k Kind) IsAtomic() bool {
	switch k {
	case KindNoneValue, KindInteger, KindUnsigned, KindFloat, KindBoolean,
		KindString, KindExpression, KindStatement, KindScope:
		return true
	default:
		return false
	}
}
