package ptype

import "strings"

// FunctionPayload is the structural payload of a KindFunction type.
type FunctionPayload struct {
	Arguments  *Type // always a Tuple type, non-nil
	ReturnType *Type // non-nil
}

// TuplePayload is the structural payload of a KindTuple type.
type TuplePayload struct {
	Elements []*Type
	Varargs  *Type // nil if this tuple does not accept trailing varargs
}

// TablePayload is the structural payload of a KindTable type.
type TablePayload struct {
	Key   *Type
	Value *Type
}

// CustomMatcherPayload holds the two host-supplied predicates of a
// KindCustomMatcher type.
type CustomMatcherPayload struct {
	TypeMatch  func(t *Type) Match
	ValueCheck func(v any) bool
}

// Type is a discriminated union over Kind, carrying a Properties bag
// regardless of kind.
type Type struct {
	Kind  Kind
	Props *Properties

	Function  *FunctionPayload
	Tuple     *TuplePayload
	Elem      *Type // Reference/List/Set element type
	Table     *TablePayload
	Composite map[string]*Type // Composite field name -> type
	Inner     *Type            // Type's inner type, Not's inner type, WithProperty's inner type
	BaseKind  Kind             // BaseType's matched kind
	Required  *Tag             // WithProperty's required tag
	Operands  []*Type          // Union/Intersection operands, non-empty
	Matcher   *CustomMatcherPayload
}

func atomic(k Kind) *Type { return &Type{Kind: k} }

// Atomic concrete type singletons (no structural payload beyond kind).
var (
	NoneValueT  = atomic(KindNoneValue)
	IntegerT    = atomic(KindInteger)
	UnsignedT   = atomic(KindUnsigned)
	FloatT      = atomic(KindFloat)
	BooleanT    = atomic(KindBoolean)
	StringT     = atomic(KindString)
	ExpressionT = atomic(KindExpression)
	StatementT  = atomic(KindStatement)
	ScopeT      = atomic(KindScope)

	AnyT  = atomic(KindAny)
	NoneT = atomic(KindNone)
)

// NewFunction builds a Function type; both arguments and returnType must
// be non-nil.
func NewFunction(arguments *Type, returnType *Type) *Type {
	if arguments == nil || returnType == nil {
		panic("ptype: Function arguments and returnType must be non-nil")
	}
	return &Type{Kind: KindFunction, Function: &FunctionPayload{Arguments: arguments, ReturnType: returnType}}
}

// NewTuple builds a Tuple type from an ordered element list and an optional
// trailing varargs type (nil if none).
func NewTuple(elements []*Type, varargs *Type) *Type {
	return &Type{Kind: KindTuple, Tuple: &TuplePayload{Elements: elements, Varargs: varargs}}
}

// NewReference builds a Reference type over elem.
func NewReference(elem *Type) *Type { return &Type{Kind: KindReference, Elem: elem} }

// NewList builds a List type over elem.
func NewList(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// NewSet builds a Set type over elem.
func NewSet(elem *Type) *Type { return &Type{Kind: KindSet, Elem: elem} }

// NewTable builds a Table type over key/value.
func NewTable(key, value *Type) *Type {
	return &Type{Kind: KindTable, Table: &TablePayload{Key: key, Value: value}}
}

// NewComposite builds a Composite type from a field-name -> type mapping.
func NewComposite(fields map[string]*Type) *Type {
	return &Type{Kind: KindComposite, Composite: fields}
}

// NewTypeOf builds a Type-kind type describing values that are themselves
// types wrapping inner.
func NewTypeOf(inner *Type) *Type { return &Type{Kind: KindType, Inner: inner} }

// NewUnion builds a Union typeclass over a non-empty operand list.
func NewUnion(operands ...*Type) *Type {
	if len(operands) == 0 {
		panic("ptype: Union requires at least one operand")
	}
	return &Type{Kind: KindUnion, Operands: operands}
}

// NewIntersection builds an Intersection typeclass over a non-empty operand list.
func NewIntersection(operands ...*Type) *Type {
	if len(operands) == 0 {
		panic("ptype: Intersection requires at least one operand")
	}
	return &Type{Kind: KindIntersection, Operands: operands}
}

// NewNot builds a Not typeclass negating inner.
func NewNot(inner *Type) *Type { return &Type{Kind: KindNot, Inner: inner} }

// NewBaseType builds a BaseType typeclass matching any type whose Kind equals
// baseKind.
func NewBaseType(baseKind Kind) *Type { return &Type{Kind: KindBaseType, BaseKind: baseKind} }

// NewWithProperty builds a WithProperty typeclass requiring tag to be present
// alongside a covariant match of inner.
func NewWithProperty(inner *Type, tag *Tag) *Type {
	return &Type{Kind: KindWithProperty, Inner: inner, Required: tag}
}

// NewCustomMatcher builds a CustomMatcher type from a type predicate and a
// value predicate; either may be nil.
func NewCustomMatcher(typeMatch func(t *Type) Match, valueCheck func(v any) bool) *Type {
	return &Type{Kind: KindCustomMatcher, Matcher: &CustomMatcherPayload{TypeMatch: typeMatch, ValueCheck: valueCheck}}
}

// WithProps returns a shallow copy of t with props attached/replaced.
func (t *Type) WithProps(props *Properties) *Type {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Props = props
	return &clone
}

// String renders a debug-only textual form of the type; it is not
// specified bit-exactly.
func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case KindFunction:
		return "Function<" + t.Function.Arguments.String() + " -> " + t.Function.ReturnType.String() + ">"
	case KindTuple:
		parts := make([]string, len(t.Tuple.Elements))
		for i, e := range t.Tuple.Elements {
			parts[i] = e.String()
		}
		s := "(" + strings.Join(parts, ", ")
		if t.Tuple.Varargs != nil {
			s += ", ..." + t.Tuple.Varargs.String()
		}
		return s + ")"
	case KindReference:
		return "Reference<" + t.Elem.String() + ">"
	case KindList:
		return "List<" + t.Elem.String() + ">"
	case KindSet:
		return "Set<" + t.Elem.String() + ">"
	case KindTable:
		return "Table<" + t.Table.Key.String() + ", " + t.Table.Value.String() + ">"
	case KindComposite:
		parts := make([]string, 0, len(t.Composite))
		for _, name := range sortedFieldNames(t.Composite) {
			parts = append(parts, name+": "+t.Composite[name].String())
		}
		return "Composite{" + strings.Join(parts, ", ") + "}"
	case KindType:
		return "Type<" + t.Inner.String() + ">"
	case KindUnion:
		return joinOperands("Union", t.Operands)
	case KindIntersection:
		return joinOperands("Intersection", t.Operands)
	case KindNot:
		return "Not<" + t.Inner.String() + ">"
	case KindBaseType:
		return "BaseType<" + t.BaseKind.String() + ">"
	case KindWithProperty:
		name := "?"
		if t.Required != nil {
			name = t.Required.Name
		}
		return "WithProperty<" + name + ", " + t.Inner.String() + ">"
	case KindCustomMatcher:
		return "CustomMatcher"
	default:
		return t.Kind.String()
	}
}

func joinOperands(label string, ops []*Type) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.String()
	}
	return label + "<" + strings.Join(parts, " | ") + ">"
}

// sortedFieldNames returns a Composite's field names in lexicographic
// order, the deterministic field ordering printing and hashing rely on.
func sortedFieldNames(fields map[string]*Type) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	// Small insertion sort avoids pulling in sort for a handful of fields and
	// keeps output deterministic; composite arity is always small (struct
	// fields, record fields), so this is not a hot path.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
