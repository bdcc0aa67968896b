package value

// Kind tags a Value as one of the runtime datum variants.
type Kind int

const (
	KindNone Kind = iota
	KindInteger
	KindUnsigned
	KindFloat
	KindBoolean
	KindList
	KindString
	KindArray
	KindReference
	KindComposite
	KindPropertyReference
	KindType
	KindNativeFunction
	KindFunction
	KindEffect
	KindSet
	KindTable
	KindExpression
	KindStatement
	KindScope
)

var kindNames = [...]string{
	KindNone:              "None",
	KindInteger:           "Integer",
	KindUnsigned:          "Unsigned",
	KindFloat:             "Float",
	KindBoolean:           "Boolean",
	KindList:              "List",
	KindString:            "String",
	KindArray:             "Array",
	KindReference:         "Reference",
	KindComposite:         "Composite",
	KindPropertyReference: "PropertyReference",
	KindType:              "Type",
	KindNativeFunction:    "NativeFunction",
	KindFunction:          "Function",
	KindEffect:            "Effect",
	KindSet:               "Set",
	KindTable:             "Table",
	KindExpression:        "Expression",
	KindStatement:         "Statement",
	KindScope:             "Scope",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}
