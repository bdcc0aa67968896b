package ptype

import "gopkg.in/yaml.v3"

// DebugYAML renders t as a YAML document for tooling (the disasm CLI's
// --yaml flag); like the textual String() form it is debug output, not a
// stable serialization format.
func (t *Type) DebugYAML() (string, error) {
	b, err := yaml.Marshal(t.debugNode())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (t *Type) debugNode() any {
	if t == nil {
		return nil
	}
	n := map[string]any{"kind": t.Kind.String()}
	switch t.Kind {
	case KindFunction:
		n["arguments"] = t.Function.Arguments.debugNode()
		n["return"] = t.Function.ReturnType.debugNode()
	case KindTuple:
		elems := make([]any, len(t.Tuple.Elements))
		for i, el := range t.Tuple.Elements {
			elems[i] = el.debugNode()
		}
		n["elements"] = elems
		if t.Tuple.Varargs != nil {
			n["varargs"] = t.Tuple.Varargs.debugNode()
		}
	case KindReference, KindList, KindSet:
		n["elem"] = t.Elem.debugNode()
	case KindTable:
		n["key"] = t.Table.Key.debugNode()
		n["value"] = t.Table.Value.debugNode()
	case KindComposite:
		fields := make(map[string]any, len(t.Composite))
		for name, ft := range t.Composite {
			fields[name] = ft.debugNode()
		}
		n["fields"] = fields
	case KindType, KindNot:
		n["inner"] = t.Inner.debugNode()
	case KindWithProperty:
		n["inner"] = t.Inner.debugNode()
		if t.Required != nil {
			n["property"] = t.Required.Name
		}
	case KindUnion, KindIntersection:
		ops := make([]any, len(t.Operands))
		for i, op := range t.Operands {
			ops[i] = op.debugNode()
		}
		n["operands"] = ops
	case KindBaseType:
		n["base"] = t.BaseKind.String()
	}
	if t.Props != nil && t.Props.Len() > 0 {
		n["properties"] = t.Props.debugNode()
	}
	return n
}

// DebugYAML renders the property bag's tag names and argument counts.
func (p *Properties) DebugYAML() (string, error) {
	b, err := yaml.Marshal(p.debugNode())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Properties) debugNode() any {
	if p == nil {
		return nil
	}
	tags := make([]map[string]any, 0, p.Len())
	for _, tag := range p.Tags() {
		tags = append(tags, map[string]any{"name": tag.Name, "args": len(p.Args(tag))})
	}
	return tags
}
