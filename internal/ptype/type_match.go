package ptype

// Match computes the matcher-against-candidate relation used for subtyping,
// overload ranking, and structural checks.
func (matcher *Type) Match(t *Type) Match {
	if matcher == nil || t == nil {
		return None
	}

	// Fast path: identical operand reference is always Equal.
	if matcher == t {
		return Equal
	}

	result := kindMatch(matcher, t)

	// After kind dispatch, clamp to at most AlmostEqual: concrete equality is
	// only ever reached through the identity fast path above.
	if result > AlmostEqual {
		result = AlmostEqual
	}

	// Fold in every property attached to matcher via its TypeMatcher, short
	// circuiting on None.
	if matcher.Props != nil {
		for _, tag := range matcher.Props.Tags() {
			if result == None {
				break
			}
			if tag.TypeMatcher == nil {
				continue
			}
			result = min(result, tag.TypeMatcher(t, matcher.Props.Args(tag)))
		}
	}

	return result
}

func kindMatch(matcher, t *Type) Match {
	switch matcher.Kind {
	case KindAny:
		return True
	case KindNone:
		return Unknown
	case KindUnion:
		return matchUnion(matcher, t)
	case KindIntersection:
		return matchIntersection(matcher, t)
	case KindNot:
		return Converse(matcher.Inner.Match(t))
	case KindBaseType:
		if t.Kind == matcher.BaseKind {
			return True
		}
		return False
	case KindCustomMatcher:
		if matcher.Matcher == nil || matcher.Matcher.TypeMatch == nil {
			return None
		}
		return matcher.Matcher.TypeMatch(t)
	case KindWithProperty:
		presence := FiniteFalse
		if matcher.Required != nil && t.Props.Has(matcher.Required) {
			presence = AlmostEqual
		}
		return min(presence, matcher.Inner.Match(t))
	default:
		// matcher is a concrete kind.
		return matchConcrete(matcher, t)
	}
}

func matchUnion(matcher, t *Type) Match {
	best := None
	for _, op := range matcher.Operands {
		m := op.Match(t)
		best = max(best, m)
		if best >= FiniteTrue {
			return FiniteTrue
		}
	}
	return best
}

func matchIntersection(matcher, t *Type) Match {
	worst := Equal
	for _, op := range matcher.Operands {
		m := op.Match(t)
		worst = min(worst, m)
		if worst <= FiniteFalse {
			return FiniteFalse
		}
	}
	return worst
}

func matchConcrete(matcher, t *Type) Match {
	if t.Kind.IsConcrete() {
		if t.Kind != matcher.Kind {
			return None
		}
	} else {
		// t is a typeclass or matcher kind; a concrete matcher can't decide
		// against it without evaluating t, which is the caller's direction to
		// try next.
		return Unknown
	}

	if matcher.Kind.IsAtomic() {
		return AlmostEqual
	}

	switch matcher.Kind {
	case KindReference:
		return coBound(matcher.Elem, t.Elem)
	case KindList:
		return coBound(matcher.Elem, t.Elem)
	case KindSet:
		return coBound(matcher.Elem, t.Elem)
	case KindFunction:
		args := contraBound(matcher.Function.Arguments, t.Function.Arguments)
		ret := coBound(matcher.Function.ReturnType, t.Function.ReturnType)
		return min(args, ret)
	case KindTable:
		k := coBound(matcher.Table.Key, t.Table.Key)
		v := coBound(matcher.Table.Value, t.Table.Value)
		return min(k, v)
	case KindTuple:
		return matchTuple(matcher.Tuple, t.Tuple)
	case KindComposite:
		return tableMatch(matcher.Composite, t.Composite)
	case KindType:
		return coBound(matcher.Inner, t.Inner)
	default:
		return AlmostEqual
	}
}

// matchTuple implements the open question resolution documented in
// DESIGN.md: fixed elements are compared pairwise covariant (arity must
// agree); when both sides declare varargs, the varargs element types are
// folded in as one more covariant comparison; when only one side declares
// varargs, that side's varargs type is ignored for matching purposes (it
// contributes Equal, the fold's neutral element) rather than forcing a
// mismatch, since a tuple without a stated varargs tail still structurally
// accepts being compared against one that does.
func matchTuple(matcher, t *TuplePayload) Match {
	if len(matcher.Elements) != len(t.Elements) {
		return None
	}
	matches := make([]Match, 0, len(matcher.Elements)+1)
	for i := range matcher.Elements {
		matches = append(matches, coBound(matcher.Elements[i], t.Elements[i]))
	}
	if matcher.Varargs != nil && t.Varargs != nil {
		matches = append(matches, coBound(matcher.Varargs, t.Varargs))
	}
	return reduceMatch(matches)
}

// tableMatch implements Composite structural matching: same key set,
// pointwise covariant on values.
func tableMatch(matcher, t map[string]*Type) Match {
	if len(matcher) != len(t) {
		return None
	}
	matches := make([]Match, 0, len(matcher))
	for name, mt := range matcher {
		tt, ok := t[name]
		if !ok {
			return None
		}
		matches = append(matches, coBound(mt, tt))
	}
	return reduceMatch(matches)
}

// coBound matches a covariantly under TypeBound semantics: try a.Match(b);
// if Unknown, fall back to converse(b.Match(a)).
func coBound(a, b *Type) Match {
	m := a.Match(b)
	if m == Unknown {
		return Converse(b.Match(a))
	}
	return m
}

// contraBound matches contravariantly: try b.Match(a); if Unknown, fall back
// to converse(a.Match(b)).
func contraBound(a, b *Type) Match {
	m := b.Match(a)
	if m == Unknown {
		return Converse(a.Match(b))
	}
	return m
}

// Matches reports whether match(matcher, t) is a successful match (>= True).
func Matches(matcher, t *Type) bool {
	return matcher.Match(t).Matches()
}

// Compare implements compare(t1, t2) = ord(match(t1,t2)) - ord(match(t2,t1)),
// the ordering relation used for overload specificity.
func Compare(t1, t2 *Type) int {
	return int(t1.Match(t2)) - int(t2.Match(t1))
}

// CommonType returns whichever of a, b is the supertype per Compare. When
// Compare is zero, a is returned if a matches b as Equal, otherwise
// Union(a, b).
func CommonType(a, b *Type) *Type {
	c := Compare(a, b)
	switch {
	case c == 0 && a.Match(b) == Equal:
		return a
	case c > 0:
		return a
	case c < 0:
		return b
	default:
		return NewUnion(a, b)
	}
}

// MoreSpecific reports whether c1 is strictly more specific than c2 under the
// per-parameter ordering used for overload ranking: every
// parameter of c1 must be <= the corresponding parameter of c2, and at least
// one must be strictly <.
func MoreSpecific(c1, c2 []*Type) bool {
	if len(c1) != len(c2) {
		return false
	}
	strict := false
	for i := range c1 {
		cmp := Compare(c1[i], c2[i])
		if cmp > 0 {
			return false
		}
		if cmp < 0 {
			strict = true
		}
	}
	return strict
}
