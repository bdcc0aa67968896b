package ptype

// Variance describes how a TypeBound's declared type relates to candidate
// types during matching.
type Variance int

const (
	Covariant Variance = iota
	Contravariant
	Invariant
	// Ultravariant is reserved with no defined semantics; its enum value is
	// never produced by this package's constructors, and MatchBound treats
	// it as Invariant.
	Ultravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "Covariant"
	case Contravariant:
		return "Contravariant"
	case Invariant:
		return "Invariant"
	case Ultravariant:
		return "Ultravariant"
	default:
		return "UNKNOWN"
	}
}

// TypeBound pairs a type with the variance under which it should be matched
// against candidates.
type TypeBound struct {
	Type     *Type
	Variance Variance
}

// NewTypeBound constructs a TypeBound.
func NewTypeBound(t *Type, variance Variance) TypeBound {
	return TypeBound{Type: t, Variance: variance}
}

// MatchBound matches t against b's type under b's variance.
func MatchBound(b TypeBound, t *Type) Match {
	switch b.Variance {
	case Covariant:
		return coBound(b.Type, t)
	case Contravariant:
		return contraBound(b.Type, t)
	case Invariant, Ultravariant:
		m := b.Type.Match(t)
		if m == Unknown {
			alt := t.Match(b.Type)
			if alt > m {
				return alt
			}
		}
		return m
	default:
		return Unknown
	}
}

// MatchesBound reports whether MatchBound(b, t) is a successful match.
func MatchesBound(b TypeBound, t *Type) bool {
	return MatchBound(b, t).Matches()
}
