// Package dispatch ranks overload candidates by argument type: given a call
// site's runtime (or statically-known) argument types and a set of
// candidate parameter-type signatures, it eliminates candidates that don't
// structurally accept the
// arguments and picks the most specific survivor, the same partial order
// internal/ptype already defines for subtyping (ptype.MoreSpecific). The
// compiler calls Eliminate, which drops only provably-incompatible
// candidates ahead of time; internal/coreeval calls Select to choose among
// whatever is left at the call.
package dispatch

import "github.com/cwbudde/corelang/internal/ptype"

// Candidate is the minimal shape Select needs: a parameter-type signature.
// Callers (compiler, coreeval) keep whatever body/closure data they need
// alongside it and index back into their own slice with the returned index.
type Candidate struct {
	ArgTypes []*ptype.Type
}

// NoMatchError reports that no candidate's declared parameter types accept
// argTypes.
type NoMatchError struct {
	ArgTypes []*ptype.Type
}

func (e *NoMatchError) Error() string { return "dispatch: no candidate accepts the given argument types" }

// AmbiguousError reports that two or more surviving candidates have
// incomparable specificity.
type AmbiguousError struct {
	Indices []int
}

func (e *AmbiguousError) Error() string { return "dispatch: ambiguous overload, specificity is incomparable" }

// Select picks the winning candidate: each candidate's per-argument
// covariant bound matches are reduced by min into one TypeMatch score; a
// candidate with any None or non-matching score is eliminated; survivors are
// ranked by score (higher is better). Score ties fall to the specificity
// partial order (ptype.MoreSpecific): a strictly more specific candidate
// wins, identical signatures go to the first declared, and incomparable
// signatures are a dispatch failure. Arity mismatches are non-matches, not
// errors. It returns the winning index into candidates.
func Select(candidates []Candidate, argTypes []*ptype.Type) (int, error) {
	type ranked struct {
		idx   int
		score ptype.Match
	}
	survivors := make([]ranked, 0, len(candidates))
	for i, c := range candidates {
		if m, ok := score(c.ArgTypes, argTypes); ok {
			survivors = append(survivors, ranked{idx: i, score: m})
		}
	}
	if len(survivors) == 0 {
		return -1, &NoMatchError{ArgTypes: argTypes}
	}

	top := survivors[0].score
	for _, s := range survivors[1:] {
		if s.score > top {
			top = s.score
		}
	}
	tied := survivors[:0]
	for _, s := range survivors {
		if s.score == top {
			tied = append(tied, s)
		}
	}

	winner := tied[0].idx
	ambiguous := []int(nil)
	for _, s := range tied[1:] {
		switch {
		case ptype.MoreSpecific(candidates[s.idx].ArgTypes, candidates[winner].ArgTypes):
			winner = s.idx
			ambiguous = nil
		case ptype.MoreSpecific(candidates[winner].ArgTypes, candidates[s.idx].ArgTypes):
			// winner stands
		case sameSignature(candidates[winner].ArgTypes, candidates[s.idx].ArgTypes):
			// true tie: first declared wins
		default:
			ambiguous = append(ambiguous, s.idx)
		}
	}
	if ambiguous != nil {
		return -1, &AmbiguousError{Indices: append([]int{winner}, ambiguous...)}
	}
	return winner, nil
}

// score reduces per-argument covariant matches by min (ptype.ReduceMatch);
// the boolean reports whether the candidate survives (score >= True with no
// None short-circuit).
func score(declared, argTypes []*ptype.Type) (ptype.Match, bool) {
	if len(declared) != len(argTypes) {
		return ptype.None, false
	}
	ms := make([]ptype.Match, len(declared))
	for i, d := range declared {
		ms[i] = ptype.MatchBound(ptype.NewTypeBound(d, ptype.Covariant), argTypes[i])
	}
	m := ptype.ReduceMatch(ms)
	return m, m.Matches()
}

func sameSignature(a, b []*ptype.Type) bool {
	for i := range a {
		if ptype.Compare(a[i], b[i]) != 0 {
			return false
		}
	}
	return true
}

// Eliminate narrows candidates to those that still could accept argTypes,
// returning their original indices. Used by the compiler to shrink a
// Dispatch node's candidate list ahead of time. Where Select demands a
// positive match against concrete runtime types, Eliminate only removes a
// candidate on proven incompatibility (a None score on some argument):
// a static argument type may be a typeclass like Any, which matches no
// concrete parameter type positively yet rules nothing out.
func Eliminate(candidates []Candidate, argTypes []*ptype.Type) []int {
	out := make([]int, 0, len(candidates))
	for i, c := range candidates {
		if !provablyIncompatible(c.ArgTypes, argTypes) {
			out = append(out, i)
		}
	}
	return out
}

func provablyIncompatible(declared, argTypes []*ptype.Type) bool {
	if len(declared) != len(argTypes) {
		return true
	}
	for i, d := range declared {
		if ptype.MatchBound(ptype.NewTypeBound(d, ptype.Covariant), argTypes[i]) == ptype.None {
			return true
		}
	}
	return false
}
