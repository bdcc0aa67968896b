package dispatch

import (
	"testing"

	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPrefersMoreSpecificCandidate(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.AnyT}},
		{ArgTypes: []*ptype.Type{ptype.IntegerT}},
	}
	got, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
	require.NoError(t, err)
	assert.Equal(t, 1, got, "the Integer candidate outranks Any for an Integer argument")
}

func TestSelectEliminatesIncompatible(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.FloatT}},
		{ArgTypes: []*ptype.Type{ptype.AnyT}},
	}
	got, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
	require.NoError(t, err)
	assert.Equal(t, 1, got, "the Float candidate cannot accept an Integer")
}

func TestSelectNoCandidate(t *testing.T) {
	candidates := []Candidate{{ArgTypes: []*ptype.Type{ptype.FloatT}}}
	_, err := Select(candidates, []*ptype.Type{ptype.StringT})
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
}

func TestSelectArityMismatchIsNonMatch(t *testing.T) {
	candidates := []Candidate{{ArgTypes: []*ptype.Type{ptype.IntegerT, ptype.IntegerT}}}
	_, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
}

func TestSelectDeclarationOrderBreaksTrueTies(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.IntegerT}},
		{ArgTypes: []*ptype.Type{ptype.IntegerT}},
	}
	got, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
	require.NoError(t, err)
	assert.Equal(t, 0, got, "identical signatures fall to declaration order")
}

func TestSelectIncomparableSpecificityFails(t *testing.T) {
	// (Integer, Any) vs (Any, Integer): neither dominates the other.
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.IntegerT, ptype.AnyT}},
		{ArgTypes: []*ptype.Type{ptype.AnyT, ptype.IntegerT}},
	}
	_, err := Select(candidates, []*ptype.Type{ptype.IntegerT, ptype.IntegerT})
	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Indices, 2)
}

func TestEliminateKeepsPossibleCandidates(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.IntegerT}},
		{ArgTypes: []*ptype.Type{ptype.FloatT}},
	}

	// A statically Any-typed argument rules nothing out.
	assert.Equal(t, []int{0, 1}, Eliminate(candidates, []*ptype.Type{ptype.AnyT}))

	// A statically Integer-typed argument proves the Float candidate dead.
	assert.Equal(t, []int{0}, Eliminate(candidates, []*ptype.Type{ptype.IntegerT}))

	// Arity mismatch eliminates outright.
	assert.Empty(t, Eliminate(candidates, nil))
}

func TestSelectStability(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []*ptype.Type{ptype.AnyT}},
		{ArgTypes: []*ptype.Type{ptype.IntegerT}},
	}
	first, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Select(candidates, []*ptype.Type{ptype.IntegerT})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
