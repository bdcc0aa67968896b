package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/corelang/internal/ptype"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "compile error with context",
			err:  NewCompileError("unresolved identifier x", "(x + 1)"),
			want: []string{"compile error", "unresolved identifier x", "(x + 1)"},
		},
		{
			name: "compile error without context",
			err:  NewCompileError("bad program", ""),
			want: []string{"compile error: bad program"},
		},
		{
			name: "no overload found",
			err:  NewNoOverloadFoundError("foo", []*ptype.Type{ptype.IntegerT, ptype.FloatT}, "top"),
			want: []string{`"foo"`, "Integer", "Float", "scope top"},
		},
		{
			name: "type mismatch",
			err:  NewTypeMismatchError(ptype.BooleanT, ptype.IntegerT),
			want: []string{"expected Boolean", "got Integer"},
		},
		{
			name: "domain error",
			err:  NewDomainError("integer division", "division by zero"),
			want: []string{"integer division", "division by zero"},
		},
		{
			name: "unhandled effect",
			err:  NewUnhandledEffect("42"),
			want: []string{"unhandled effect", "42"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, frag := range tt.want {
				if !strings.Contains(msg, frag) {
					t.Errorf("%q does not contain %q", msg, frag)
				}
			}
		})
	}
}
