package instr

import (
	"strings"
	"testing"

	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/value"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestPrinterSnapshot(t *testing.T) {
	tree := NewSequence(
		NewVariableSet(0, NewConstant(value.Int(0)).WithType(ptype.IntegerT)).WithType(ptype.IntegerT),
		NewWhile(
			NewBinaryArith(CmpLtInt,
				NewVariableGet(0).WithType(ptype.IntegerT),
				NewConstant(value.Int(5)).WithType(ptype.IntegerT)).WithType(ptype.BooleanT),
			NewVariableSet(0,
				NewBinaryArith(AddInt,
					NewVariableGet(0).WithType(ptype.IntegerT),
					NewConstant(value.Int(1)).WithType(ptype.IntegerT)).WithType(ptype.IntegerT)).WithType(ptype.IntegerT),
		).WithType(ptype.NoneT),
		NewIf(
			NewConstant(value.Bool(true)).WithType(ptype.BooleanT),
			NewEmitEffect(NewConstant(value.Int(1)).WithType(ptype.IntegerT)).WithType(ptype.NoneT),
			nil,
		).WithType(ptype.NoneT),
	).WithType(ptype.NoneT)

	snaps.MatchSnapshot(t, PrintToString(Lower(tree)))
}

func TestPrinterMarksRecursiveCandidates(t *testing.T) {
	out := PrintToString(Lower(selfRecursiveDispatch()))
	if !strings.Contains(out, "-> #0") {
		t.Errorf("recursive candidate not marked as a back reference:\n%s", out)
	}
	if strings.Count(out, "Dispatch") < 2 {
		t.Errorf("expected nested dispatch in output:\n%s", out)
	}
}
