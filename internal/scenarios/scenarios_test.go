package scenarios

import (
	"testing"

	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/value"
)

func TestSmokeScenarios(t *testing.T) {
	for _, s := range All {
		t.Run(s.Name, func(t *testing.T) {
			got, err := s.Run()
			if s.WantErr {
				if err == nil {
					t.Fatalf("expected an error, got %s", got)
				}
				if _, ok := err.(*corerr.CompileError); !ok {
					t.Fatalf("err = %v, want CompileError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !value.Equal(got, s.Want) {
				t.Errorf("got %s, want %s", got, s.Want)
			}
		})
	}
}

// Dispatch stability: repeated runs of the overload
// scenarios must keep selecting the same candidate.
func TestDispatchStability(t *testing.T) {
	for _, name := range []string{"specific-overload-wins", "incompatible-overload-eliminated"} {
		s, ok := Lookup(name)
		if !ok {
			t.Fatalf("scenario %s missing", name)
		}
		first, err := s.Run()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i := 0; i < 5; i++ {
			again, err := s.Run()
			if err != nil {
				t.Fatalf("%s rerun: %v", name, err)
			}
			if !value.Equal(first, again) {
				t.Errorf("%s: run %d produced %s, first produced %s", name, i, again, first)
			}
		}
	}
}
