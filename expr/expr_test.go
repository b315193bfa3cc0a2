package expr

import (
	"testing"

	"github.com/hupe1980/scalargo/types"
)

func TestNewTerm_SortsAndDeduplicates(t *testing.T) {
	term := NewTerm(types.FieldID(1), []int32{30, 10, 20, 10, 30})

	if term.Type != types.Int32 {
		t.Fatalf("expected Int32, got %s", term.Type)
	}
	if len(term.Terms) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(term.Terms))
	}
	for i, want := range []int64{10, 20, 30} {
		if got := term.Terms[i].Int64(); got != want {
			t.Errorf("term %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestNewTerm_Strings(t *testing.T) {
	term := NewTerm(types.FieldID(1), []string{"b", "a", "b"})

	if term.Type != types.String {
		t.Fatalf("expected String, got %s", term.Type)
	}
	if len(term.Terms) != 2 || term.Terms[0].Str() != "a" || term.Terms[1].Str() != "b" {
		t.Fatalf("unexpected terms: %v", term.Terms)
	}
}

func TestUdfArgs(t *testing.T) {
	f := FieldArg(types.FieldID(7), types.Float64)
	if !f.IsField || f.Field != 7 || f.Type != types.Float64 {
		t.Errorf("unexpected field arg: %+v", f)
	}

	l := LiteralArg(types.Int32Value(5))
	if l.IsField || l.Type != types.Int32 || l.Literal.Int64() != 5 {
		t.Errorf("unexpected literal arg: %+v", l)
	}
}
