package analyzer

import (
	"testing"

	"github.com/catena-lang/catena/internal/diagnostics"
)

func TestNewModuleIndex(t *testing.T) {
	mod := parseModule(t, `data Maybe a { Just(a) Nothing }
data Pair a b { MkPair(a, b) }`)

	idx, derr := NewModuleIndex(mod)
	if derr != nil {
		t.Fatal(derr)
	}

	tests := []struct {
		constr string
		data   string
		sig    string
	}{
		{"Just", "Maybe", "a -- (Maybe a)"},
		{"Nothing", "Maybe", "-- (Maybe a)"},
		{"MkPair", "Pair", "a b -- ((Pair a) b)"},
	}
	for _, tt := range tests {
		t.Run(tt.constr, func(t *testing.T) {
			op, ok := idx.ConstrTypes[tt.constr]
			if !ok {
				t.Fatalf("constructor %s not indexed", tt.constr)
			}
			if got := op.String(); got != tt.sig {
				t.Errorf("signature = %q, want %q", got, tt.sig)
			}
			owner, ok := idx.ConstrData[tt.constr]
			if !ok || owner.Name != tt.data {
				t.Errorf("owner = %v, want %s", owner, tt.data)
			}
		})
	}
}

func TestNewModuleIndexRejectsCrossTypeDuplicate(t *testing.T) {
	mod := parseModule(t, `data Maybe a { Just(a) Nothing }
data Option a { Some(a) Nothing }`)

	_, derr := NewModuleIndex(mod)
	if derr == nil {
		t.Fatal("expected a duplicate constructor error")
	}
	if derr.Code != diagnostics.ErrT007 {
		t.Errorf("code = %s, want %s", derr.Code, diagnostics.ErrT007)
	}
}
