package prelude

import (
	"sort"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dup", "a -- a a"},
		{"drop", "a --"},
		{"swap", "a b -- b a"},
		{"over", "a b -- a b a"},
		{"rot", "a b c -- b c a"},
		{"nip", "a b -- b"},
		{"tuck", "a b -- b a b"},
		{"add", "Int Int -- Int"},
		{"neg", "Int -- Int"},
		{"call", "[ -- a ] -- a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Get(tt.name)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.name)
			}
			if got := op.String(); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("frobnicate"); ok {
		t.Error("Get should not resolve unknown names")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(builtins) {
		t.Fatalf("Names() returned %d names, want %d", len(names), len(builtins))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}
