package analyzer

import (
	"strings"
	"testing"

	"github.com/catena-lang/catena/internal/ast"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/lexer"
	"github.com/catena-lang/catena/internal/parser"
)

func parseModule(t *testing.T, source string) *ast.Module {
	t.Helper()
	p := parser.New(lexer.New(source).Tokens())
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors in test source: %v", errs)
	}
	return mod
}

func check(t *testing.T, source string) []*diagnostics.DiagnosticError {
	t.Helper()
	mod := parseModule(t, source)
	index, derr := NewModuleIndex(mod)
	if derr != nil {
		return []*diagnostics.DiagnosticError{derr}
	}
	return NewInference(mod, index).Typecheck()
}

func TestTypecheckAccepts(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "literals and arithmetic",
			source: `def three : -- Int { 1 2 add }`,
		},
		{
			name:   "polymorphic identity from dup drop",
			source: `def noop : a -- a { dup drop }`,
		},
		{
			name:   "shuffle words",
			source: `def flip : a b -- b a { swap }`,
		},
		{
			name:   "underflow reaches below the inferred stack",
			source: `def inc : Int -- Int { 1 add }`,
		},
		{
			name:   "pass-through slot wider than the body effect",
			source: `def incUnder : a Int -- a Int { 1 add }`,
		},
		{
			name:   "quotation is a first-class value",
			source: `def one : -- [ -- Int ] { [ 1 ] }`,
		},
		{
			name:   "call unquotes a value",
			source: `def two : -- Int { [ 2 ] call }`,
		},
		{
			name: "user operations resolve by annotation",
			source: `def inc : Int -- Int { 1 add }
def twice : Int -- Int { inc inc }`,
		},
		{
			name: "constructor as operation",
			source: `data Maybe a { Just(a) Nothing }
def wrap : Int -- (Maybe Int) { Just }`,
		},
		{
			name: "drop removes the most recent push",
			source: `data A { MkA }
data B { MkB }
def f : -- A { MkA MkB drop }`,
		},
		{
			name:   "nip removes the value under the top",
			source: `def second : a b -- b { nip }`,
		},
		{
			name: "match destructures and arms agree",
			source: `data Maybe a { Just(a) Nothing }
def orZero : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { 0 }
  end
}`,
		},
		{
			name: "match keeps polymorphic fields",
			source: `data Pair a b { MkPair(a, b) }
def first : (Pair a b) -- a {
  match MkPair { drop } end
}`,
		},
		{
			name: "foreign definitions are trusted",
			source: `foreign def print : Int --
def shout : Int -- { print }`,
		},
		{
			name: "recursive definition checks against its own annotation",
			source: `data Nat { Zero Succ(Nat) }
def depth : Nat -- Int {
  match
    Zero { 0 }
    Succ { depth 1 add }
  end
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := check(t, tt.source); len(errs) != 0 {
				t.Errorf("Typecheck() reported errors: %v", errs)
			}
		})
	}
}

func TestTypecheckRejects(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		code    diagnostics.ErrorCode
		message string
	}{
		{
			name:    "unknown operation",
			source:  `def f : -- { bogus }`,
			code:    diagnostics.ErrT005,
			message: "bogus",
		},
		{
			name: "argument type mismatch",
			source: `data Maybe a { Just(a) Nothing }
def f : (Maybe Int) -- Int { neg }`,
			code: diagnostics.ErrT001,
		},
		{
			name:   "annotation deeper than the body effect",
			source: `def f : -- { 1 }`,
			code:   diagnostics.ErrT003,
		},
		{
			name:    "annotation more polymorphic than the body",
			source:  `def f : a -- a { neg }`,
			code:    diagnostics.ErrT004,
			message: "conflicts with annotation",
		},
		{
			name: "drop does not reach past the top",
			source: `data A { MkA }
data B { MkB }
def f : -- B { MkA MkB drop }`,
			code: diagnostics.ErrT001,
		},
		{
			name: "match head names an unknown constructor",
			source: `data Maybe a { Just(a) Nothing }
def f : (Maybe Int) -- Int { match Extra { 0 } end }`,
			code:    diagnostics.ErrT006,
			message: "Extra",
		},
		{
			name: "later arm names an unknown constructor",
			source: `data Maybe a { Just(a) Nothing }
def f : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { 0 }
    Extra { 0 }
  end
}`,
			code:    diagnostics.ErrT006,
			message: "Extra",
		},
		{
			name: "missing constructor arm",
			source: `data Maybe a { Just(a) Nothing }
def f : (Maybe Int) -- Int { match Just { } end }`,
			code:    diagnostics.ErrT008,
			message: "Maybe",
		},
		{
			name: "arms disagree on stack depth",
			source: `data Maybe a { Just(a) Nothing }
def f : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { }
  end
}`,
			code: diagnostics.ErrT003,
		},
		{
			name: "arms disagree on element type",
			source: `data Maybe a { Just(a) Nothing }
data Unit { U }
def f : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { U }
  end
}`,
			code: diagnostics.ErrT001,
		},
		{
			name: "duplicate constructor across data types",
			source: `data Maybe a { Just(a) Nothing }
data Option a { Some(a) Nothing }
def f : -- { }`,
			code:    diagnostics.ErrT007,
			message: "Nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := check(t, tt.source)
			if len(errs) == 0 {
				t.Fatal("Typecheck() accepted an invalid module")
			}
			if errs[0].Code != tt.code {
				t.Fatalf("error code = %s, want %s (message: %s)", errs[0].Code, tt.code, errs[0].Message)
			}
			if tt.message != "" && !strings.Contains(errs[0].Message, tt.message) {
				t.Errorf("message %q does not mention %q", errs[0].Message, tt.message)
			}
		})
	}
}

func TestTypecheckReportsAllDefinitions(t *testing.T) {
	errs := check(t, `def f : -- { bogus }
def g : -- Int { 1 }
def h : -- { alsoBogus }`)
	if len(errs) != 2 {
		t.Fatalf("Typecheck() reported %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Code != diagnostics.ErrT005 || errs[1].Code != diagnostics.ErrT005 {
		t.Errorf("unexpected codes: %s, %s", errs[0].Code, errs[1].Code)
	}
}

func TestInferSeqChaining(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
	}{
		{"empty body", "", "--"},
		{"literal push", "1", "-- Int"},
		{"two pushes then add", "1 2 add", "-- Int"},
		{"underflowing add", "add", "Int Int -- Int"},
		{"overflow keeps leftovers", "1 2", "-- Int Int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parseModule(t, "def probe : -- {\n"+tt.body+"\n}")
			// The probe's annotation is irrelevant; only the body is
			// inferred here.
			index, derr := NewModuleIndex(mod)
			if derr != nil {
				t.Fatal(derr)
			}
			inf := NewInference(mod, index)
			got, err := inf.inferSeq(mod.OpDefs["probe"].Body)
			if err != nil {
				t.Fatalf("inferSeq() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("inferSeq() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestMatchResultType(t *testing.T) {
	mod := parseModule(t, `data Maybe a { Just(a) Nothing }
def orZero : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { 0 }
  end
}`)
	index, derr := NewModuleIndex(mod)
	if derr != nil {
		t.Fatal(derr)
	}
	inf := NewInference(mod, index)
	got, err := inf.inferSeq(mod.OpDefs["orZero"].Body)
	if err != nil {
		t.Fatalf("inferSeq() error: %v", err)
	}
	if got.String() != "(Maybe Int) -- Int" {
		t.Errorf("inferSeq() = %q, want %q", got.String(), "(Maybe Int) -- Int")
	}
}
