package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all value types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable (e.g. 'a', 'b', '_gen_3').
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	if replacement, ok := s[t.Name]; ok {
		return replacement
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a nullary type constant/constructor (e.g. Int, Bool).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Apply(Subst) Type { return t }

func (t TCon) FreeTypeVariables() []TVar {
	return nil
}

// TApp represents a type application (e.g. List Int). Applications are
// binary and left-associated: Map k v is TApp{TApp{Map, k}, v}.
type TApp struct {
	Fn  Type
	Arg Type
}

func (t TApp) String() string {
	return fmt.Sprintf("(%s %s)", t.Fn, t.Arg)
}

func (t TApp) Apply(s Subst) Type {
	return TApp{Fn: t.Fn.Apply(s), Arg: t.Arg.Apply(s)}
}

func (t TApp) FreeTypeVariables() []TVar {
	return uniqueTVars(append(t.Fn.FreeTypeVariables(), t.Arg.FreeTypeVariables()...))
}

// MakeApp left-folds a head type over its arguments.
func MakeApp(head Type, args ...Type) Type {
	t := head
	for _, arg := range args {
		t = TApp{Fn: t, Arg: arg}
	}
	return t
}

// TOp is the type of a quoted operation: a first-class value whose type is
// itself a stack signature.
type TOp struct {
	Op OpType
}

func (t TOp) String() string {
	return fmt.Sprintf("[ %s ]", t.Op)
}

func (t TOp) Apply(s Subst) Type {
	return TOp{Op: t.Op.Apply(s)}
}

func (t TOp) FreeTypeVariables() []TVar {
	return t.Op.FreeTypeVariables()
}

// OpType is the stack signature of an operation: it consumes a stack whose
// top elements match Pre and leaves a stack whose top elements match Post.
// Index 0 is the top of the stack; higher indices lie deeper. Source
// signatures are written the other way around (rightmost type on top), so
// the parser and String reverse at the boundary.
type OpType struct {
	Pre  []Type
	Post []Type
}

func EmptyOpType() OpType {
	return OpType{}
}

func (o OpType) String() string {
	parts := make([]string, 0, len(o.Pre)+len(o.Post)+1)
	for i := len(o.Pre) - 1; i >= 0; i-- {
		parts = append(parts, o.Pre[i].String())
	}
	parts = append(parts, "--")
	for i := len(o.Post) - 1; i >= 0; i-- {
		parts = append(parts, o.Post[i].String())
	}
	return strings.Join(parts, " ")
}

func (o OpType) Apply(s Subst) OpType {
	return OpType{Pre: ApplyStack(o.Pre, s), Post: ApplyStack(o.Post, s)}
}

func (o OpType) FreeTypeVariables() []TVar {
	return uniqueTVars(append(FreeStackVariables(o.Pre), FreeStackVariables(o.Post)...))
}

// ReverseStack converts a stack between source order (deepest first, as
// written in a signature) and internal order (top first). It returns a new
// slice.
func ReverseStack(stack []Type) []Type {
	if stack == nil {
		return nil
	}
	out := make([]Type, len(stack))
	for i, t := range stack {
		out[len(stack)-1-i] = t
	}
	return out
}

// ApplyStack applies a substitution to each element of a stack.
func ApplyStack(stack []Type, s Subst) []Type {
	if stack == nil {
		return nil
	}
	out := make([]Type, len(stack))
	for i, t := range stack {
		out[i] = t.Apply(s)
	}
	return out
}

// FreeStackVariables collects the free type variables of a stack in
// first-occurrence order.
func FreeStackVariables(stack []Type) []TVar {
	var vars []TVar
	for _, t := range stack {
		vars = append(vars, t.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Subst is a mapping from type variable names to types.
type Subst map[string]Type

// Compose combines two substitutions so that applying the result equals
// applying s1 and then s2: s2 is applied to every right-hand side of s1,
// then s2's own bindings are unioned in (s2 wins on key collision).
func (s1 Subst) Compose(s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	for k, v := range s2 {
		out[k] = v
	}
	return out
}

func uniqueTVars(vars []TVar) []TVar {
	if len(vars) == 0 {
		return nil
	}
	unique := make([]TVar, 0, len(vars))
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}
