// Package prelude declares the stack signatures of catena's built-in
// operations. Bodies of built-ins live outside the checker; only their
// signatures matter here, and the inference engine instantiates each one
// freshly at every reference site.
package prelude

import (
	"sort"

	"github.com/samber/lo"

	"github.com/catena-lang/catena/internal/config"
	"github.com/catena-lang/catena/internal/typesystem"
)

var (
	intType = typesystem.TCon{Name: config.IntTypeName}
	a       = typesystem.TVar{Name: "a"}
	b       = typesystem.TVar{Name: "b"}
	c       = typesystem.TVar{Name: "c"}
)

// sig builds a signature from stacks written in source order, deepest
// element first, and reverses them into the internal top-first order.
func sig(pre []typesystem.Type, post []typesystem.Type) typesystem.OpType {
	return typesystem.OpType{
		Pre:  typesystem.ReverseStack(pre),
		Post: typesystem.ReverseStack(post),
	}
}

func stack(ts ...typesystem.Type) []typesystem.Type { return ts }

var builtins = map[string]typesystem.OpType{
	// stack shuffling
	"dup":  sig(stack(a), stack(a, a)),
	"drop": sig(stack(a), stack()),
	"swap": sig(stack(a, b), stack(b, a)),
	"over": sig(stack(a, b), stack(a, b, a)),
	"rot":  sig(stack(a, b, c), stack(b, c, a)),
	"nip":  sig(stack(a, b), stack(b)),
	"tuck": sig(stack(a, b), stack(b, a, b)),

	// integer arithmetic
	"add": sig(stack(intType, intType), stack(intType)),
	"sub": sig(stack(intType, intType), stack(intType)),
	"mul": sig(stack(intType, intType), stack(intType)),
	"div": sig(stack(intType, intType), stack(intType)),
	"mod": sig(stack(intType, intType), stack(intType)),
	"neg": sig(stack(intType), stack(intType)),

	// call runs a quotation that produces one value from nothing
	"call": sig(
		stack(typesystem.TOp{Op: sig(stack(), stack(a))}),
		stack(a),
	),
}

// Get returns the signature of a built-in operation.
func Get(name string) (typesystem.OpType, bool) {
	op, ok := builtins[name]
	return op, ok
}

// Names lists all built-in operation names, sorted.
func Names() []string {
	names := lo.Keys(builtins)
	sort.Strings(names)
	return names
}
