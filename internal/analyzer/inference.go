// Package analyzer implements catena's type checker: a substitution-based
// unification engine specialized to stack signatures. Every user-defined
// operation's body is inferred by chaining the signatures of its
// operations and the result is checked against the declared annotation.
package analyzer

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/catena-lang/catena/internal/ast"
	"github.com/catena-lang/catena/internal/config"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/prelude"
	"github.com/catena-lang/catena/internal/token"
	"github.com/catena-lang/catena/internal/typesystem"
)

// Inference holds the state for one type-check run. The module and index
// are read-only; the fresh-variable counter is the only mutable state and
// is atomic, so independent definitions could be checked concurrently.
type Inference struct {
	module  *ast.Module
	index   *ModuleIndex
	counter atomic.Int64
}

func NewInference(module *ast.Module, index *ModuleIndex) *Inference {
	return &Inference{module: module, index: index}
}

// Typecheck validates every non-foreign operation definition and returns
// all failures. Definitions are independent of each other, so they are
// scanned in declaration order to keep diagnostics deterministic.
func (inf *Inference) Typecheck() []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError
	for _, name := range inf.module.OpOrder {
		def := inf.module.OpDefs[name]
		if def.Foreign {
			continue
		}
		if err := inf.checkDef(def); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// checkDef infers the body's signature and checks it against the declared
// annotation.
func (inf *Inference) checkDef(def *ast.OpDef) *diagnostics.DiagnosticError {
	inferred, derr := inf.inferSeq(def.Body)
	if derr != nil {
		return derr
	}
	annInst := inf.instantiate(def.Ann)

	// Augment the inferred side so the annotation's extra pass-through
	// slots have something to match.
	inferred = inf.augmentToward(inferred, annInst)
	s, err := typesystem.UnifyOpTypes(inferred, annInst)
	if err != nil {
		return inf.typeErr(err, def.GetToken())
	}

	// The annotation matches only if every binding of one of its own
	// variables is itself a bare variable. A variable forced to a
	// concrete type means the annotation claims more polymorphism than
	// the body has.
	for _, v := range annInst.FreeTypeVariables() {
		bound, ok := s[v.Name]
		if !ok {
			continue
		}
		if _, isVar := bound.(typesystem.TVar); !isVar {
			return diagnostics.NewError(diagnostics.ErrT004, def.GetToken(),
				fmt.Sprintf("inferred signature (%s) conflicts with annotation (%s)", inferred, def.Ann))
		}
	}
	return nil
}

// freshVar mints a globally unique type variable. The lexer rejects
// identifiers starting with '_', so the name cannot alias a user variable.
func (inf *Inference) freshVar() typesystem.TVar {
	n := inf.counter.Add(1)
	return typesystem.TVar{Name: config.GenVarPrefix + strconv.FormatInt(n, 10)}
}

// instantiate replaces every free variable of a signature with a distinct
// fresh variable, so each use site of a polymorphic signature gets
// independent variables.
func (inf *Inference) instantiate(op typesystem.OpType) typesystem.OpType {
	free := op.FreeTypeVariables()
	if len(free) == 0 {
		return op
	}
	s := make(typesystem.Subst, len(free))
	for _, v := range free {
		s[v.Name] = inf.freshVar()
	}
	return op.Apply(s)
}

// augmentToward pads general's pre and post stacks with matched
// pass-through variables until either stack reaches concrete's length.
// The same variable goes on both stacks: the padding element rides through
// the operation unchanged.
func (inf *Inference) augmentToward(general, concrete typesystem.OpType) typesystem.OpType {
	pre := append([]typesystem.Type(nil), general.Pre...)
	post := append([]typesystem.Type(nil), general.Post...)
	for len(pre) < len(concrete.Pre) && len(post) < len(concrete.Post) {
		v := inf.freshVar()
		pre = append(pre, v)
		post = append(post, v)
	}
	return typesystem.OpType{Pre: pre, Post: post}
}

// augmentBoth pads both signatures toward each other so they can be
// unified directly.
func (inf *Inference) augmentBoth(o1, o2 typesystem.OpType) (typesystem.OpType, typesystem.OpType) {
	o1 = inf.augmentToward(o1, o2)
	o2 = inf.augmentToward(o2, o1)
	return o1, o2
}

// chain composes two stack signatures end to end, reconciling differing
// stack depths. The top l elements of o1's output are unified with the
// top l elements of o2's input; whichever side is longer contributes its
// unconsumed tail to the result.
func (inf *Inference) chain(o1, o2 typesystem.OpType) (typesystem.OpType, error) {
	alpha, beta := o1.Pre, o1.Post
	gamma, delta := o2.Pre, o2.Post

	l := min(len(beta), len(gamma))
	s, err := typesystem.UnifyStacks(beta[:l], gamma[:l])
	if err != nil {
		return typesystem.OpType{}, err
	}

	var out typesystem.OpType
	if len(beta) >= len(gamma) {
		// Overflow: o1 leaves more values than o2 consumes; the
		// leftovers ride through beneath o2's outputs.
		out.Pre = append([]typesystem.Type(nil), alpha...)
		out.Post = append(append([]typesystem.Type(nil), delta...), beta[len(gamma):]...)
	} else {
		// Underflow: o2 needs more inputs than o1 produced; the rest
		// must come from below o1's own effect.
		out.Pre = append(append([]typesystem.Type(nil), alpha...), gamma[len(beta):]...)
		out.Post = append([]typesystem.Type(nil), delta...)
	}
	return out.Apply(s), nil
}

// lookupOp resolves a name through prelude built-ins, then data
// constructors, then user-defined annotations. First match wins.
func (inf *Inference) lookupOp(name string) (typesystem.OpType, bool) {
	if op, ok := prelude.Get(name); ok {
		return op, true
	}
	if op, ok := inf.index.ConstrTypes[name]; ok {
		return op, true
	}
	if def, ok := inf.module.OpDefs[name]; ok {
		return def.Ann, true
	}
	return typesystem.OpType{}, false
}

func litType(lit *ast.IntLit) typesystem.OpType {
	return typesystem.OpType{Post: []typesystem.Type{typesystem.TCon{Name: config.IntTypeName}}}
}

// destructor swaps a constructor signature's stacks: it consumes the
// constructed value and produces the constructor's fields.
func destructor(constr typesystem.OpType) typesystem.OpType {
	return typesystem.OpType{Pre: constr.Post, Post: constr.Pre}
}

func (inf *Inference) inferOp(op ast.Op) (typesystem.OpType, *diagnostics.DiagnosticError) {
	switch op := op.(type) {
	case *ast.IntLit:
		return litType(op), nil
	case *ast.NameRef:
		resolved, ok := inf.lookupOp(op.Name)
		if !ok {
			return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrT005, op.Tok,
				fmt.Sprintf("unknown operation: %s", op.Name))
		}
		return inf.instantiate(resolved), nil
	case *ast.Quote:
		quoted, err := inf.inferSeq(op.Body)
		if err != nil {
			return typesystem.OpType{}, err
		}
		return typesystem.OpType{Post: []typesystem.Type{typesystem.TOp{Op: quoted}}}, nil
	case *ast.Match:
		return inf.inferMatch(op)
	default:
		return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrP001, op.GetToken(),
			fmt.Sprintf("unhandled operation node %T", op))
	}
}

func (inf *Inference) inferMatch(m *ast.Match) (typesystem.OpType, *diagnostics.DiagnosticError) {
	head := m.Arms[0]
	matched, ok := inf.index.ConstrData[head.Constr]
	if !ok {
		return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrT006, m.Tok,
			fmt.Sprintf("unknown constructor: %s", head.Constr))
	}
	for _, arm := range m.Arms {
		if _, ok := inf.index.ConstrData[arm.Constr]; !ok {
			return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrT006, arm.Tok,
				fmt.Sprintf("unknown constructor: %s", arm.Constr))
		}
	}

	// The arms must cover the matched type's constructor set exactly.
	covered := lo.Uniq(lo.Map(m.Arms, func(a *ast.MatchArm, _ int) string { return a.Constr }))
	if len(covered) != len(matched.ConstrOrder) || !lo.Every(matched.ConstrOrder, covered) {
		return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrT008, m.Tok,
			fmt.Sprintf("match arms do not cover the constructors of %s exactly", matched.Name))
	}

	// All arms must agree on one signature, accumulated left to right
	// starting from the head arm.
	headOT, derr := inf.inferArm(head)
	if derr != nil {
		return typesystem.OpType{}, derr
	}
	for _, arm := range m.Arms[1:] {
		armOT, derr := inf.inferArm(arm)
		if derr != nil {
			return typesystem.OpType{}, derr
		}
		headOT, armOT = inf.augmentBoth(headOT, armOT)
		s, err := typesystem.UnifyOpTypes(headOT, armOT)
		if err != nil {
			return typesystem.OpType{}, inf.typeErr(err, m.Tok)
		}
		headOT = headOT.Apply(s)
	}
	return headOT, nil
}

// inferArm chains the constructor's instantiated destructor with the arm
// body, yielding the arm's value-in, result-out signature.
func (inf *Inference) inferArm(arm *ast.MatchArm) (typesystem.OpType, *diagnostics.DiagnosticError) {
	constrOT, ok := inf.index.ConstrTypes[arm.Constr]
	if !ok {
		return typesystem.OpType{}, diagnostics.NewError(diagnostics.ErrT006, arm.Tok,
			fmt.Sprintf("unknown constructor: %s", arm.Constr))
	}
	bodyOT, derr := inf.inferSeq(arm.Body)
	if derr != nil {
		return typesystem.OpType{}, derr
	}
	instDestr := inf.instantiate(destructor(constrOT))
	out, err := inf.chain(instDestr, bodyOT)
	if err != nil {
		return typesystem.OpType{}, inf.typeErr(err, arm.Tok)
	}
	return out, nil
}

// inferSeq folds chain over an operation body, starting from the empty
// signature.
func (inf *Inference) inferSeq(ops []ast.Op) (typesystem.OpType, *diagnostics.DiagnosticError) {
	acc := typesystem.EmptyOpType()
	for _, op := range ops {
		t, derr := inf.inferOp(op)
		if derr != nil {
			return typesystem.OpType{}, derr
		}
		chained, err := inf.chain(acc, t)
		if err != nil {
			return typesystem.OpType{}, inf.typeErr(err, op.GetToken())
		}
		acc = chained
	}
	return acc, nil
}

// typeErr maps a typesystem error to its diagnostic code.
func (inf *Inference) typeErr(err error, tok token.Token) *diagnostics.DiagnosticError {
	var occurs *typesystem.OccursCheckError
	var length *typesystem.StackLengthError
	switch {
	case errors.As(err, &occurs):
		return diagnostics.NewError(diagnostics.ErrT002, tok, err.Error())
	case errors.As(err, &length):
		return diagnostics.NewError(diagnostics.ErrT003, tok, err.Error())
	default:
		return diagnostics.NewError(diagnostics.ErrT001, tok, err.Error())
	}
}
