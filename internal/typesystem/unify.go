package typesystem

// Unify attempts to find the most general substitution that makes t1 and t2
// equal. It enforces strict structural equality (invariant).
func Unify(t1, t2 Type) (Subst, error) {
	if c1, ok := t1.(TCon); ok {
		if c2, ok := t2.(TCon); ok && c1.Name == c2.Name {
			return Subst{}, nil
		}
	}
	if v1, ok := t1.(TVar); ok {
		// Identical variables need no binding; binding a variable to
		// itself would be a spurious self-reference.
		if v2, ok := t2.(TVar); ok && v1.Name == v2.Name {
			return Subst{}, nil
		}
		return Bind(v1, t2)
	}
	if v2, ok := t2.(TVar); ok {
		return Bind(v2, t1)
	}
	if a1, ok := t1.(TApp); ok {
		if a2, ok := t2.(TApp); ok {
			s1, err := Unify(a1.Fn, a2.Fn)
			if err != nil {
				return nil, err
			}
			s2, err := Unify(a1.Arg.Apply(s1), a2.Arg.Apply(s1))
			if err != nil {
				return nil, err
			}
			return s1.Compose(s2), nil
		}
	}
	if o1, ok := t1.(TOp); ok {
		if o2, ok := t2.(TOp); ok {
			return UnifyOpTypes(o1.Op, o2.Op)
		}
	}
	return nil, &UnificationError{T1: t1, T2: t2}
}

// Bind binds a type variable to a type, performing the occurs check.
func Bind(tv TVar, t Type) (Subst, error) {
	if OccursCheck(tv, t) {
		return nil, &OccursCheckError{Name: tv.Name}
	}
	return Subst{tv.Name: t}, nil
}

// OccursCheck returns true if tv appears free in t.
func OccursCheck(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.Name == tv.Name {
			return true
		}
	}
	return false
}

// UnifyStacks unifies two stacks pairwise, left to right. Each accumulated
// binding is applied before the next pair is compared, so later elements
// see earlier bindings.
func UnifyStacks(s1, s2 []Type) (Subst, error) {
	if len(s1) != len(s2) {
		return nil, &StackLengthError{Len1: len(s1), Len2: len(s2)}
	}
	s := Subst{}
	for i := range s1 {
		ss, err := Unify(s1[i].Apply(s), s2[i].Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(ss)
	}
	return s, nil
}

// UnifyOpTypes unifies two stack signatures: pre stacks first, then the
// post stacks under the resulting substitution. Inputs are known before
// outputs are computed, so this order mirrors data flow.
func UnifyOpTypes(o1, o2 OpType) (Subst, error) {
	s1, err := UnifyStacks(o1.Pre, o2.Pre)
	if err != nil {
		return nil, err
	}
	s2, err := UnifyStacks(ApplyStack(o1.Post, s1), ApplyStack(o2.Post, s1))
	if err != nil {
		return nil, err
	}
	return s1.Compose(s2), nil
}
