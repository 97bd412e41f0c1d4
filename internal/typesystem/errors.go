package typesystem

import "fmt"

// UnificationError indicates two types cannot be made structurally equal.
type UnificationError struct {
	T1 Type
	T2 Type
}

func (e *UnificationError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.T1, e.T2)
}

// OccursCheckError indicates a type variable would have to unify with a
// type containing itself, which would construct an infinite type.
type OccursCheckError struct {
	Name string
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in its own binding", e.Name)
}

// StackLengthError indicates two stacks being unified have different
// lengths.
type StackLengthError struct {
	Len1 int
	Len2 int
}

func (e *StackLengthError) Error() string {
	return fmt.Sprintf("stack length mismatch: %d vs %d", e.Len1, e.Len2)
}
