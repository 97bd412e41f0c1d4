// Package diagnostics defines the positioned, coded errors reported by
// every stage of the checking pipeline. The code set is closed: the
// annotation-checking logic in the analyzer depends on these exact
// distinctions, so new kinds must not be added ad hoc.
package diagnostics

import (
	"fmt"

	"github.com/catena-lang/catena/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // duplicate definition
	ErrP003 ErrorCode = "P003" // foreign definition with a body

	// Type checker
	ErrT001 ErrorCode = "T001" // unification failure
	ErrT002 ErrorCode = "T002" // occurs check
	ErrT003 ErrorCode = "T003" // stack length mismatch
	ErrT004 ErrorCode = "T004" // annotation less general than inferred signature
	ErrT005 ErrorCode = "T005" // unknown operation
	ErrT006 ErrorCode = "T006" // unknown constructor
	ErrT007 ErrorCode = "T007" // duplicate constructor
	ErrT008 ErrorCode = "T008" // match arms do not cover the constructor set
)

type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: msg,
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
}
