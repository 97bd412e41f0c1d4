package pipeline

import (
	"github.com/google/uuid"

	"github.com/catena-lang/catena/internal/ast"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/token"
)

// Processor is one stage of the checking pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is the state threaded through the pipeline stages.
type PipelineContext struct {
	// RunID correlates all diagnostics of one pipeline run.
	RunID    string
	FilePath string
	Source   string

	TokenStream []token.Token
	AstRoot     *ast.Module

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		RunID:  uuid.NewString(),
		Source: source,
	}
}

// HasErrors reports whether any stage produced a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
