package analyzer

import (
	"github.com/catena-lang/catena/internal/pipeline"
)

type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Inference over a broken AST would only produce follow-on noise.
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}

	index, err := NewModuleIndex(ctx.AstRoot)
	if err != nil {
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	inf := NewInference(ctx.AstRoot, index)
	for _, err := range inf.Typecheck() {
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
