package parser

import (
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/pipeline"
	"github.com/catena-lang/catena/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream)
	ctx.AstRoot = parser.ParseModule()
	ctx.Errors = append(ctx.Errors, parser.Errors()...)

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
