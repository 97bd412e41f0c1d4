package lexer

import (
	"fmt"

	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/pipeline"
	"github.com/catena-lang/catena/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	toks := New(ctx.Source).Tokens()

	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.ErrL001, tok, fmt.Sprintf("illegal character %q", tok.Lexeme))
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
	}

	ctx.TokenStream = toks
	return ctx
}
