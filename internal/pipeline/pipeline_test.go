package pipeline_test

import (
	"testing"

	"github.com/catena-lang/catena/internal/analyzer"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/lexer"
	"github.com/catena-lang/catena/internal/parser"
	"github.com/catena-lang/catena/internal/pipeline"
)

func run(source string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = "test.cat"
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.CheckProcessor{},
	).Run(ctx)
}

func TestRunValidModule(t *testing.T) {
	ctx := run(`data Maybe a { Just(a) Nothing }

def orZero : (Maybe Int) -- Int {
  match
    Just { }
    Nothing { 0 }
  end
}`)
	if ctx.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	if ctx.AstRoot == nil {
		t.Fatal("AstRoot not set")
	}
	if ctx.RunID == "" {
		t.Error("RunID not assigned")
	}
}

func TestRunStagesStopContributingAfterFailure(t *testing.T) {
	// The parse error must not be followed by type-checker noise about
	// the half-built definition.
	ctx := run(`def broken : a -- a { ???`)
	if !ctx.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	for _, err := range ctx.Errors {
		if err.Code[0] == 'T' {
			t.Errorf("type checker ran on a broken module: %v", err)
		}
	}
}

func TestRunLexerDiagnostics(t *testing.T) {
	ctx := run(`def f : -- { @ }`)
	if !ctx.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	first := ctx.Errors[0]
	if first.Code != diagnostics.ErrL001 {
		t.Errorf("code = %s, want %s", first.Code, diagnostics.ErrL001)
	}
	if first.File != "test.cat" {
		t.Errorf("File = %q, want test.cat", first.File)
	}
}

func TestRunTypeDiagnosticsCarryPosition(t *testing.T) {
	ctx := run("def f : -- {\n  bogus\n}")
	if !ctx.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	err := ctx.Errors[0]
	if err.Code != diagnostics.ErrT005 {
		t.Fatalf("code = %s, want %s", err.Code, diagnostics.ErrT005)
	}
	if err.Line != 2 || err.Column != 3 {
		t.Errorf("position = %d:%d, want 2:3", err.Line, err.Column)
	}
	if got, want := err.Error(), "test.cat:2:3: [T005] unknown operation: bogus"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
