package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sanity-io/litter"

	"github.com/catena-lang/catena/internal/analyzer"
	"github.com/catena-lang/catena/internal/config"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/lexer"
	"github.com/catena-lang/catena/internal/parser"
	"github.com/catena-lang/catena/internal/pipeline"
	"github.com/catena-lang/catena/internal/project"
)

// Version can be set at build time using: -ldflags "-X main.Version=..."
var Version = "dev"

const (
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		handleCheck(os.Args[2:])
	case "dump":
		handleDump(os.Args[2:])
	case "version":
		fmt.Printf("catena %s\n", Version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  check <file|dir> [-v]   type-check a source file or a project directory\n")
	fmt.Fprintf(os.Stderr, "  dump <file>             parse a source file and dump its AST\n")
	fmt.Fprintf(os.Stderr, "  version                 print the version\n")
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func handleCheck(args []string) {
	verbose := false
	var paths []string
	for _, arg := range args {
		if arg == "-v" {
			verbose = true
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s check <file|dir> [-v]\n", os.Args[0])
		os.Exit(1)
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if info.IsDir() {
			cfg, err := project.Load(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			files = append(files, cfg.Files...)
		} else {
			files = append(files, path)
		}
	}

	hasErrors := false
	for _, file := range files {
		if !isSourceFile(file) {
			fmt.Fprintf(os.Stderr, "Warning: %s is not a catena source file, skipping\n", file)
			continue
		}
		ctx, err := runPipeline(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("%s: run %s\n", file, ctx.RunID)
		}
		if ctx.HasErrors() {
			hasErrors = true
			printErrors(ctx.Errors)
		} else if verbose {
			fmt.Printf("%s: ok\n", file)
		}
	}

	if hasErrors {
		os.Exit(1)
	}
}

func handleDump(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s dump <file>\n", os.Args[0])
		os.Exit(1)
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = args[0]
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.HasErrors() {
		printErrors(ctx.Errors)
		os.Exit(1)
	}
	litter.Dump(ctx.AstRoot)
}

func runPipeline(file string) (*pipeline.PipelineContext, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = file
	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.CheckProcessor{},
	)
	return processingPipeline.Run(ctx), nil
}

func printErrors(errs []*diagnostics.DiagnosticError) {
	colored := isatty.IsTerminal(os.Stderr.Fd())
	for _, err := range errs {
		if colored {
			fmt.Fprintf(os.Stderr, "- %s%s%s\n", colorRed, err.Error(), colorReset)
		} else {
			fmt.Fprintf(os.Stderr, "- %s\n", err.Error())
		}
	}
}
