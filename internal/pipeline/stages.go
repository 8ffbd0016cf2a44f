package pipeline

import (
	"github.com/beatlang/beatc/internal/analyzer"
	"github.com/beatlang/beatc/internal/lexer"
	"github.com/beatlang/beatc/internal/parser"
)

// LexerStage wraps a fresh Lexer/Stream over ctx.Source into
// ctx.Tokens.
type LexerStage struct{}

func (LexerStage) Process(ctx *Context) *Context {
	ctx.Tokens = lexer.NewStream(lexer.New(ctx.Source))
	return ctx
}

// ParserStage runs Parser-1 to completion over ctx.Tokens.
type ParserStage struct{}

func (ParserStage) Process(ctx *Context) *Context {
	stmts, err := parser.Parse(ctx.Tokens)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.CST = stmts
	return ctx
}

// AnalyzerStage runs Parser-2 over ctx.CST.
type AnalyzerStage struct{}

func (AnalyzerStage) Process(ctx *Context) *Context {
	decorated, funcs, _, err := analyzer.Analyze(ctx.CST, ctx.Source)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Decorated = decorated
	ctx.Funcs = funcs
	return ctx
}

// Stages returns the three front-end stages in order. The code
// generator is invoked separately by the driver (cmd/beatc), since it
// needs CLI-only inputs (target triple, PIC, optimization level,
// output path) that have no natural home on a shared Context.
func Stages() []Processor {
	return []Processor{LexerStage{}, ParserStage{}, AnalyzerStage{}}
}
