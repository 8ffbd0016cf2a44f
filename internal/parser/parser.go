// Package parser implements Parser-1: a hand-written recursive-descent
// reader that turns a token stream into a concrete syntax tree. It
// never recovers from a syntax error — the first one is fatal — so
// internal errors are raised as panics of *ParseError and turned into
// a returned error at the package boundary, the same shape lexer.Stream
// uses for Expect failures.
package parser

import (
	"fmt"

	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/lexer"
	"github.com/beatlang/beatc/internal/token"
)

// ParseError is panicked by the parser on any unexpected leading
// token it cannot recover from.
type ParseError struct {
	Tok     token.Token
	Context string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s (%s) at %s", e.Tok.Kind, e.Context, e.Tok.Span)
}

// Parser drives Parser-1 over a token stream.
type Parser struct {
	s    *lexer.Stream
	line int
}

// New creates a Parser over s.
func New(s *lexer.Stream) *Parser {
	return &Parser{s: s, line: 1}
}

// Parse runs the statement driver loop to completion, returning the
// CST or the first fatal error encountered.
func Parse(s *lexer.Stream) (stmts []ast.Statement, err *diagnostics.CompileError) {
	p := New(s)
	defer func() {
		if r := recover(); r != nil {
			err = toCompileError(r)
		}
	}()
	stmts = p.parseProgram()
	return stmts, nil
}

func toCompileError(r interface{}) *diagnostics.CompileError {
	switch e := r.(type) {
	case *lexer.StreamError:
		return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrP001, e.Got.Span, e.Want, e.Got.Kind)
	case *ParseError:
		return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrP002, e.Tok.Span, e.Tok.Kind)
	default:
		panic(r)
	}
}

func (p *Parser) parseProgram() []ast.Statement {
	var stmts []ast.Statement
	for {
		tok := p.s.Peek()
		switch tok.Kind {
		case token.Newline:
			p.s.Next()
			p.line++
		case token.BehaviourStart:
			sep := p.s.Next().Span
			beh := p.parseBehaviour()
			stmts = append(stmts, ast.Statement{Line: p.line, Expr: nil, SepSpan: sep, Behaviour: beh})
		case token.Identifier, token.ParenLeft:
			expr := p.parseExpr()
			sep := p.s.Expect(token.BehaviourStart)
			beh := p.parseBehaviour()
			stmts = append(stmts, ast.Statement{Line: p.line, Expr: expr, SepSpan: sep, Behaviour: beh})
		case token.EOF:
			return stmts
		default:
			panic(&ParseError{Tok: tok, Context: "statement"})
		}
	}
}
