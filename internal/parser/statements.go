package parser

import (
	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/token"
)

// parseBehaviour parses the part of a statement following "//".
func (p *Parser) parseBehaviour() ast.Behaviour {
	tok := p.s.Peek()
	switch tok.Kind {
	case token.StillIn:
		p.s.Next()
		name := p.s.Expect(token.Identifier)
		inner := p.parseBehaviour()
		return &ast.StillIn{Name: name, Inner: inner}
	case token.If:
		p.s.Next()
		flag := p.s.Expect(token.Identifier)
		inner := p.parseBehaviour()
		return &ast.Cond{Flag: flag, Inner: inner}
	case token.Identifier, token.Discard, token.Return, token.Goto:
		target := p.parseTarget()
		p.s.Expect(token.Is)
		value := p.parseAssignValue()
		return &ast.Assign{Target: target, Value: value}
	default:
		panic(&ParseError{Tok: tok, Context: "behaviour"})
	}
}

func (p *Parser) parseTarget() ast.Target {
	tok := p.s.Next()
	switch tok.Kind {
	case token.Identifier:
		return &ast.TargetIdent{Name: tok.Span}
	case token.Discard:
		return &ast.TargetDiscard{Span: tok.Span}
	case token.Return:
		return &ast.TargetReturn{Span: tok.Span}
	case token.Goto:
		return &ast.TargetGoto{Span: tok.Span}
	default:
		panic(&ParseError{Tok: tok, Context: "assignment target"})
	}
}

// parseAssignValue parses the right-hand side of "<target> is ...".
func (p *Parser) parseAssignValue() ast.Value {
	tok := p.s.Peek()
	switch tok.Kind {
	case token.Identifier:
		return &ast.Ops{Chain: p.parseOpChain()}
	case token.With:
		return p.parseFnLiteral()
	case token.Number:
		p.s.Next()
		return &ast.NumberLit{Span: tok.Span, Value: tok.Value}
	case token.NotHere:
		p.s.Next()
		return &ast.NotHere{Span: tok.Span}
	case token.Newline, token.EOF:
		return &ast.Ops{Chain: nil}
	default:
		panic(&ParseError{Tok: tok, Context: "assignment value"})
	}
}

// parseFnLiteral parses "with a [and b] <op-chain>".
func (p *Parser) parseFnLiteral() *ast.FnLiteral {
	p.s.Next() // consume "with"
	p1 := p.s.Expect(token.Identifier)

	var p2 *token.Span
	if p.s.Peek().Kind == token.And {
		p.s.Next()
		span := p.s.Expect(token.Identifier)
		p2 = &span
	}

	return &ast.FnLiteral{Param1: p1, Param2: p2, Chain: p.parseOpChain()}
}

// parseOpChain parses a "then"-separated list of function names.
func (p *Parser) parseOpChain() []ast.Op {
	var ops []ast.Op
	for {
		tok := p.s.Peek()
		switch tok.Kind {
		case token.Newline, token.EOF:
			return ops
		case token.Identifier:
			p.s.Next()
			idSpan := tok.Span

			next := p.s.Peek()
			switch next.Kind {
			case token.Then:
				thenSpan := p.s.Next().Span
				ops = append(ops, ast.Op{Name: idSpan, Then: &thenSpan})
			case token.Newline, token.EOF:
				ops = append(ops, ast.Op{Name: idSpan, Then: nil})
				return ops
			default:
				panic(&ParseError{Tok: next, Context: "op chain"})
			}
		default:
			panic(&ParseError{Tok: tok, Context: "op chain"})
		}
	}
}
