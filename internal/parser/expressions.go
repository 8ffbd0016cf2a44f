package parser

import (
	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/token"
)

// parseExpr builds the right-leaning operand tree. The single
// operator token "." is disambiguated between unary and binary use by
// one token of lookahead past the "." itself.
func (p *Parser) parseExpr() ast.Expr {
	acc := p.parseAtom()

	for {
		tok := p.s.Peek()
		if tok.Kind != token.Operator {
			return acc
		}
		opSpan := p.s.Next().Span

		next := p.s.Peek()
		switch next.Kind {
		case token.Operator:
			// "a.." — the first "." is unary; keep folding.
			acc = &ast.UnOp{Inner: acc, Op: opSpan}
		case token.ParenRight, token.BehaviourStart:
			// End of expression — the "." is unary.
			return &ast.UnOp{Inner: acc, Op: opSpan}
		default:
			// Binary: the rhs is a full expression, right-leaning.
			rhs := p.parseExpr()
			return &ast.BinOp{LHS: acc, Op: opSpan, RHS: rhs}
		}
	}
}

func (p *Parser) parseAtom() ast.Expr {
	tok := p.s.Peek()
	switch tok.Kind {
	case token.Identifier:
		p.s.Next()
		return &ast.Ident{Name: tok.Span}
	case token.ParenLeft:
		p.s.Next()
		inner := p.parseExpr()
		p.s.Expect(token.ParenRight)
		return &ast.Paren{Inner: inner}
	default:
		panic(&ParseError{Tok: tok, Context: "expression atom"})
	}
}
