package analyzer

import (
	"fmt"

	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/symbols"
	"github.com/beatlang/beatc/internal/token"
)

// opCursor consumes an op-chain left to right as the zipper walks the
// operand tree in postorder.
type opCursor struct {
	ops []ast.Op
	idx int
}

func (c *opCursor) pop() (ast.Op, bool) {
	if c.idx >= len(c.ops) {
		return ast.Op{}, false
	}
	op := c.ops[c.idx]
	c.idx++
	return op, true
}

func (c *opCursor) remaining() int {
	return len(c.ops) - c.idx
}

// zip reunites an operand expression tree with an op-chain: the
// operand tree says where arguments are, the op-chain says which
// function to apply at each internal node. Every BinOp/UnOp consumes
// exactly one op; the chain must be fully consumed at the end.
func zip(expr ast.Expr, ops []ast.Op, in *symbols.Interner, src string, span token.Span) (decorated.Expr, *diagnostics.CompileError) {
	cursor := &opCursor{ops: ops}
	out, err := zipExpr(expr, cursor, in, src)
	if err != nil {
		return nil, err
	}
	if left := cursor.remaining(); left != 0 {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS004, span,
			fmt.Sprintf("%d op(s) left unconsumed after zipping", left))
	}
	return out, nil
}

func zipExpr(expr ast.Expr, cursor *opCursor, in *symbols.Interner, src string) (decorated.Expr, *diagnostics.CompileError) {
	switch e := expr.(type) {
	case *ast.Ident:
		id, err := in.Lookup(e.Name.Slice(src), e.Name)
		if err != nil {
			return nil, err
		}
		return &decorated.IdentExpr{ID: id}, nil

	case *ast.Paren:
		return zipExpr(e.Inner, cursor, in, src)

	case *ast.UnOp:
		arg, err := zipExpr(e.Inner, cursor, in, src)
		if err != nil {
			return nil, err
		}
		op, ok := cursor.pop()
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS004, e.Op, "no op left to consume for unary application")
		}
		fn, err := in.Lookup(op.Name.Slice(src), op.Name)
		if err != nil {
			return nil, err
		}
		return &decorated.CallExpr{Func: fn, Arg1: arg}, nil

	case *ast.BinOp:
		lhs, err := zipExpr(e.LHS, cursor, in, src)
		if err != nil {
			return nil, err
		}
		rhs, err := zipExpr(e.RHS, cursor, in, src)
		if err != nil {
			return nil, err
		}
		op, ok := cursor.pop()
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS004, e.Op, "no op left to consume for binary application")
		}
		fn, err := in.Lookup(op.Name.Slice(src), op.Name)
		if err != nil {
			return nil, err
		}
		return &decorated.CallExpr{Func: fn, Arg1: lhs, Arg2: rhs}, nil

	default:
		panic(fmt.Sprintf("analyzer: unhandled expr type %T", expr))
	}
}
