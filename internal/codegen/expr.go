package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/token"
)

// lowerExpr lowers one decorated expression into blk, returning the
// SSA value it computes.
func (cg *Codegen) lowerExpr(blk *ir.Block, e decorated.Expr) value.Value {
	switch v := e.(type) {
	case *decorated.IdentExpr:
		return cg.loadIdent(blk, v.ID)

	case *decorated.CallExpr:
		fn, ok := cg.funcVals[v.Func]
		if !ok {
			fail(diagnostics.ErrC001, token.Span{}, fmt.Sprintf("call to undeclared function id %d", v.Func))
		}
		args := []value.Value{cg.lowerExpr(blk, v.Arg1)}
		if v.Arg2 != nil {
			args = append(args, cg.lowerExpr(blk, v.Arg2))
		}
		return blk.NewCall(fn, args...)

	default:
		panic(fmt.Sprintf("codegen: unhandled expr type %T", e))
	}
}

func (cg *Codegen) loadIdent(blk *ir.Block, id decorated.ID) value.Value {
	return blk.NewLoad(types.I64, cg.slot(id))
}
