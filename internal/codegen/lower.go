package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/token"
)

// lowerStmt lowers one statement into its pre-allocated block
// (cg.cur.blocks[stmt.Src()]), then wires the fallthrough branch to
// the block's natural successor unless the statement already set a
// terminator itself. A Callable statement (FuncBlock/ExternFunction)
// has no pre-allocated block — it pushes itself onto the compile
// queue, or does nothing, before blk would ever be used.
func (cg *Codegen) lowerStmt(stmt decorated.Stmt) {
	blk := cg.cur.blocks[stmt.Src()]

	switch s := stmt.(type) {
	case *decorated.LoadLiteralNumber:
		blk.NewStore(constant.NewInt(types.I64, int64(s.Value)), cg.slot(s.Target))
		cg.literalValues[s.Target] = s.Value

	case *decorated.Assignment:
		val := cg.lowerExpr(blk, s.Value)
		if s.Target != nil {
			blk.NewStore(val, cg.slot(*s.Target))
		}

	case *decorated.ReturnStmt:
		val := cg.lowerExpr(blk, s.Value)
		blk.NewRet(val)
		return

	case *decorated.GotoStmt:
		cg.lowerGoto(blk, s)
		return

	case *decorated.Conditional:
		cg.lowerConditional(blk, s)
		return

	case *decorated.FuncBlock:
		cg.queue = append(cg.queue, s)
		return

	case *decorated.ExternFunction:
		return

	default:
		panic(fmt.Sprintf("codegen: unhandled statement type %T", stmt))
	}

	cg.maybeFallthrough(blk, stmt.Src())
}

// maybeFallthrough branches blk to its line's natural successor, if
// the current function has one. The very last block of a function has
// no successor here; it is closed out later by finalizeTerminators.
func (cg *Codegen) maybeFallthrough(blk *ir.Block, line int) {
	if next, ok := cg.cur.nextBlock(line); ok {
		blk.NewBr(next)
	}
}

// lowerConditional lowers `if flag <inner>`. The false edge is the
// block's natural successor in source order, so a Conditional on the
// last line of its function has no false edge and is reported as a
// codegen error. The "then" block lowers
// Inner directly into itself (passed as an explicit override, not a
// transient retargeting of cg.cur.blocks) and, unless Inner already
// terminated it, rejoins the same false successor once done.
func (cg *Codegen) lowerConditional(blk *ir.Block, c *decorated.Conditional) {
	falseTarget, ok := cg.cur.nextBlock(c.Line)
	if !ok {
		fail(diagnostics.ErrC001, token.Span{}, "conditional on line has no following block to act as its false edge")
	}

	cond := cg.loadIdent(blk, c.Cond)
	thenBlk := cg.cur.fn.NewBlock(fmt.Sprintf("L%d.then", c.Line))

	cg.lowerStmtInto(thenBlk, c.Inner)
	if thenBlk.Term == nil {
		thenBlk.NewBr(falseTarget)
	}

	blk.NewCondBr(cond, thenBlk, falseTarget)
}

// lowerStmtInto lowers stmt into an explicit block rather than its
// own pre-assigned one, for the "then" arm of a Conditional. This is
// the explicit-parameter approach the DESIGN.md Open Question
// decision calls for, as opposed to mutating cg.cur.blocks and
// restoring it afterward.
func (cg *Codegen) lowerStmtInto(blk *ir.Block, stmt decorated.Stmt) {
	switch s := stmt.(type) {
	case *decorated.LoadLiteralNumber:
		blk.NewStore(constant.NewInt(types.I64, int64(s.Value)), cg.slot(s.Target))
		cg.literalValues[s.Target] = s.Value

	case *decorated.Assignment:
		val := cg.lowerExpr(blk, s.Value)
		if s.Target != nil {
			blk.NewStore(val, cg.slot(*s.Target))
		}

	case *decorated.ReturnStmt:
		blk.NewRet(cg.lowerExpr(blk, s.Value))

	case *decorated.GotoStmt:
		cg.lowerGoto(blk, s)

	case *decorated.Conditional:
		cg.lowerConditional(blk, s)

	default:
		panic(fmt.Sprintf("codegen: unhandled nested statement type %T", stmt))
	}
}

// lowerGoto resolves Value (which must be a bare identifier bound to
// a known literal line number) to a block and branches to it — see
// DESIGN.md's "Open Question decisions" for why beatc implements this
// rather than leaving it a no-op.
func (cg *Codegen) lowerGoto(blk *ir.Block, s *decorated.GotoStmt) {
	ident, ok := s.Value.(*decorated.IdentExpr)
	if !ok {
		fail(diagnostics.ErrC001, token.Span{}, "goto target must be a bare identifier")
	}
	line, ok := cg.literalValues[ident.ID]
	if !ok {
		fail(diagnostics.ErrC001, token.Span{}, "goto target is not bound to a known line number")
	}
	target, ok := cg.cur.blocks[int(line)]
	if !ok {
		fail(diagnostics.ErrC001, token.Span{}, fmt.Sprintf("goto target line %d has no block", line))
	}
	blk.NewBr(target)
}

// slot returns the stack slot backing id, allocating it in the
// current function's entry block on first reference. Because a slot
// is only ever requested right before the instruction that uses it,
// appending the alloca at
// the end of the entry block's instruction list already places it
// before that use — a front-insertion trick some builders need (to
// match a builder cursor pinned at the entry block's start) would have
// no observable effect here and is not reproduced.
func (cg *Codegen) slot(id decorated.ID) value.Value {
	if s, ok := cg.cur.slots[id]; ok {
		return s
	}
	s := cg.cur.entry.NewAlloca(types.I64)
	cg.cur.slots[id] = s
	return s
}
