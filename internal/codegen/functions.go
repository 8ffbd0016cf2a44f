package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/beatlang/beatc/internal/decorated"
)

// buildMain constructs `main() -> i32`. Every top-level statement that
// is not a Callable gets its own basic block, one per source line, in
// source order; Callables (FuncBlock/ExternFunction) are lowered too,
// but only to push themselves onto the compile queue or to declare —
// neither needs a block of its own. When the program has at least one
// executable statement, main's first created block doubles as its
// entry block, since main has no parameters to stage and so needs no
// separate dedicated entry block the way a FuncBlock gets one. A
// program that is all declarations gets a standalone trivial entry
// block instead, since there is no statement block to serve as one.
func (cg *Codegen) buildMain(program []decorated.Stmt) {
	fn := cg.module.NewFunc("main", types.I32)
	fn.Linkage = enum.LinkageExternal

	fc := newFuncCtx(fn)
	for _, stmt := range program {
		if isCallable(stmt) {
			continue
		}
		fc.addBlock(stmt.Src())
	}

	// A program consisting entirely of declarations (externs and func
	// blocks, the canonical case) has no top-level executable
	// statement and so no block of its own — main still needs a
	// trivial entry block to return from. Either way, the lowering
	// loop below still has to run: it is the only place a top-level
	// FuncBlock gets pushed onto cg.queue, and skipping it here would
	// leave every such function an empty, bodyless declaration.
	if len(fc.order) == 0 {
		fc.entry = fn.NewBlock("entry")
		fc.entry.NewRet(zero(types.I32))
	} else {
		fc.entry = fc.blocks[fc.order[0]]
	}

	cg.cur = fc
	for _, stmt := range program {
		cg.lowerStmt(stmt)
	}
	cg.cur = nil

	finalizeTerminators(fn, types.I32)
}

// drainQueue compiles every FuncBlock pushed onto cg.queue, in LIFO
// order, until empty — a function's own body may enqueue further
// nested functions, so this runs to a fixpoint.
func (cg *Codegen) drainQueue() {
	for len(cg.queue) > 0 {
		last := len(cg.queue) - 1
		fb := cg.queue[last]
		cg.queue = cg.queue[:last]
		cg.buildFunctionBody(fb)
	}
}

// buildFunctionBody constructs a user function's entry block
// (allocating and storing its parameters), one block per non-Callable
// body statement, and the unconditional branch wiring the entry block
// to the first body block.
func (cg *Codegen) buildFunctionBody(fb *decorated.FuncBlock) {
	fn := cg.funcVals[fb.ID]

	entry := fn.NewBlock("entry")
	fc := newFuncCtx(fn)
	fc.entry = entry

	params := fn.Params
	fc.slots[fb.Param1] = entry.NewAlloca(types.I64)
	entry.NewStore(params[0], fc.slots[fb.Param1])
	if fb.Param2 != nil {
		fc.slots[*fb.Param2] = entry.NewAlloca(types.I64)
		entry.NewStore(params[1], fc.slots[*fb.Param2])
	}

	for _, stmt := range fb.Body {
		if isCallable(stmt) {
			continue
		}
		fc.addBlock(stmt.Src())
	}

	if len(fc.order) == 0 {
		exit := fn.NewBlock(fmt.Sprintf("fn%d.exit", fb.ID))
		exit.NewRet(zero(types.I64))
		entry.NewBr(exit)
	} else {
		entry.NewBr(fc.blocks[fc.order[0]])
	}

	cg.cur = fc
	for _, stmt := range fb.Body {
		cg.lowerStmt(stmt)
	}
	cg.cur = nil

	finalizeTerminators(fn, types.I64)
}

func newFuncCtx(fn *ir.Func) *funcCtx {
	return &funcCtx{
		fn:     fn,
		blocks: make(map[int]*ir.Block),
		slots:  make(map[decorated.ID]value.Value),
	}
}

// addBlock appends a fresh basic block for line to fc, named after the
// source line it lowers (purely cosmetic — aids reading dumped IR).
func (fc *funcCtx) addBlock(line int) {
	blk := fc.fn.NewBlock(fmt.Sprintf("L%d", line))
	fc.blocks[line] = blk
	fc.order = append(fc.order, line)
}
