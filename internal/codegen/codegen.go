// Package codegen lowers a decorated program into an LLVM module and,
// optionally, an object file. IR construction goes through
// github.com/llir/llvm, which plays the role inkwell plays in the
// original: building a Module/Func/Block graph in memory. Unlike
// inkwell, llir/llvm has no TargetMachine or object-file writer, so
// Emit hands the serialized IR text to the system llc binary as a
// native backend collaborator, invoked as a subprocess instead of
// linked in.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/symbols"
	"github.com/beatlang/beatc/internal/token"
)

// Codegen owns the module under construction and the state needed to
// lower one decorated program into it.
type Codegen struct {
	module   *ir.Module
	funcs    *symbols.FunctionTable
	funcVals map[decorated.ID]*ir.Func

	// literalValues records the compile-time constant bound to every ID
	// loaded via a LoadLiteralNumber, in the order lowering visits them.
	// GotoStmt needs this to resolve its target identifier back to a
	// source line number at compile time (see DESIGN.md, "Goto" Open
	// Question decision).
	literalValues map[decorated.ID]uint64

	// queue is the function-compile queue, LIFO: pushed to whenever a
	// FuncBlock statement is lowered, drained to a fixpoint after main
	// is built, since a function's own body may declare (and thus
	// enqueue) further nested functions.
	queue []*decorated.FuncBlock

	cur *funcCtx
}

// funcCtx is the per-function lowering state: one fresh instance per
// function body (main, or a user FuncBlock).
type funcCtx struct {
	fn     *ir.Func
	entry  *ir.Block
	blocks map[int]*ir.Block // source line -> its basic block
	order  []int             // lines in source order, for fallthrough/goto
	slots  map[decorated.ID]value.Value
}

func (fc *funcCtx) nextBlock(line int) (*ir.Block, bool) {
	for i, l := range fc.order {
		if l == line {
			if i+1 < len(fc.order) {
				return fc.blocks[fc.order[i+1]], true
			}
			return nil, false
		}
	}
	return nil, false
}

// codegenError aborts lowering via panic/recover, mirroring the
// parser's own panic-based error plumbing (internal/parser.Parse).
type codegenError struct {
	err *diagnostics.CompileError
}

// fail raises a codegen-phase error. Decorated statements only carry
// source line numbers, not byte spans, so codegen errors always
// report a zero Span; the message text carries the detail instead.
func fail(code diagnostics.Code, span token.Span, args ...interface{}) {
	panic(codegenError{diagnostics.New(diagnostics.PhaseCodegen, code, span, args...)})
}

// Compile lowers program into a fresh LLVM module named moduleName.
// funcs is the function table Parser-2 produced for program; it is
// stored on the Codegen but not consulted during lowering — statements
// are classified as Callable by their type (see isCallable).
func Compile(moduleName string, program []decorated.Stmt, funcs *symbols.FunctionTable) (m *ir.Module, err *diagnostics.CompileError) {
	cg := &Codegen{
		module:        ir.NewModule(),
		funcs:         funcs,
		funcVals:      make(map[decorated.ID]*ir.Func),
		literalValues: make(map[decorated.ID]uint64),
	}
	cg.module.SourceFilename = moduleName

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(codegenError)
			if !ok {
				panic(r)
			}
			m, err = nil, ce.err
		}
	}()

	cg.declareAll(program)
	cg.buildMain(program)
	cg.drainQueue()

	return cg.module, nil
}

// isCallable reports whether stmt is a function declaration rather
// than executable code — externs and func blocks never get a
// per-line basic block of their own.
func isCallable(stmt decorated.Stmt) bool {
	switch stmt.(type) {
	case *decorated.ExternFunction, *decorated.FuncBlock:
		return true
	default:
		return false
	}
}

// declareAll pre-declares every extern and func block reachable from
// program, recursing into each FuncBlock's own body so a function
// declared only inside another function's body is still visible to
// every call site regardless of lowering order.
func (cg *Codegen) declareAll(stmts []decorated.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *decorated.ExternFunction:
			cg.declareExtern(s)
		case *decorated.FuncBlock:
			cg.declareFuncBlock(s)
			cg.declareAll(s.Body)
		case *decorated.Conditional:
			cg.declareAll([]decorated.Stmt{s.Inner})
		}
	}
}

// declareExtern declares name as an external-linkage (i64, i64) -> i64
// function, matching the arity-2 quirk preserved in
// decorated.ExternFunction's doc comment regardless of real call
// arity.
func (cg *Codegen) declareExtern(e *decorated.ExternFunction) {
	p1 := ir.NewParam("", types.I64)
	p2 := ir.NewParam("", types.I64)
	fn := cg.module.NewFunc(e.Name, types.I64, p1, p2)
	fn.Linkage = enum.LinkageExternal
	cg.funcVals[e.ID] = fn
}

// declareFuncBlock declares a user function, named by its decimal ID
// (source functions have no stable external name otherwise), with
// internal linkage and one or two i64 parameters.
func (cg *Codegen) declareFuncBlock(fb *decorated.FuncBlock) {
	name := fmt.Sprintf("fn%d", fb.ID)
	params := []*ir.Param{ir.NewParam("", types.I64)}
	if fb.Param2 != nil {
		params = append(params, ir.NewParam("", types.I64))
	}
	fn := cg.module.NewFunc(name, types.I64, params...)
	fn.Linkage = enum.LinkageInternal
	cg.funcVals[fb.ID] = fn
}

// zero returns the constant zero of typ, used to synthesize an
// implicit closing return for any block left without a terminator
// once all of a function's explicit statements have been lowered.
func zero(typ *types.IntType) value.Value {
	return constant.NewInt(typ, 0)
}

// finalizeTerminators gives every still-open block of fn an implicit
// `ret zero`. Nothing defines what should happen when control falls
// off the end of a function body without an explicit return — LLVM
// requires every block to end in a terminator, so this is the minimal
// closing move that keeps the generated module well-formed.
func finalizeTerminators(fn *ir.Func, retType *types.IntType) {
	for _, blk := range fn.Blocks {
		if blk.Term == nil {
			blk.NewRet(zero(retType))
		}
	}
}
