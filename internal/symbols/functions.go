package symbols

import "github.com/beatlang/beatc/internal/decorated"

// FunctionTable tracks every extern and user function declared during
// Parser-2, in declaration order, so the analyzer can append them as
// Callable statements after all top-level statements.
type FunctionTable struct {
	order   []decorated.ID
	externs map[decorated.ID]*decorated.ExternFunction
	blocks  map[decorated.ID]*decorated.FuncBlock
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{
		externs: make(map[decorated.ID]*decorated.ExternFunction),
		blocks:  make(map[decorated.ID]*decorated.FuncBlock),
	}
}

// DeclareExtern registers e, keyed by its ID.
func (ft *FunctionTable) DeclareExtern(e *decorated.ExternFunction) {
	ft.externs[e.ID] = e
	ft.order = append(ft.order, e.ID)
}

// DeclareBlock registers fb, keyed by its ID, with an initially empty
// body.
func (ft *FunctionTable) DeclareBlock(fb *decorated.FuncBlock) {
	ft.blocks[fb.ID] = fb
	ft.order = append(ft.order, fb.ID)
}

// IsExtern reports whether id names a declared extern. An extern is
// never a valid target of StillIn.
func (ft *FunctionTable) IsExtern(id decorated.ID) bool {
	_, ok := ft.externs[id]
	return ok
}

// Block returns the FuncBlock for id, if any, so a StillIn wrapper
// can append to its body.
func (ft *FunctionTable) Block(id decorated.ID) (*decorated.FuncBlock, bool) {
	fb, ok := ft.blocks[id]
	return fb, ok
}

// Callables returns every declared extern/func-block as a Stmt, in
// declaration order, for appending after top-level statements.
func (ft *FunctionTable) Callables() []decorated.Stmt {
	out := make([]decorated.Stmt, 0, len(ft.order))
	for _, id := range ft.order {
		if e, ok := ft.externs[id]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, ft.blocks[id])
	}
	return out
}
