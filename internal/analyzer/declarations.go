package analyzer

import (
	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
)

// decorateAssign lowers "<target> is <value>". The target kind picks
// which value kinds are legal.
func (a *Analyzer) decorateAssign(line int, expr ast.Expr, as *ast.Assign) (decorated.Stmt, *diagnostics.CompileError) {
	switch target := as.Target.(type) {
	case *ast.TargetReturn:
		return a.decorateReturnOrGoto(line, expr, as.Value, target, true)
	case *ast.TargetGoto:
		return a.decorateReturnOrGoto(line, expr, as.Value, target, false)
	case *ast.TargetIdent, *ast.TargetDiscard:
		return a.decorateIdentOrDiscard(line, expr, target, as.Value)
	default:
		panic("analyzer: unhandled target type")
	}
}

func (a *Analyzer) decorateReturnOrGoto(line int, expr ast.Expr, value ast.Value, target ast.Target, isReturn bool) (decorated.Stmt, *diagnostics.CompileError) {
	what := "goto"
	if isReturn {
		what = "return"
	}

	ops, ok := value.(*ast.Ops)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS007, ast.TargetSpan(target), what+" requires an op-chain value")
	}
	if expr == nil {
		// Goto and Return both require a non-empty operand expression.
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS003, ast.TargetSpan(target), what)
	}

	val, err := zip(expr, ops.Chain, a.interner, a.src, ast.TargetSpan(target))
	if err != nil {
		return nil, err
	}
	if isReturn {
		return &decorated.ReturnStmt{Line: line, Value: val}, nil
	}
	return &decorated.GotoStmt{Line: line, Value: val}, nil
}

// decorateIdentOrDiscard handles the four value kinds that pair with
// a plain identifier or discard target: a literal load, an extern
// declaration, a zipped assignment, or (Ident only) a function
// declaration.
func (a *Analyzer) decorateIdentOrDiscard(line int, expr ast.Expr, target ast.Target, value ast.Value) (decorated.Stmt, *diagnostics.CompileError) {
	switch v := value.(type) {
	case *ast.NumberLit:
		return a.decorateLiteralLoad(line, target, v)
	case *ast.NotHere:
		return a.decorateExtern(line, target, v)
	case *ast.FnLiteral:
		return a.decorateFuncBlock(line, expr, target, v)
	case *ast.Ops:
		return a.decorateZippedAssignment(line, expr, target, v)
	default:
		panic("analyzer: unhandled assignment value type")
	}
}

// decorateLiteralLoad requires a fresh, non-discard target.
func (a *Analyzer) decorateLiteralLoad(line int, target ast.Target, v *ast.NumberLit) (decorated.Stmt, *diagnostics.CompileError) {
	ident, ok := target.(*ast.TargetIdent)
	if !ok {
		// Discard as a literal-load target has nowhere to store the value.
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS005, ast.TargetSpan(target))
	}
	id, err := a.interner.Fresh(ident.Name.Slice(a.src), ident.Name)
	if err != nil {
		return nil, err
	}
	return &decorated.LoadLiteralNumber{Line: line, Target: id, Value: v.Value}, nil
}

// decorateExtern requires a fresh, non-discard target and registers
// the name in the function table without emitting a statement at this
// position.
func (a *Analyzer) decorateExtern(line int, target ast.Target, v *ast.NotHere) (decorated.Stmt, *diagnostics.CompileError) {
	ident, ok := target.(*ast.TargetIdent)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS005, ast.TargetSpan(target))
	}
	id, err := a.interner.Fresh(ident.Name.Slice(a.src), ident.Name)
	if err != nil {
		return nil, err
	}
	a.funcs.DeclareExtern(&decorated.ExternFunction{Line: line, Name: ident.Name.Slice(a.src), ID: id})
	return nil, nil
}

// decorateFuncBlock requires a fresh Ident target. If the declaring
// statement also carried an operand expression, it becomes a single
// body-local Assignment{target=none} zipped against the function's
// own op-chain.
func (a *Analyzer) decorateFuncBlock(line int, expr ast.Expr, target ast.Target, v *ast.FnLiteral) (decorated.Stmt, *diagnostics.CompileError) {
	ident, ok := target.(*ast.TargetIdent)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS007, ast.TargetSpan(target), "function declaration requires an identifier target")
	}
	fnID, err := a.interner.Fresh(ident.Name.Slice(a.src), ident.Name)
	if err != nil {
		return nil, err
	}

	p1 := a.interner.ShadowOrCreate(v.Param1.Slice(a.src))
	var p2 *decorated.ID
	if v.Param2 != nil {
		id2 := a.interner.ShadowOrCreate(v.Param2.Slice(a.src))
		p2 = &id2
	}

	fb := &decorated.FuncBlock{Line: line, ID: fnID, Param1: p1, Param2: p2}
	a.funcs.DeclareBlock(fb)

	if expr != nil {
		val, err := zip(expr, v.Chain, a.interner, a.src, ident.Name)
		if err != nil {
			return nil, err
		}
		fb.Body = append(fb.Body, &decorated.Assignment{Line: line, Target: nil, Value: val})
	}
	return nil, nil
}

// decorateZippedAssignment handles Ident (shadow-or-create) or
// Discard (anonymous) targets paired with an op-chain value.
func (a *Analyzer) decorateZippedAssignment(line int, expr ast.Expr, target ast.Target, v *ast.Ops) (decorated.Stmt, *diagnostics.CompileError) {
	if expr == nil {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS003, ast.TargetSpan(target), "assignment")
	}

	var targetID *decorated.ID
	switch t := target.(type) {
	case *ast.TargetIdent:
		id := a.interner.ShadowOrCreate(t.Name.Slice(a.src))
		targetID = &id
	case *ast.TargetDiscard:
		targetID = nil
	default:
		panic("analyzer: unhandled target type in zipped assignment")
	}

	val, err := zip(expr, v.Chain, a.interner, a.src, ast.TargetSpan(target))
	if err != nil {
		return nil, err
	}
	return &decorated.Assignment{Line: line, Target: targetID, Value: val}, nil
}
