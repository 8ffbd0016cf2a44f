package pipeline

import (
	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/lexer"
	"github.com/beatlang/beatc/internal/symbols"
)

// Context holds everything passed between pipeline stages, owned by
// the driver for the lifetime of one compilation.
type Context struct {
	Source string
	Path   string

	Tokens *lexer.Stream

	CST []ast.Statement

	Decorated []decorated.Stmt
	Funcs     *symbols.FunctionTable

	Err *diagnostics.CompileError
}

// NewContext creates a Context ready for the lexer stage.
func NewContext(source, path string) *Context {
	return &Context{Source: source, Path: path}
}
