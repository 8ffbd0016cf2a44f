// Package diagnostics defines the single fatal error type every
// compiler stage raises: a phase, a code, a source span, and a
// templated message.
package diagnostics

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/beatlang/beatc/internal/token"
)

// Phase names the stage that raised an error.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
	PhaseCodegen  Phase = "codegen"
	PhaseDriver   Phase = "driver"
)

// Code identifies a specific kind of error within a phase.
type Code string

const (
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // unexpected token starting a statement, behaviour, target, value, op chain or atom

	ErrS001 Code = "S001" // undefined identifier
	ErrS002 Code = "S002" // redeclaration of a fresh name
	ErrS003 Code = "S003" // return/goto with empty expression
	ErrS004 Code = "S004" // operand/op count mismatch (zip leftover)
	ErrS005 Code = "S005" // discard used as a literal-load target
	ErrS006 Code = "S006" // extern used as the target of still-in
	ErrS007 Code = "S007" // target/value shape combination is not valid

	ErrC001 Code = "C001" // unsupported statement shape (e.g. unresolved goto target)

	ErrD001 Code = "D001" // source read failure
	ErrD002 Code = "D002" // object write failure
)

var templates = map[Code]string{
	ErrP001: "expected %s, got %s",
	ErrP002: "unexpected token: %s",
	ErrS001: "undefined identifier: %q",
	ErrS002: "redeclaration of %q",
	ErrS003: "%s requires a non-empty operand expression",
	ErrS004: "operand/op count mismatch: %s",
	ErrS005: "discard cannot be the target of a literal load",
	ErrS006: "still in: %q is an extern function and cannot have a body",
	ErrS007: "invalid statement shape: %s",
	ErrC001: "unsupported statement shape: %s",
	ErrD001: "could not read source file: %s",
	ErrD002: "could not write object file: %s",
}

// CompileError is the one fatal error type produced anywhere in the
// pipeline. Compilation aborts on the first one raised; there is no
// error recovery.
type CompileError struct {
	Phase Phase
	Code  Code
	Span  token.Span
	Args  []interface{}
}

func New(phase Phase, code Code, span token.Span, args ...interface{}) *CompileError {
	return &CompileError{Phase: phase, Code: code, Span: span, Args: args}
}

func (e *CompileError) Error() string {
	template, ok := templates[e.Code]
	if !ok {
		template = string(e.Code)
	}
	return fmt.Sprintf("[%s %s] %s %s", e.Phase, e.Code, e.Span, fmt.Sprintf(template, e.Args...))
}

// Report writes e to stderr, colorizing the phase/code prefix when
// stderr is attached to a terminal.
func Report(e *CompileError) {
	if e == nil {
		return
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", e.Error())
		return
	}
	fmt.Fprintln(os.Stderr, e.Error())
}
