// Package symbols implements the identifier interner and function
// table Parser-2 folds the CST through: a flat map-backed table over
// the single shared namespace every identifier kind lives in.
package symbols

import (
	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/token"
)

// Interner maps source lexemes to stable IDs, allocated monotonically.
type Interner struct {
	ids  map[string]decorated.ID
	next decorated.ID
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]decorated.ID)}
}

// Fresh allocates a new ID for name, failing fatally if it already
// exists. Used for literal targets, function declarations, and extern
// declarations.
func (in *Interner) Fresh(name string, span token.Span) (decorated.ID, *diagnostics.CompileError) {
	if _, ok := in.ids[name]; ok {
		return 0, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS002, span, name)
	}
	return in.allocate(name), nil
}

// ShadowOrCreate reuses name's existing ID if bound, else allocates a
// new one. Used for assignment targets that refer to a mutable local.
func (in *Interner) ShadowOrCreate(name string) decorated.ID {
	if id, ok := in.ids[name]; ok {
		return id
	}
	return in.allocate(name)
}

// Lookup resolves name to its existing ID, failing fatally if absent.
// Used for every reference within expressions and conditions.
func (in *Interner) Lookup(name string, span token.Span) (decorated.ID, *diagnostics.CompileError) {
	id, ok := in.ids[name]
	if !ok {
		return 0, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrS001, span, name)
	}
	return id, nil
}

func (in *Interner) allocate(name string) decorated.ID {
	id := in.next
	in.ids[name] = id
	in.next++
	return id
}
