// Package config holds constants shared across compiler stages:
// small, widely imported.
package config

import "github.com/beatlang/beatc/internal/token"

// SourceFileExt is the recognized extension for beat source files.
const SourceFileExt = ".beat"

// DefaultOptLevel is the optimization level used when -O is not given.
const DefaultOptLevel = 2

// MaxOptLevel is the highest accepted -O value.
const MaxOptLevel = 3

// Keyword pairs a reserved lexeme with the token kind it lexes to.
type Keyword struct {
	Lexeme string
	Kind   token.Kind
}

// Keywords is tried longest-lexeme-first by the lexer, so that
// "not here" and "still in" (which span a literal space) match before
// falling back to a plain identifier, and so none of them are
// shadowed by a shorter reserved word.
var Keywords = []Keyword{
	{"still in", token.StillIn},
	{"not here", token.NotHere},
	{"fuckall", token.Discard},
	{"return", token.Return},
	{"then", token.Then},
	{"with", token.With},
	{"yeet", token.Discard},
	{"goto", token.Goto},
	{"and", token.And},
	{"is", token.Is},
	{"if", token.If},
}
