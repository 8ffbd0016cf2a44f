// Package lexer implements the beat language's longest-match tokenizer.
package lexer

import (
	"math/big"

	"github.com/beatlang/beatc/internal/config"
	"github.com/beatlang/beatc/internal/token"
)

// Lexer scans a source buffer byte-by-byte and produces tokens on
// demand. It holds no lookahead of its own; internal/lexer's
// Stream wraps it with a one-token-lookahead facade.
type Lexer struct {
	src string
	pos int
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// NextToken skips whitespace and comments, then classifies and
// consumes the next token. It returns a token.EOF token at end of
// input and never panics: malformed input produces a token.Error
// token, which the parser treats as a fatal syntax error.
func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()

	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: l.pos, End: l.pos}}
	}

	start := l.pos
	b := l.src[l.pos]

	switch {
	case b == '\n' || b == '\f':
		l.pos++
		return token.Token{Kind: token.Newline, Span: token.Span{Start: start, End: l.pos}}
	case b == '.':
		l.pos++
		return token.Token{Kind: token.Operator, Span: token.Span{Start: start, End: l.pos}}
	case b == '(':
		l.pos++
		return token.Token{Kind: token.ParenLeft, Span: token.Span{Start: start, End: l.pos}}
	case b == ')':
		l.pos++
		return token.Token{Kind: token.ParenRight, Span: token.Span{Start: start, End: l.pos}}
	case b == '/' && l.peekByte(1) == '/':
		l.pos += 2
		return token.Token{Kind: token.BehaviourStart, Span: token.Span{Start: start, End: l.pos}}
	case isDigit(b):
		return l.lexNumber(start)
	case isIdentStart(b):
		return l.lexIdentOrKeyword(start)
	default:
		l.pos++
		return token.Token{Kind: token.Error, Span: token.Span{Start: start, End: l.pos}}
	}
}

// skipTrivia consumes spaces, tabs, carriage returns, and `*`
// line comments (to end of line, exclusive of the terminator).
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.pos++
		case b == '*':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\f' {
				l.pos++
			}
		default:
			return
		}
	}
}

// lexIdentOrKeyword matches the longest keyword at the current
// position; if none matches (or the keyword match is not followed by
// a non-identifier boundary), it falls back to a plain identifier.
func (l *Lexer) lexIdentOrKeyword(start int) token.Token {
	rest := l.src[l.pos:]
	for _, kw := range config.Keywords {
		if matchesKeyword(rest, kw.Lexeme) {
			l.pos += len(kw.Lexeme)
			return token.Token{Kind: kw.Kind, Span: token.Span{Start: start, End: l.pos}}
		}
	}

	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return token.Token{Kind: token.Identifier, Span: token.Span{Start: start, End: l.pos}}
}

// matchesKeyword reports whether rest begins with lexeme followed by
// a byte that cannot continue an identifier (so "nothere" does not
// match "not here", and "ifx" does not match "if").
func matchesKeyword(rest, lexeme string) bool {
	if len(rest) < len(lexeme) || rest[:len(lexeme)] != lexeme {
		return false
	}
	if len(rest) == len(lexeme) {
		return true
	}
	return !isIdentCont(rest[len(lexeme)])
}

// lexNumber parses a decimal run via math/big so that values wider
// than 64 bits are detected and rejected rather than silently
// truncated; the beat language has no arbitrary-precision integers,
// so overflow is a fatal lexical error (token.Error), not a value.
func (l *Lexer) lexNumber(start int) token.Token {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	span := token.Span{Start: start, End: l.pos}

	n := new(big.Int)
	n.SetString(l.src[start:l.pos], 10)
	if !n.IsUint64() {
		return token.Token{Kind: token.Error, Span: span}
	}
	return token.Token{Kind: token.Number, Span: span, Value: n.Uint64()}
}
