package lexer

import (
	"fmt"

	"github.com/beatlang/beatc/internal/token"
)

// Stream wraps a Lexer with a one-token lookahead facade, the
// interface every later stage is written against.
type Stream struct {
	l       *Lexer
	pending *token.Token
}

// NewStream creates a lookahead facade over l.
func NewStream(l *Lexer) *Stream {
	return &Stream{l: l}
}

// Peek returns the next token without consuming it. At end of input
// it returns an EOF token (never nil) so callers can always branch on
// Kind without an extra presence check.
func (s *Stream) Peek() token.Token {
	if s.pending == nil {
		tok := s.l.NextToken()
		s.pending = &tok
	}
	return *s.pending
}

// Next consumes and returns the next token.
func (s *Stream) Next() token.Token {
	tok := s.Peek()
	s.pending = nil
	return tok
}

// Expect consumes the next token, returning its span, and fails
// fatally (via panic(*StreamError), recovered by parser.Parse)
// if its kind does not match want.
func (s *Stream) Expect(want token.Kind) token.Span {
	tok := s.Next()
	if tok.Kind != want {
		panic(&StreamError{Want: want, Got: tok})
	}
	return tok.Span
}

// StreamError is raised by Expect on a kind mismatch.
type StreamError struct {
	Want token.Kind
	Got  token.Token
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("expected %s, got %s at %s", e.Want, e.Got.Kind, e.Got.Span)
}
