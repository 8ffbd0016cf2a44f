package lexer

import (
	"testing"

	"github.com/beatlang/beatc/internal/token"
)

func allTokens(src string) []token.Token {
	l := New(src)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	got := kinds(allTokens(src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d = %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"yeet", token.Discard},
		{"fuckall", token.Discard},
		{"not here", token.NotHere},
		{"still in", token.StillIn},
		{"with", token.With},
		{"if", token.If},
		{"goto", token.Goto},
		{"return", token.Return},
		{"is", token.Is},
		{"then", token.Then},
		{"and", token.And},
	}
	for _, tt := range tests {
		toks := allTokens(tt.src)
		if toks[0].Kind != tt.kind {
			t.Errorf("%q: lexed as %s, want %s", tt.src, toks[0].Kind, tt.kind)
		}
	}
}

func TestKeywordBoundary(t *testing.T) {
	// "ifx" must not lex as If followed by "x" — the boundary check
	// must reject a continuing identifier character.
	assertKinds(t, "ifx", []token.Kind{token.Identifier, token.EOF})
	assertKinds(t, "nothere", []token.Kind{token.Identifier, token.EOF})
	assertKinds(t, "withered", []token.Kind{token.Identifier, token.EOF})
}

func TestOperatorsAndParens(t *testing.T) {
	assertKinds(t, "a.b", []token.Kind{token.Identifier, token.Operator, token.Identifier, token.EOF})
	assertKinds(t, "(a.b).", []token.Kind{
		token.ParenLeft, token.Identifier, token.Operator, token.Identifier,
		token.ParenRight, token.Operator, token.EOF,
	})
}

func TestCommentsSkipped(t *testing.T) {
	assertKinds(t, "* a full line comment\nn", []token.Kind{token.Newline, token.Identifier, token.EOF})
	assertKinds(t, "n * trailing comment\n", []token.Kind{token.Identifier, token.Newline, token.EOF})
}

func TestNewlinePerLFAndFF(t *testing.T) {
	assertKinds(t, "a\nb\fc", []token.Kind{
		token.Identifier, token.Newline,
		token.Identifier, token.Newline,
		token.Identifier, token.EOF,
	})
}

func TestNumberLiteral(t *testing.T) {
	toks := allTokens("42")
	if toks[0].Kind != token.Number || toks[0].Value != 42 {
		t.Fatalf("got %+v, want Number(42)", toks[0])
	}
}

func TestNumberOverflowIsLexError(t *testing.T) {
	// One past math.MaxUint64: must not silently truncate.
	toks := allTokens("18446744073709551616")
	if toks[0].Kind != token.Error {
		t.Fatalf("got %s, want Error for an out-of-range literal", toks[0].Kind)
	}
}

func TestBehaviourStart(t *testing.T) {
	assertKinds(t, "n // still in fib return is n", []token.Kind{
		token.Identifier, token.BehaviourStart, token.StillIn, token.Identifier,
		token.Return, token.Is, token.Identifier, token.EOF,
	})
}

// TestFibonacciTokenSequence exercises the lexer against a fibonacci
// fixture in the style of the recursive-fibonacci lexer-property test
// it descends from: it checks only tokenization, not that the text is
// a semantically valid program (it is not — several op-chain names
// here are never declared, so running it through the analyzer would
// fail identifier resolution long before codegen).
func TestFibonacciTokenSequence(t *testing.T) {
	const src = `* Recursive fibonacci to get the nth number in the sequence ****
// fib is with n
// still in fib one is 1
// still in fib two is 2
n.two // still in fib cond is less
n // still in fib if cond return is
(n.one)..(n.two). // still in fib return is sub then fib then sub then fib then add
// malloc is not here
// multiply is with a and b
`
	toks := allTokens(src)
	for _, tok := range toks {
		if tok.Kind == token.Error {
			t.Fatalf("unexpected lex error token at %s", tok.Span)
		}
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("last token = %s, want EOF", toks[len(toks)-1].Kind)
	}

	// Spot-check the densest line: "(n.one)..(n.two). // still in fib
	// return is sub then fib then sub then fib then add"
	var line7 []token.Kind
	start := -1
	for i, tok := range toks {
		if tok.Kind == token.ParenLeft && start == -1 {
			// The recursive return line is the only one that starts
			// with "(": take the first ParenLeft immediately preceded
			// by a Newline.
			if i > 0 && toks[i-1].Kind == token.Newline {
				start = i
			}
		}
	}
	if start == -1 {
		t.Fatal("could not locate the recursive return line in the token stream")
	}
	for i := start; i < len(toks) && toks[i].Kind != token.Newline && toks[i].Kind != token.EOF; i++ {
		line7 = append(line7, toks[i].Kind)
	}
	want := []token.Kind{
		token.ParenLeft, token.Identifier, token.Operator, token.Identifier, token.ParenRight,
		token.Operator, token.Operator,
		token.ParenLeft, token.Identifier, token.Operator, token.Identifier, token.ParenRight,
		token.Operator,
		token.BehaviourStart, token.StillIn, token.Identifier,
		token.Return, token.Is,
		token.Identifier, token.Then, token.Identifier, token.Then,
		token.Identifier, token.Then, token.Identifier, token.Then, token.Identifier,
	}
	if len(line7) != len(want) {
		t.Fatalf("recursive return line: got %d tokens %v, want %d %v", len(line7), line7, len(want), want)
	}
	for i := range want {
		if line7[i] != want[i] {
			t.Errorf("recursive return line token %d = %s, want %s", i, line7[i], want[i])
		}
	}
}
