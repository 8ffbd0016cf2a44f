package parser

import (
	"testing"

	"github.com/beatlang/beatc/internal/ast"
	"github.com/beatlang/beatc/internal/lexer"
)

func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()
	stmts, err := Parse(lexer.NewStream(lexer.New(src)))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if len(stmts) != 1 {
		t.Fatalf("Parse(%q): got %d statements, want 1", src, len(stmts))
	}
	return stmts[0]
}

func TestExprShapeUnaryFold(t *testing.T) {
	// "a.." folds to UnOp(UnOp(Ident(a))): the first "." is unary
	// because the next token is itself an Operator.
	stmt := parseOne(t, "a.. // yeet is a")
	outer, ok := stmt.Expr.(*ast.UnOp)
	if !ok {
		t.Fatalf("outer expr is %T, want *ast.UnOp", stmt.Expr)
	}
	inner, ok := outer.Inner.(*ast.UnOp)
	if !ok {
		t.Fatalf("inner expr is %T, want *ast.UnOp", outer.Inner)
	}
	if _, ok := inner.Inner.(*ast.Ident); !ok {
		t.Fatalf("innermost expr is %T, want *ast.Ident", inner.Inner)
	}
}

func TestExprShapeBinary(t *testing.T) {
	// "a.b" is a single binary application.
	stmt := parseOne(t, "a.b // yeet is a")
	bin, ok := stmt.Expr.(*ast.BinOp)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinOp", stmt.Expr)
	}
	if _, ok := bin.LHS.(*ast.Ident); !ok {
		t.Fatalf("LHS is %T, want *ast.Ident", bin.LHS)
	}
	if _, ok := bin.RHS.(*ast.Ident); !ok {
		t.Fatalf("RHS is %T, want *ast.Ident", bin.RHS)
	}
}

func TestExprShapeParenThenUnary(t *testing.T) {
	// "(a.b)." is a trailing unary application over a parenthesized
	// binary operand.
	stmt := parseOne(t, "(a.b). // yeet is a")
	un, ok := stmt.Expr.(*ast.UnOp)
	if !ok {
		t.Fatalf("expr is %T, want *ast.UnOp", stmt.Expr)
	}
	paren, ok := un.Inner.(*ast.Paren)
	if !ok {
		t.Fatalf("UnOp.Inner is %T, want *ast.Paren", un.Inner)
	}
	if _, ok := paren.Inner.(*ast.BinOp); !ok {
		t.Fatalf("Paren.Inner is %T, want *ast.BinOp", paren.Inner)
	}
}

func TestSpanRoundTrip(t *testing.T) {
	const src = "flag // goto is flag"
	stmt := parseOne(t, src)
	ident, ok := stmt.Expr.(*ast.Ident)
	if !ok {
		t.Fatalf("expr is %T, want *ast.Ident", stmt.Expr)
	}
	if got := ident.Name.Slice(src); got != "flag" {
		t.Errorf("span sliced to %q, want %q", got, "flag")
	}
}

func TestOpChainThenPresence(t *testing.T) {
	stmt := parseOne(t, "a // x is f then g then h")
	assign, ok := stmt.Behaviour.(*ast.Assign)
	if !ok {
		t.Fatalf("behaviour is %T, want *ast.Assign", stmt.Behaviour)
	}
	ops, ok := assign.Value.(*ast.Ops)
	if !ok {
		t.Fatalf("value is %T, want *ast.Ops", assign.Value)
	}
	if len(ops.Chain) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops.Chain))
	}
	if ops.Chain[0].Then == nil || ops.Chain[1].Then == nil {
		t.Error("non-last ops must carry a Then span")
	}
	if ops.Chain[2].Then != nil {
		t.Error("last op must not carry a Then span")
	}
}

func TestOpChainSingleOpNoThen(t *testing.T) {
	stmt := parseOne(t, "a // x is f")
	assign := stmt.Behaviour.(*ast.Assign)
	ops := assign.Value.(*ast.Ops)
	if len(ops.Chain) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops.Chain))
	}
	if ops.Chain[0].Then != nil {
		t.Error("the only op in a one-element chain must not carry a Then span")
	}
}

func TestStillInAndCondNesting(t *testing.T) {
	stmt := parseOne(t, "n // still in fib if cond return is n")
	si, ok := stmt.Behaviour.(*ast.StillIn)
	if !ok {
		t.Fatalf("behaviour is %T, want *ast.StillIn", stmt.Behaviour)
	}
	cond, ok := si.Inner.(*ast.Cond)
	if !ok {
		t.Fatalf("StillIn.Inner is %T, want *ast.Cond", si.Inner)
	}
	assign, ok := cond.Inner.(*ast.Assign)
	if !ok {
		t.Fatalf("Cond.Inner is %T, want *ast.Assign", cond.Inner)
	}
	if _, ok := assign.Target.(*ast.TargetReturn); !ok {
		t.Fatalf("target is %T, want *ast.TargetReturn", assign.Target)
	}
}

func TestFnLiteralTwoParams(t *testing.T) {
	stmts, err := Parse(lexer.NewStream(lexer.New("// multiply is with a and b f then g")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assign := stmts[0].Behaviour.(*ast.Assign)
	fn, ok := assign.Value.(*ast.FnLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.FnLiteral", assign.Value)
	}
	if fn.Param2 == nil {
		t.Fatal("expected a second parameter")
	}
	if len(fn.Chain) != 2 {
		t.Fatalf("got %d ops, want 2", len(fn.Chain))
	}
}

func TestDiscardAndNotHereTargets(t *testing.T) {
	stmts, err := Parse(lexer.NewStream(lexer.New("// malloc is not here\n// yeet is f\n")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	externAssign := stmts[0].Behaviour.(*ast.Assign)
	if _, ok := externAssign.Value.(*ast.NotHere); !ok {
		t.Fatalf("value is %T, want *ast.NotHere", externAssign.Value)
	}
	discardAssign := stmts[1].Behaviour.(*ast.Assign)
	if _, ok := discardAssign.Target.(*ast.TargetDiscard); !ok {
		t.Fatalf("target is %T, want *ast.TargetDiscard", discardAssign.Target)
	}
}

func TestBareBehaviourLine(t *testing.T) {
	// A statement with no leading operand expression.
	stmts, err := Parse(lexer.NewStream(lexer.New("// n is 1\n")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stmts[0].Expr != nil {
		t.Errorf("Expr = %#v, want nil", stmts[0].Expr)
	}
}

func TestUnexpectedTokenIsFatal(t *testing.T) {
	_, err := Parse(lexer.NewStream(lexer.New(") // x is 1")))
	if err == nil {
		t.Fatal("expected a parse error for a leading ParenRight")
	}
}
