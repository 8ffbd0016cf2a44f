package pipeline_test

import (
	"testing"

	"github.com/beatlang/beatc/internal/codegen"
	"github.com/beatlang/beatc/internal/decorated"
	"github.com/beatlang/beatc/internal/pipeline"
)

func run(src string) *pipeline.Context {
	ctx := pipeline.NewContext(src, "<test>")
	return pipeline.New(pipeline.Stages()...).Run(ctx)
}

func TestFrontEndLiteralProgram(t *testing.T) {
	ctx := run("// n is 42\n")
	if ctx.Err != nil {
		t.Fatalf("unexpected error: %v", ctx.Err)
	}
	if len(ctx.Decorated) != 1 {
		t.Fatalf("got %d decorated statements, want 1", len(ctx.Decorated))
	}
	if _, ok := ctx.Decorated[0].(*decorated.LoadLiteralNumber); !ok {
		t.Fatalf("got %T, want *decorated.LoadLiteralNumber", ctx.Decorated[0])
	}
}

func TestFrontEndRecursiveFunction(t *testing.T) {
	const src = `// less is not here
// sub is not here
// add is not here
// malloc is not here
// fib is with n
// still in fib one is 1
// still in fib two is 2
n.two // still in fib cond is less
n // still in fib if cond return is
(n.one)..(n.two). // still in fib return is sub then fib then sub then fib then add
`
	ctx := run(src)
	if ctx.Err != nil {
		t.Fatalf("unexpected error: %v", ctx.Err)
	}

	module, cerr := codegen.Compile("fib", ctx.Decorated, ctx.Funcs)
	if cerr != nil {
		t.Fatalf("codegen: %v", cerr)
	}
	if len(module.Funcs) == 0 {
		t.Fatal("expected at least one emitted function")
	}
}

func TestFrontEndStopsAtFirstFatalStage(t *testing.T) {
	// An unresolvable reference is caught at the analyzer stage; the
	// context carries the error and CST stays populated from the
	// parser stage that ran before it.
	ctx := run("n // yeet is n\n")
	if ctx.Err == nil {
		t.Fatal("expected a fatal error for an undeclared identifier")
	}
	if ctx.CST == nil {
		t.Error("parser stage should have already populated CST before the analyzer stage failed")
	}
	if ctx.Decorated != nil {
		t.Error("analyzer stage failed, Decorated should remain unset")
	}
}

func TestFrontEndLexErrorStopsBeforeParsing(t *testing.T) {
	ctx := run("18446744073709551616 // yeet is n\n")
	if ctx.Err == nil {
		t.Fatal("expected a fatal error for an out-of-range number literal")
	}
	if ctx.CST != nil {
		t.Error("parser stage should not have run past a lex error")
	}
}

func TestFrontEndConditionalAssignment(t *testing.T) {
	const src = `// less is not here
// a is 1
// b is 2
a.b // flag is less
a.b // if flag c is less
// d is 3
`
	ctx := run(src)
	if ctx.Err != nil {
		t.Fatalf("unexpected error: %v", ctx.Err)
	}

	var sawConditional bool
	for _, stmt := range ctx.Decorated {
		if _, ok := stmt.(*decorated.Conditional); ok {
			sawConditional = true
		}
	}
	if !sawConditional {
		t.Error("expected a Conditional statement among the decorated program")
	}

	module, cerr := codegen.Compile("branchy", ctx.Decorated, ctx.Funcs)
	if cerr != nil {
		t.Fatalf("codegen: %v", cerr)
	}
	if len(module.Funcs) == 0 {
		t.Fatal("expected main to be emitted")
	}
}
