// Package pipeline wires the three front-end compiler stages (lexer,
// Parser-1, Parser-2) together, in the teacher's own unidirectional
// Pipeline/Processor/Context shape. Code generation is run separately
// by the driver.
package pipeline

// Processor is any stage that can process a Context and return a
// (possibly the same, possibly modified) context.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of processors over one Context.
type Pipeline struct {
	stages []Processor
}

// New builds a Pipeline from stages, run in order.
func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order, stopping early once the context
// carries a fatal error: there is no error recovery, so there is
// nothing useful for a later stage to do with a context a prior stage
// already gave up on.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, stage := range p.stages {
		if ctx.Err != nil {
			break
		}
		ctx = stage.Process(ctx)
	}
	return ctx
}
