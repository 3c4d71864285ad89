// Package pipeline runs a Document through an ordered sequence of stages
// (instantiation, then type checking), mirroring the funxy front-end's own
// Pipeline/Processor shape.
package pipeline

import (
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// PipelineContext threads a Document through the stages, accumulating
// diagnostics along the way.
type PipelineContext struct {
	Doc  *ir.Document
	Errs []*diagnostics.Diagnostic
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from every stage
		// rather than stopping at the first one that finds a problem.
	}
	return ctx
}
