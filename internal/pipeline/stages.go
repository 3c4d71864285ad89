package pipeline

import (
	"github.com/tair-lang/tair/internal/instantiate"
	"github.com/tair-lang/tair/internal/typecheck"
)

// InstantiateStage runs the instantiation engine's restriction closure
// and process-registration steps over every instance the Builder has
// already recorded (spec §4.5 steps 4-6).
type InstantiateStage struct{}

func (InstantiateStage) Process(ctx *PipelineContext) *PipelineContext {
	instantiate.Finalize(ctx.Doc)
	return ctx
}

// TypeCheckStage runs the single-pass semantic checker (spec §4.6) and
// copies its diagnostics onto the pipeline context.
type TypeCheckStage struct{}

func (TypeCheckStage) Process(ctx *PipelineContext) *PipelineContext {
	checker := typecheck.New(ctx.Doc)
	checker.Check()
	ctx.Errs = ctx.Doc.Sink.All()
	return ctx
}
