package pipeline

import (
	"testing"

	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/position"
)

// stubProcessor records that it ran and passes the context through
// unchanged, used to verify Pipeline.Run threads a single context
// through every stage in order.
type stubProcessor struct {
	ran *bool
}

func (s stubProcessor) Process(ctx *PipelineContext) *PipelineContext {
	*s.ran = true
	return ctx
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var firstRan, secondRan bool
	p := New(stubProcessor{ran: &firstRan}, stubProcessor{ran: &secondRan})

	doc := ir.New()
	ctx := p.Run(&PipelineContext{Doc: doc})

	if !firstRan || !secondRan {
		t.Fatalf("expected both stages to run, got first=%v second=%v", firstRan, secondRan)
	}
	if ctx.Doc != doc {
		t.Fatalf("expected the same Document to thread through unchanged")
	}
}

func TestInstantiateThenTypeCheckStages(t *testing.T) {
	doc := ir.New()
	pos := position.Position{Line: 1, Column: 1}

	tmpl, _ := doc.AddTemplate("P", true, pos)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, pos)
	tmpl.Init = l0.Sym

	inst, err := doc.AddInstance("p", tmpl, nil, pos)
	if err != nil {
		t.Fatalf("AddInstance: %v", err)
	}
	inst.Unbound, inst.Bound = 0, 0

	pl := New(InstantiateStage{}, TypeCheckStage{})
	ctx := pl.Run(&PipelineContext{Doc: doc})

	if len(doc.Processes) != 1 {
		t.Fatalf("expected InstantiateStage to register the fully bound instance as a process, got %d", len(doc.Processes))
	}
	if len(ctx.Errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", ctx.Errs)
	}
}
