package typecheck

import (
	"testing"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/instantiate"
	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/pipeline"
	"github.com/tair-lang/tair/internal/position"
)

func pos() position.Position { return position.Position{File: "t", Line: 1, Column: 1} }

// TestMinimalTA models spec §8 scenario 1: one template, a clock guard
// with a strict lower bound on a controllable edge, one fully bound
// process, and zero diagnostics.
func TestMinimalTA(t *testing.T) {
	doc := ir.New()
	p := pos()

	_, _ = doc.AddVariable(doc.Globals, "x", ir.Clock(), nil, p)
	_, _ = doc.AddVariable(doc.Globals, "c", ir.Channel(), nil, p)

	tmpl, _ := doc.AddTemplate("P", true, p)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, p)
	l1, _ := doc.AddLocation(tmpl, "L1", nil, p)
	tmpl.Init = l0.Sym

	guard := &ir.BinaryExpr{Op: ">", Left: &ir.IdentifierExpr{Name: "x"}, Right: &ir.ConstantExpr{Kind: ir.ConstInt, IntVal: 1}}
	edge, _ := doc.AddEdge(tmpl, l0, nil, l1, nil, true, p)
	_ = doc.AddGuard(edge, guard)
	_ = doc.AddSync(edge, &ir.IdentifierExpr{Name: "c"}, true)

	_, _, err := instantiate.Instantiate(doc, tmpl, "p", nil, p)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	pl := pipeline.New(pipeline.InstantiateStage{}, pipeline.TypeCheckStage{})
	ctx := pl.Run(&pipeline.PipelineContext{Doc: doc})

	if len(ctx.Errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", ctx.Errs)
	}
	if !doc.HasStrictLowerBoundOnControllableEdges {
		t.Fatalf("expected HasStrictLowerBoundOnControllableEdges to be set")
	}
	if len(doc.Processes) != 1 {
		t.Fatalf("expected exactly one process, got %d", len(doc.Processes))
	}
}

// TestDuplicateDeclarationRejected models spec §8 scenario 2: declaring
// two variables with the same name in the same frame is rejected at the
// Builder layer as a DuplicateDefinitionError.
func TestDuplicateDeclarationRejected(t *testing.T) {
	doc := ir.New()
	p := pos()
	if _, err := doc.AddVariable(doc.Globals, "x", ir.Int(), nil, p); err != nil {
		t.Fatalf("first declaration: %v", err)
	}
	_, err := doc.AddVariable(doc.Globals, "x", ir.Int(), nil, p)
	if err == nil {
		t.Fatalf("expected an error declaring x twice")
	}
	if _, ok := err.(*ir.DuplicateDefinitionError); !ok {
		t.Fatalf("expected *ir.DuplicateDefinitionError, got %T", err)
	}
}

// TestBroadcastReceiveWithClockGuard models spec §8 scenario 4: a
// broadcast channel's receiving edge guarded by an expression referencing
// a clock sets hasGuardOnRecvBroadcast.
func TestBroadcastReceiveWithClockGuard(t *testing.T) {
	doc := ir.New()
	p := pos()

	chType, err := ir.Channel().Prefix(ir.QBroadcast)
	if err != nil {
		t.Fatalf("broadcast prefix: %v", err)
	}
	_, _ = doc.AddVariable(doc.Globals, "x", ir.Clock(), nil, p)
	_, _ = doc.AddVariable(doc.Globals, "bc", chType, nil, p)

	tmpl, _ := doc.AddTemplate("Recv", true, p)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, p)
	l1, _ := doc.AddLocation(tmpl, "L1", nil, p)
	tmpl.Init = l0.Sym

	guard := &ir.BinaryExpr{Op: "<=", Left: &ir.IdentifierExpr{Name: "x"}, Right: &ir.ConstantExpr{Kind: ir.ConstInt, IntVal: 5}}
	edge, _ := doc.AddEdge(tmpl, l0, nil, l1, nil, false, p)
	_ = doc.AddGuard(edge, guard)
	_ = doc.AddSync(edge, &ir.IdentifierExpr{Name: "bc"}, false)

	_, _, err = instantiate.Instantiate(doc, tmpl, "r", nil, p)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	checker := New(doc)
	checker.Check()

	if !doc.HasGuardOnRecvBroadcast {
		t.Fatalf("expected HasGuardOnRecvBroadcast to be set")
	}
}

// TestStopwatchRateZero models spec §8 scenario 5: an invariant
// containing a rate term `x' == 0` is extracted into the location's Rates
// and sets StopsClock.
func TestStopwatchRateZero(t *testing.T) {
	doc := ir.New()
	p := pos()
	_, _ = doc.AddVariable(doc.Globals, "x", ir.Clock(), nil, p)

	tmpl, _ := doc.AddTemplate("SW", true, p)
	rateTerm := &ir.BinaryExpr{
		Op:    "==",
		Left:  &ir.UnaryExpr{Op: "'", Operand: &ir.IdentifierExpr{Name: "x"}},
		Right: &ir.ConstantExpr{Kind: ir.ConstInt, IntVal: 0},
	}
	l0, _ := doc.AddLocation(tmpl, "L0", rateTerm, p)
	tmpl.Init = l0.Sym

	_, _, err := instantiate.Instantiate(doc, tmpl, "s", nil, p)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	checker := New(doc)
	checker.Check()

	if !doc.StopsClock {
		t.Fatalf("expected StopsClock to be set")
	}
	if len(l0.Rates) != 1 {
		t.Fatalf("expected one extracted rate entry, got %d", len(l0.Rates))
	}
	if l0.Rates[0].Clock == nil || l0.Rates[0].Clock.Name != "x" {
		t.Fatalf("expected the rate entry's clock to resolve to x, got %v", l0.Rates[0].Clock)
	}
	if l0.Invariant != nil {
		t.Fatalf("expected the rate-only invariant to be fully consumed, got %v", l0.Invariant)
	}
}

// TestStopwatchRateUnknownClock models an undeclared identifier inside a
// rate term: asRateTerm still recognizes the `ident' == expr` shape, but
// checkInvariant must resolve ident through checkExpr the same as any
// other identifier reference, so an undeclared one reports
// UnknownIdentifier instead of silently leaving the rate entry unresolved.
func TestStopwatchRateUnknownClock(t *testing.T) {
	doc := ir.New()
	p := pos()

	tmpl, _ := doc.AddTemplate("SW", true, p)
	rateTerm := &ir.BinaryExpr{
		Op:    "==",
		Left:  &ir.UnaryExpr{Op: "'", Operand: &ir.IdentifierExpr{Name: "undeclared"}},
		Right: &ir.ConstantExpr{Kind: ir.ConstInt, IntVal: 0},
	}
	l0, _ := doc.AddLocation(tmpl, "L0", rateTerm, p)
	tmpl.Init = l0.Sym

	_, _, err := instantiate.Instantiate(doc, tmpl, "s", nil, p)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	checker := New(doc)
	checker.Check()

	if l0.Rates[0].Clock != nil {
		t.Fatalf("expected an unresolved clock to stay nil, got %v", l0.Rates[0].Clock)
	}
	found := false
	for _, d := range doc.Sink.Errors() {
		if d.Code == diagnostics.UnknownIdentifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnknownIdentifier among %v", doc.Sink.Errors())
	}
}

// TestLSCPrechartCut models spec §8 scenario 6: m1@y=1 and m2@y=2 in the
// prechart, m3@y=3 in the main chart — the cut over {m1,m2} is in the
// prechart, the cut over {m2,m3} is not.
func TestLSCPrechartCut(t *testing.T) {
	doc := ir.New()
	p := pos()

	tmpl, _ := doc.AddTemplate("Chart", false, p)
	line1 := &ir.InstanceLine{Sym: ir.NewSymbol("l1", ir.SymInstanceLine, ir.Process(), p), Pos: p}
	line2 := &ir.InstanceLine{Sym: ir.NewSymbol("l2", ir.SymInstanceLine, ir.Process(), p), Pos: p}
	tmpl.InstanceLines = []*ir.InstanceLine{line1, line2}

	tmpl.Messages = []*ir.Message{
		{Src: line1, Dst: line2, Label: "m1", Y: 1, Prechart: true, Pos: p},
		{Src: line2, Dst: line1, Label: "m2", Y: 2, Prechart: true, Pos: p},
		{Src: line1, Dst: line2, Label: "m3", Y: 3, Prechart: false, Pos: p},
	}

	checker := New(doc)
	checker.checkLSC(tmpl)

	if len(doc.Sink.Errors()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", doc.Sink.Errors())
	}
	if !tmpl.HasPrechart {
		t.Fatalf("expected HasPrechart to be true")
	}

	m := tmpl.Messages
	prechartCut := &ir.Cut{Simregions: []*ir.Simregion{{Y: 1, Message: m[0]}, {Y: 2, Message: m[1]}}}
	if !prechartCut.InPrechart() {
		t.Fatalf("expected the cut over {m1,m2} to be in the prechart")
	}
	mixedCut := &ir.Cut{Simregions: []*ir.Simregion{{Y: 2, Message: m[1]}, {Y: 3, Message: m[2]}}}
	if mixedCut.InPrechart() {
		t.Fatalf("expected the cut over {m2,m3} not to be in the prechart")
	}
}
