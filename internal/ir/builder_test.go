package ir

import (
	"testing"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/position"
)

func TestAddTemplateParamsResolveGlobals(t *testing.T) {
	doc := New()
	pos := position.Position{Line: 1, Column: 1}
	globalClock := NewSymbol("x", SymVariable, Clock(), pos)
	if err := doc.Globals.Add(globalClock); err != nil {
		t.Fatalf("add global: %v", err)
	}

	tmpl, err := doc.AddTemplate("P", true, pos)
	if err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	sym, ok := tmpl.Locals.Lookup("x")
	if !ok || sym != globalClock {
		t.Fatalf("expected template locals to resolve global x through the params frame")
	}
}

func TestSetLocationFlags(t *testing.T) {
	doc := New()
	pos := position.Position{Line: 1, Column: 1}
	tmpl, _ := doc.AddTemplate("P", true, pos)
	l, err := doc.AddLocation(tmpl, "L0", nil, pos)
	if err != nil {
		t.Fatalf("AddLocation: %v", err)
	}
	doc.SetLocationFlags(l, true, false)
	if !l.IsUrgent || l.IsCommitted {
		t.Fatalf("expected urgent=true committed=false, got urgent=%v committed=%v", l.IsUrgent, l.IsCommitted)
	}
}

func TestAddVariableShadowingWarns(t *testing.T) {
	doc := New()
	pos := position.Position{Line: 1, Column: 1}
	if _, err := doc.AddVariable(doc.Globals, "x", Int(), nil, pos); err != nil {
		t.Fatalf("add global: %v", err)
	}

	tmpl, _ := doc.AddTemplate("P", true, pos)
	if _, err := doc.AddVariable(tmpl.Locals, "x", Int(), nil, pos); err != nil {
		t.Fatalf("add local shadowing global: %v", err)
	}

	found := false
	for _, d := range doc.Sink.Warnings() {
		if d.Code == diagnostics.ShadowsAVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ShadowsAVariable warning, got %v", doc.Sink.All())
	}
}

func TestAddVariableNoShadowNoWarning(t *testing.T) {
	doc := New()
	pos := position.Position{Line: 1, Column: 1}
	if _, err := doc.AddVariable(doc.Globals, "x", Int(), nil, pos); err != nil {
		t.Fatalf("add global: %v", err)
	}
	if _, err := doc.AddVariable(doc.Globals, "y", Int(), nil, pos); err != nil {
		t.Fatalf("add global: %v", err)
	}
	if len(doc.Sink.Warnings()) != 0 {
		t.Fatalf("expected no warnings, got %v", doc.Sink.Warnings())
	}
}

func TestAddEdgeRejectsMalformedEndpoints(t *testing.T) {
	doc := New()
	pos := position.Position{Line: 1, Column: 1}
	tmpl, _ := doc.AddTemplate("P", true, pos)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, pos)
	l1, _ := doc.AddLocation(tmpl, "L1", nil, pos)
	bp, _ := doc.AddBranchpoint(tmpl, "B0", pos)

	if _, err := doc.AddEdge(tmpl, l0, bp, l1, nil, true, pos); err == nil {
		t.Fatalf("expected an error when both src and srcBranch are set")
	}
	if _, err := doc.AddEdge(tmpl, nil, nil, l1, nil, true, pos); err == nil {
		t.Fatalf("expected an error when neither src nor srcBranch is set")
	}
}
