package serialize

import (
	"testing"

	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/position"
)

// TestRoundTripStructuralShape exercises the round-trip testable property
// (spec §8: "parse(emit(D)) produces a structurally equal document D'")
// at the level Snapshot actually reconstructs: names, flags and shape,
// not live symbol pointers.
func TestRoundTripStructuralShape(t *testing.T) {
	doc := ir.New()
	pos := position.Position{Line: 1, Column: 1}

	_, _ = doc.AddVariable(doc.Globals, "x", ir.Clock(), nil, pos)
	tmpl, _ := doc.AddTemplate("P", true, pos)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, pos)
	l1, _ := doc.AddLocation(tmpl, "L1", nil, pos)
	tmpl.Init = l0.Sym
	_, _ = doc.AddEdge(tmpl, l0, nil, l1, nil, true, pos)
	_, _ = doc.AddQuery("A[] not deadlock", nil, pos)

	doc.HasStrictInvariants = true
	doc.StopsClock = true

	s, err := ToStruct(doc)
	if err != nil {
		t.Fatalf("ToStruct: %v", err)
	}
	snap := FromStruct(s)

	if len(snap.Globals) != 1 || snap.Globals[0] != "x: clock" {
		t.Fatalf("expected globals to contain x: clock, got %v", snap.Globals)
	}
	if len(snap.Templates) != 1 {
		t.Fatalf("expected one template, got %d", len(snap.Templates))
	}
	tsnap := snap.Templates[0]
	if tsnap.Name != "P" || !tsnap.IsTA || tsnap.Edges != 1 {
		t.Fatalf("unexpected template snapshot: %+v", tsnap)
	}
	if len(tsnap.Locations) != 2 || tsnap.Locations[0] != "L0" || tsnap.Locations[1] != "L1" {
		t.Fatalf("unexpected locations: %v", tsnap.Locations)
	}
	if len(snap.Queries) != 1 || snap.Queries[0] != "A[] not deadlock" {
		t.Fatalf("unexpected queries: %v", snap.Queries)
	}
	if !snap.Flags["hasStrictInvariants"] || !snap.Flags["stopsClock"] {
		t.Fatalf("expected flags to round-trip, got %v", snap.Flags)
	}
}
