package typecheck

import (
	"testing"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// TestChanPriorityValidSeparators models spec §3 "Channel priority": a
// well-formed list using the tie (",") and level ("<") separators produces
// no diagnostics.
func TestChanPriorityValidSeparators(t *testing.T) {
	doc := ir.New()
	p := pos()
	_, _ = doc.AddVariable(doc.Globals, "a", ir.Channel(), nil, p)
	_, _ = doc.AddVariable(doc.Globals, "b", ir.Channel(), nil, p)
	_, _ = doc.AddVariable(doc.Globals, "c", ir.Channel(), nil, p)

	cp := doc.BeginChanPriority(&ir.IdentifierExpr{Name: "a"}, p)
	doc.AddChanPriority(cp, "<", &ir.IdentifierExpr{Name: "b"})
	doc.AddChanPriority(cp, ",", &ir.IdentifierExpr{Name: "c"})

	checker := New(doc)
	checker.checkChanPriority(cp)

	if len(doc.Sink.Errors()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", doc.Sink.Errors())
	}
}

// TestChanPriorityUnknownSeparator models a malformed separator: neither
// the tie nor level separator, which must be rejected as BadPriorityList
// rather than silently accepted.
func TestChanPriorityUnknownSeparator(t *testing.T) {
	doc := ir.New()
	p := pos()
	_, _ = doc.AddVariable(doc.Globals, "a", ir.Channel(), nil, p)
	_, _ = doc.AddVariable(doc.Globals, "b", ir.Channel(), nil, p)

	cp := doc.BeginChanPriority(&ir.IdentifierExpr{Name: "a"}, p)
	doc.AddChanPriority(cp, ";", &ir.IdentifierExpr{Name: "b"})

	checker := New(doc)
	checker.checkChanPriority(cp)

	found := false
	for _, d := range doc.Sink.Errors() {
		if d.Code == diagnostics.BadPriorityList {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BadPriorityList among %v", doc.Sink.Errors())
	}
}
