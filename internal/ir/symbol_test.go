package ir

import (
	"testing"

	"github.com/tair-lang/tair/internal/position"
)

func TestFrameDuplicateDefinition(t *testing.T) {
	f := NewFrame("globals")
	pos1 := position.Position{Line: 1, Column: 1}
	pos2 := position.Position{Line: 2, Column: 1}
	if err := f.Add(NewSymbol("a", SymVariable, Int(), pos1)); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}
	err := f.Add(NewSymbol("a", SymVariable, Int(), pos2))
	if err == nil {
		t.Fatalf("expected DuplicateDefinitionError on second add")
	}
	if _, ok := err.(*DuplicateDefinitionError); !ok {
		t.Fatalf("expected *DuplicateDefinitionError, got %T", err)
	}
}

func TestFrameLookupRecursive(t *testing.T) {
	parent := NewFrame("outer")
	pos := position.Position{Line: 1, Column: 1}
	outerSym := NewSymbol("n", SymVariable, Int(), pos)
	if err := parent.Add(outerSym); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := NewFrame("inner", parent)
	if _, ok := child.LookupLocal("n"); ok {
		t.Fatalf("expected n to be absent locally")
	}
	sym, ok := child.Lookup("n")
	if !ok || sym != outerSym {
		t.Fatalf("expected lookup to resolve to outer symbol")
	}
}

func TestFrameShadows(t *testing.T) {
	parent := NewFrame("outer")
	pos := position.Position{Line: 1, Column: 1}
	_ = parent.Add(NewSymbol("n", SymVariable, Int(), pos))

	child := NewFrame("inner", parent)
	if !child.Shadows("n") {
		t.Fatalf("expected child to report shadowing before adding n")
	}
	_ = child.Add(NewSymbol("n", SymVariable, Int(), pos))
	if child.Shadows("n") {
		t.Fatalf("expected Shadows to be false once n is declared locally")
	}
}

func TestFrameIterateOrder(t *testing.T) {
	f := NewFrame("f")
	pos := position.Position{Line: 1, Column: 1}
	names := []string{"a", "b", "c"}
	for _, n := range names {
		_ = f.Add(NewSymbol(n, SymVariable, Int(), pos))
	}
	got := f.Iterate()
	if len(got) != len(names) {
		t.Fatalf("expected %d symbols, got %d", len(names), len(got))
	}
	for i, sym := range got {
		if sym.Name != names[i] {
			t.Fatalf("expected order preserved: want %s at %d, got %s", names[i], i, sym.Name)
		}
	}
}
