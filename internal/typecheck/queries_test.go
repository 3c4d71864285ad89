package typecheck

import (
	"testing"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// TestCheckQueryParsesFormula models spec §4.6: a well-formed formula is
// parsed into FormulaExpr and type-checked as bool, with zero diagnostics.
func TestCheckQueryParsesFormula(t *testing.T) {
	doc := ir.New()
	p := pos()
	q, err := doc.AddQuery("A[] not deadlock", nil, p)
	if err != nil {
		t.Fatalf("AddQuery: %v", err)
	}

	checker := New(doc)
	checker.checkQuery(q)

	if len(doc.Sink.Errors()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", doc.Sink.Errors())
	}
	if q.FormulaExpr == nil {
		t.Fatalf("expected FormulaExpr to be set")
	}
	unary, ok := q.FormulaExpr.(*ir.UnaryExpr)
	if !ok || unary.Op != "!" {
		t.Fatalf("expected a negation of deadlock, got %#v", q.FormulaExpr)
	}
	if _, ok := unary.Operand.(*ir.DeadlockExpr); !ok {
		t.Fatalf("expected the negated operand to be deadlock, got %#v", unary.Operand)
	}
}

// TestCheckQueryMalformedFormula models a syntactically invalid formula
// reporting BadQuery instead of silently leaving FormulaExpr unset.
func TestCheckQueryMalformedFormula(t *testing.T) {
	doc := ir.New()
	p := pos()
	q, err := doc.AddQuery("E<> (a &&", nil, p)
	if err != nil {
		t.Fatalf("AddQuery: %v", err)
	}

	checker := New(doc)
	checker.checkQuery(q)

	if q.FormulaExpr != nil {
		t.Fatalf("expected FormulaExpr to stay nil on a parse error, got %v", q.FormulaExpr)
	}
	found := false
	for _, d := range doc.Sink.Errors() {
		if d.Code == diagnostics.BadQuery {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BadQuery among %v", doc.Sink.Errors())
	}
}

// TestCheckQueryNonBoolFormula models a syntactically valid but
// non-boolean formula (an arithmetic expression) reporting BadQuery.
func TestCheckQueryNonBoolFormula(t *testing.T) {
	doc := ir.New()
	p := pos()
	_, _ = doc.AddVariable(doc.Globals, "n", ir.Int(), nil, p)
	q, err := doc.AddQuery("n", nil, p)
	if err != nil {
		t.Fatalf("AddQuery: %v", err)
	}

	checker := New(doc)
	checker.checkQuery(q)

	found := false
	for _, d := range doc.Sink.Errors() {
		if d.Code == diagnostics.BadQuery {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BadQuery for a non-bool formula, got %v", doc.Sink.Errors())
	}
}

// TestParseQueryFormulaIdentifierPath models a dotted identifier path
// (process.location style references) parsing into a DotExpr chain.
func TestParseQueryFormulaIdentifierPath(t *testing.T) {
	expr, err := parseQueryFormula("p.L0")
	if err != nil {
		t.Fatalf("parseQueryFormula: %v", err)
	}
	dot, ok := expr.(*ir.DotExpr)
	if !ok || dot.Field != "L0" {
		t.Fatalf("expected a DotExpr on field L0, got %#v", expr)
	}
	id, ok := dot.Left.(*ir.IdentifierExpr)
	if !ok || id.Name != "p" {
		t.Fatalf("expected the dot's left side to be identifier p, got %#v", dot.Left)
	}
}
