package typecheck

import (
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// checkGuard validates an edge's guard: boolean, no side effects
// (spec §4.6 "Guards on edges: boolean, no side effects, no clock
// rates"), and tracks controllable-edge strict lower bounds.
func (c *Checker) checkGuard(t *ir.Template, e *ir.Edge) {
	frame := selectFrame(t, e)
	gt := c.checkExpr(frame, e.Guard)
	if !gt.StripPrefix().Is(ir.KindBool) {
		c.emit(diagnostics.BadGuard, e.Pos, "$badGuard", t.Sym.Name)
		return
	}
	if hasSideEffect(e.Guard) {
		c.emit(diagnostics.BadGuard, e.Pos, "$badGuardSideEffect", t.Sym.Name)
	}
	if e.Controllable && hasStrictLowerBound(e.Guard) {
		c.Doc.HasStrictLowerBoundOnControllableEdges = true
	}
}

// checkInvariant validates a location's invariant: a conjunction of
// boolean constraints or clock <= / < expr terms (spec §4.6 "Invariants
// on locations"). Rate terms (clock' == expr) are factored out into
// l.Rates, and the invariant is rewritten to the remaining conjunction.
func (c *Checker) checkInvariant(t *ir.Template, l *ir.Location) {
	if l.Invariant == nil {
		return
	}
	terms := splitConjunction(l.Invariant)
	var kept []ir.Expression
	for _, term := range terms {
		if clockExpr, rateExpr, ok := asRateTerm(term); ok {
			c.checkExpr(t.Locals, clockExpr)
			c.checkExpr(t.Locals, rateExpr)
			l.Rates = append(l.Rates, ir.RateEntry{Clock: clockExpr.ResolvedSymbol(), Expr: rateExpr})
			if isZeroConstant(rateExpr) {
				c.Doc.StopsClock = true
			}
			continue
		}
		it := c.checkExpr(t.Locals, term)
		if !it.StripPrefix().Is(ir.KindBool) {
			c.emit(diagnostics.BadInvariant, l.Pos, "$badInvariant", t.Sym.Name)
			continue
		}
		if hasStrictUpperBound(term) {
			c.Doc.HasStrictInvariants = true
		}
		kept = append(kept, term)
	}
	l.Invariant = reconjoin(kept)
}

// selectFrame returns the frame an edge's guard/sync/assignment should
// resolve names against: the edge's select frame (parented on the
// template's locals) if one exists, otherwise the template's locals
// directly.
func selectFrame(t *ir.Template, e *ir.Edge) *ir.Frame {
	if e.Select != nil {
		return e.Select
	}
	return t.Locals
}

// splitConjunction decomposes a right-associated chain of `&&` binary
// expressions into its operands; a non-conjunction expression is
// returned as its own single-element slice.
func splitConjunction(e ir.Expression) []ir.Expression {
	if b, ok := e.(*ir.BinaryExpr); ok && b.Op == "&&" {
		return append(splitConjunction(b.Left), splitConjunction(b.Right)...)
	}
	return []ir.Expression{e}
}

func reconjoin(terms []ir.Expression) ir.Expression {
	if len(terms) == 0 {
		return nil
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = &ir.BinaryExpr{Op: "&&", Left: result, Right: t}
	}
	return result
}

// asRateTerm recognizes a `clock' == expr` rate constraint, returning the
// clock identifier (still unresolved — the caller resolves it through
// checkExpr the same as any other identifier reference) and rate
// expression.
func asRateTerm(e ir.Expression) (*ir.IdentifierExpr, ir.Expression, bool) {
	b, ok := e.(*ir.BinaryExpr)
	if !ok || b.Op != "==" {
		return nil, nil, false
	}
	u, ok := b.Left.(*ir.UnaryExpr)
	if !ok || u.Op != "'" {
		return nil, nil, false
	}
	id, ok := u.Operand.(*ir.IdentifierExpr)
	if !ok {
		return nil, nil, false
	}
	return id, b.Right, true
}

func isZeroConstant(e ir.Expression) bool {
	v, ok := ir.ConstantValueOf(e)
	return ok && v == 0
}

// hasStrictUpperBound reports whether a conjunction term is a strict
// clock comparison (`clock < expr`), as opposed to a non-strict one
// (`clock <= expr`) — spec §4.6 "strict upper bounds set
// hasStrictInvariants".
func hasStrictUpperBound(e ir.Expression) bool {
	b, ok := e.(*ir.BinaryExpr)
	return ok && b.Op == "<" && referencesClock(b.Left)
}

// hasStrictLowerBound reports whether any conjunct of a guard is a
// strict lower-bound clock comparison (`clock > expr` or `expr < clock`),
// spec §4.6 "Controllable edges with strict lower-bound clock guards".
func hasStrictLowerBound(e ir.Expression) bool {
	for _, term := range splitConjunction(e) {
		b, ok := term.(*ir.BinaryExpr)
		if !ok {
			continue
		}
		if (b.Op == ">" && referencesClock(b.Left)) || (b.Op == "<" && referencesClock(b.Right)) {
			return true
		}
	}
	return false
}

func hasSideEffect(e ir.Expression) bool {
	switch n := e.(type) {
	case *ir.CommaExpr:
		return true
	case *ir.CallExpr:
		_ = n
		return false
	case *ir.BinaryExpr:
		return hasSideEffect(n.Left) || hasSideEffect(n.Right)
	case *ir.UnaryExpr:
		return hasSideEffect(n.Operand)
	default:
		return false
	}
}
