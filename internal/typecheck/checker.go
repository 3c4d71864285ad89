// Package typecheck implements the single-pass semantic checker
// (spec §4.6): identifier resolution, expression typing, guard/invariant
// rules, synchronization and assignment checks, urgency and priority
// flags, query validation, and LSC simregion/cut checks. It runs as a
// Visitor over a Document already populated by the instantiation engine.
package typecheck

import (
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/position"
)

// Checker drives one checking pass over a Document. It embeds
// ir.BaseVisitor so only the VisitX methods it needs are overridden
// (spec §9 "capability set with default no-ops").
type Checker struct {
	ir.BaseVisitor
	Doc *ir.Document
}

// New returns a Checker for doc.
func New(doc *ir.Document) *Checker {
	return &Checker{Doc: doc}
}

// Check runs the full pass and returns whether it completed without
// errors (spec §7: "checking continues as long as invariants permit, so
// that users see a batch of diagnostics per run").
func (c *Checker) Check() bool {
	ir.Walk(c.Doc, c)
	for _, cp := range c.Doc.ChanPriorities {
		c.checkChanPriority(cp)
	}
	return !c.Doc.Sink.HasErrors()
}

// emit records a diagnostic through the document's sink and always
// returns true, the convention this package uses to keep checking past
// an independent error (spec §9 "each check emits through the sink and
// returns a boolean for whether to continue"; independent checks here
// always continue — only a template-corrupting structural failure would
// abort early, and none of the checks in this package produce one).
func (c *Checker) emit(code diagnostics.Code, pos position.Position, template string, args ...string) bool {
	c.Doc.Sink.Emit(diagnostics.New(code, pos, template, args...))
	return true
}

// VisitGlobals type-checks every global variable initializer and
// function body (spec §4.6, run before any template so templates can
// reference already-typed globals).
func (c *Checker) VisitGlobals(d *ir.Document) {
	for _, v := range d.GlobalVars {
		if v.Init != nil {
			c.checkExpr(d.Globals, v.Init)
		}
	}
	for _, f := range d.GlobalFuncs {
		c.checkFunction(f)
	}
}

// VisitTemplateBefore checks that the declared init location belongs to
// the template (spec §8 "the declared init symbol is one of its
// locations") and type-checks local variable initializers and functions.
func (c *Checker) VisitTemplateBefore(t *ir.Template) bool {
	if t.Init != nil {
		found := false
		for _, l := range t.Locations {
			if l.Sym == t.Init {
				found = true
				break
			}
		}
		if !found {
			c.emit(diagnostics.InvalidType, t.Pos, "$invalidInit", t.Sym.Name)
		}
	}
	for _, v := range t.Variables {
		if v.Init != nil {
			c.checkExpr(t.Locals, v.Init)
		}
	}
	for _, f := range t.Functions {
		c.checkFunction(f)
	}
	for _, p := range t.Progress {
		c.checkExpr(t.Locals, p)
	}
	return true
}

// VisitLocation runs the invariant/rate-extraction checks (guards_invariants.go).
func (c *Checker) VisitLocation(t *ir.Template, l *ir.Location) {
	c.checkInvariant(t, l)
}

// VisitEdge runs guard, synchronization, assignment, urgency and
// controllable-edge checks on e.
func (c *Checker) VisitEdge(t *ir.Template, e *ir.Edge) {
	if e.Guard != nil {
		c.checkGuard(t, e)
	}
	if e.Sync != nil {
		c.checkSync(t, e)
	}
	if e.Assignment != nil {
		c.checkAssignment(t, e)
	}
	c.checkUrgencyAndPriority(t, e)
}

// VisitFunction is a no-op: function bodies are checked eagerly from
// VisitGlobals/VisitTemplateBefore so that their changes/depends sets are
// available before any edge referencing them is checked.
func (c *Checker) VisitFunction(t *ir.Template, f *ir.Function) {}

// VisitQuery validates the query's options (queries.go).
func (c *Checker) VisitQuery(q *ir.Query) {
	c.checkQuery(q)
}

// VisitMessage, VisitCondition, VisitUpdate are handled in bulk per
// template by checkLSC, invoked from VisitTemplateAfter, since the
// simregion/cut checks need every message/condition/update of the
// template at once rather than one at a time.
func (c *Checker) VisitTemplateAfter(t *ir.Template) {
	if !t.IsTA {
		c.checkLSC(t)
	}
}

func (c *Checker) checkFunction(f *ir.Function) {
	if f.Body == nil {
		return
	}
	c.checkStmt(f.Locals, f.Body)
	f.Changes, f.Depends = collectChangesDepends(f.Body)
}
