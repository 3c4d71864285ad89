package typecheck

import "github.com/tair-lang/tair/internal/ir"

// checkUrgencyAndPriority sets the document-level hasUrgentTransition
// flag when an edge leaves an urgent location or synchronizes on an
// urgent channel (spec §4.6 "Urgency: a location/channel marked urgent
// on an outgoing edge sets hasUrgentTransition").
func (c *Checker) checkUrgencyAndPriority(t *ir.Template, e *ir.Edge) {
	if e.Src != nil && e.Src.IsUrgent {
		c.Doc.HasUrgentTransition = true
		return
	}
	if sync, ok := e.Sync.(*ir.SyncExpr); ok {
		if id, ok := sync.Channel.(*ir.IdentifierExpr); ok && id.Sym != nil && id.Sym.Type != nil {
			if id.Sym.Type.HasQualifier(ir.QUrgent) {
				c.Doc.HasUrgentTransition = true
			}
		}
	}
}
