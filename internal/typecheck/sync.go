package typecheck

import (
	"github.com/tair-lang/tair/internal/config"
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// checkSync validates an edge's synchronization action (spec §4.6
// "Synchronizations: chan! (send) or chan? (receive) on an expression of
// channel type"). A broadcast channel with a clock guard on the receive
// side sets hasGuardOnRecvBroadcast.
func (c *Checker) checkSync(t *ir.Template, e *ir.Edge) {
	sync, ok := e.Sync.(*ir.SyncExpr)
	if !ok {
		return
	}
	frame := selectFrame(t, e)
	chanType := c.checkExpr(frame, sync.Channel)
	if !chanType.StripPrefix().Is(ir.KindChannel) {
		c.emit(diagnostics.BadSync, e.Pos, "$badSync", t.Sym.Name)
		return
	}
	if !sync.Send && chanType.HasQualifier(ir.QBroadcast) && e.Guard != nil && referencesClock(e.Guard) {
		c.Doc.HasGuardOnRecvBroadcast = true
	}
}

// referencesClock reports whether any identifier reachable from e
// resolves to a clock-typed symbol.
func referencesClock(e ir.Expression) bool {
	switch n := e.(type) {
	case *ir.IdentifierExpr:
		return n.Sym != nil && n.Sym.Type != nil && n.Sym.Type.StripPrefix().Is(ir.KindClock)
	case *ir.BinaryExpr:
		return referencesClock(n.Left) || referencesClock(n.Right)
	case *ir.UnaryExpr:
		return referencesClock(n.Operand)
	default:
		return false
	}
}

// checkChanPriority validates a channel-priority list: every operand
// must evaluate to a channel or channel array (spec §4.6
// "Channel priorities").
func (c *Checker) checkChanPriority(cp *ir.ChanPriority) {
	check := func(e ir.Expression) {
		t := c.checkExpr(c.Doc.Globals, e)
		st := t.StripPrefix()
		if !(st.Is(ir.KindChannel) || (st.Is(ir.KindArray) && st.Elem() != nil && st.Elem().StripPrefix().Is(ir.KindChannel))) {
			c.emit(diagnostics.BadPriorityList, cp.Pos, "$badPriorityList")
		}
	}
	check(cp.Head)
	for _, entry := range cp.Entries {
		check(entry.Expr)
		if entry.Separator != config.PrioritySeparatorTie && entry.Separator != config.PrioritySeparatorLevel {
			c.emit(diagnostics.BadPriorityList, cp.Pos, "$badPriorityListSeparator", entry.Separator)
		}
	}
}
