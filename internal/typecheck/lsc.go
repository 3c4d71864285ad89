package typecheck

import (
	"sort"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/position"
)

// checkLSC groups a template's messages, conditions and updates into
// simregions by Y-location, builds the sequence of cuts, and validates
// the prechart/main-chart ordering constraint (spec §4.6 "LSC checks").
func (c *Checker) checkLSC(t *ir.Template) {
	byY := make(map[int]*ir.Simregion)
	order := func(y int) *ir.Simregion {
		sr, ok := byY[y]
		if !ok {
			sr = &ir.Simregion{Y: y}
			byY[y] = sr
		}
		return sr
	}
	for _, m := range t.Messages {
		sr := order(m.Y)
		if sr.Message != nil {
			c.emit(diagnostics.InconsistentLSC, m.Pos, "$lscMultipleAtY", t.Sym.Name)
			continue
		}
		sr.Message = m
	}
	for _, cond := range t.Conditions {
		sr := order(cond.Y)
		if sr.Condition != nil {
			c.emit(diagnostics.InconsistentLSC, cond.Pos, "$lscMultipleAtY", t.Sym.Name)
			continue
		}
		sr.Condition = cond
	}
	for _, u := range t.Updates {
		sr := order(u.Y)
		if sr.Update != nil {
			c.emit(diagnostics.InconsistentLSC, u.Pos, "$lscMultipleAtY", t.Sym.Name)
			continue
		}
		sr.Update = u
	}

	ys := make([]int, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	// Build the chain of cuts as the downward-closed prefixes of the
	// Y-ordered simregion sequence (the partial order this language
	// induces is total within one template, since Y-location already
	// linearizes the chart; cross-instance-line concurrency is left to
	// the backend's runtime semantics, out of scope per spec §1).
	cuts := make([]*ir.Cut, 0, len(ys))
	var prefix []*ir.Simregion
	sawMainChart := false
	for _, y := range ys {
		sr := byY[y]
		if sr.InPrechart() {
			if sawMainChart {
				c.emit(diagnostics.InconsistentLSC, simregionPos(sr), "$lscPrechartAfterMain", t.Sym.Name)
			}
		} else {
			sawMainChart = true
		}
		prefix = append(prefix, sr)
		cp := make([]*ir.Simregion, len(prefix))
		copy(cp, prefix)
		cuts = append(cuts, &ir.Cut{Simregions: cp})
	}
	t.HasPrechart = sawPrechart(cuts)
}

func sawPrechart(cuts []*ir.Cut) bool {
	for _, cut := range cuts {
		if cut.InPrechart() {
			return true
		}
	}
	return false
}

// simregionPos picks a representative source position from whichever
// slot of the simregion is populated, for diagnostics.
func simregionPos(sr *ir.Simregion) position.Position {
	switch {
	case sr.Message != nil:
		return sr.Message.Pos
	case sr.Condition != nil:
		return sr.Condition.Pos
	case sr.Update != nil:
		return sr.Update.Pos
	default:
		return position.Position{}
	}
}
