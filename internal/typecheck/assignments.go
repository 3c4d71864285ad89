package typecheck

import (
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// checkAssignment validates an edge's assignment: a sequence of
// assignments whose left-hand sides must be l-values of a type
// compatible with the right-hand side (spec §4.6 "Assignments").
func (c *Checker) checkAssignment(t *ir.Template, e *ir.Edge) {
	frame := selectFrame(t, e)
	for _, assign := range splitSequence(e.Assignment) {
		b, ok := assign.(*ir.BinaryExpr)
		if !ok || b.Op != "=" {
			c.checkExpr(frame, assign)
			continue
		}
		if !isLValue(b.Left) {
			c.emit(diagnostics.BadAssignment, e.Pos, "$badAssignment", t.Sym.Name)
			continue
		}
		lt := c.checkExpr(frame, b.Left)
		rt := c.checkExpr(frame, b.Right)
		if !assignable(lt, rt) {
			c.emit(diagnostics.TypeMismatch, e.Pos, "$typeMismatch", lt.String(), rt.String())
		}
	}
}

// splitSequence decomposes a CommaExpr chain (spec §3 "comma" operator,
// used to sequence edge assignments) into its individual assignments.
func splitSequence(e ir.Expression) []ir.Expression {
	if e == nil {
		return nil
	}
	if c, ok := e.(*ir.CommaExpr); ok {
		return append(splitSequence(c.Left), splitSequence(c.Right)...)
	}
	return []ir.Expression{e}
}

func isLValue(e ir.Expression) bool {
	switch e.(type) {
	case *ir.IdentifierExpr, *ir.DotExpr, *ir.SubscriptExpr:
		return true
	default:
		return false
	}
}

// assignable reports whether a value of type rt may be assigned to an
// l-value of type lt: identical stripped kinds, or an int value widened
// to a double l-value.
func assignable(lt, rt *ir.Type) bool {
	ls, rs := lt.StripPrefix(), rt.StripPrefix()
	if ls.Is(ir.KindDouble) && rs.Is(ir.KindInt) {
		return true
	}
	return ir.Equal(ls, rs, func(string) (*ir.Type, bool) { return nil, false })
}

// collectChangesDepends walks a function body and returns the variables
// it mutates (changes) and reads (depends), for the derived sets spec
// §4.6 requires ("Collect changes/depends sets for enclosing function").
func collectChangesDepends(body ir.Statement) (changes, depends []*ir.Symbol) {
	seenChange := make(map[*ir.Symbol]bool)
	seenDepend := make(map[*ir.Symbol]bool)
	var walkExpr func(ir.Expression)
	walkExpr = func(e ir.Expression) {
		switch n := e.(type) {
		case *ir.BinaryExpr:
			if n.Op == "=" {
				if id, ok := n.Left.(*ir.IdentifierExpr); ok && id.Sym != nil && !seenChange[id.Sym] {
					seenChange[id.Sym] = true
					changes = append(changes, id.Sym)
				}
				walkExpr(n.Right)
				return
			}
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ir.IdentifierExpr:
			if n.Sym != nil && !seenDepend[n.Sym] {
				seenDepend[n.Sym] = true
				depends = append(depends, n.Sym)
			}
		case *ir.UnaryExpr:
			walkExpr(n.Operand)
		case *ir.CallExpr:
			walkExpr(n.Fn)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *ir.DotExpr:
			walkExpr(n.Left)
		case *ir.SubscriptExpr:
			walkExpr(n.Left)
			walkExpr(n.Index)
		case *ir.CommaExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ir.ConditionalExpr:
			walkExpr(n.Cond)
			walkExpr(n.Then)
			walkExpr(n.Else)
		}
	}
	var walkStmt func(ir.Statement)
	walkStmt = func(s ir.Statement) {
		switch n := s.(type) {
		case *ir.BlockStmt:
			for _, inner := range n.Stmts {
				walkStmt(inner)
			}
		case *ir.ExprStmt:
			walkExpr(n.Expr)
		case *ir.IfStmt:
			walkExpr(n.Cond)
			walkStmt(n.Then)
			if n.Else != nil {
				walkStmt(n.Else)
			}
		case *ir.WhileStmt:
			walkExpr(n.Cond)
			walkStmt(n.Body)
		case *ir.DoWhileStmt:
			walkStmt(n.Body)
			walkExpr(n.Cond)
		case *ir.ForStmt:
			if n.Init != nil {
				walkStmt(n.Init)
			}
			if n.Cond != nil {
				walkExpr(n.Cond)
			}
			if n.Post != nil {
				walkStmt(n.Post)
			}
			walkStmt(n.Body)
		case *ir.ForEachRangeStmt:
			walkStmt(n.Body)
		case *ir.ReturnStmt:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		}
	}
	walkStmt(body)
	return changes, depends
}
