package typecheck

import "github.com/tair-lang/tair/internal/ir"

// checkStmt type-checks every expression reachable from s, recursing
// into nested blocks with their own frames.
func (c *Checker) checkStmt(frame *ir.Frame, s ir.Statement) {
	switch n := s.(type) {
	case *ir.BlockStmt:
		for _, inner := range n.Stmts {
			c.checkStmt(n.Frame, inner)
		}
	case *ir.ExprStmt:
		c.checkExpr(frame, n.Expr)
	case *ir.IfStmt:
		c.checkExpr(frame, n.Cond)
		c.checkStmt(frame, n.Then)
		if n.Else != nil {
			c.checkStmt(frame, n.Else)
		}
	case *ir.WhileStmt:
		c.checkExpr(frame, n.Cond)
		c.checkStmt(frame, n.Body)
	case *ir.DoWhileStmt:
		c.checkStmt(frame, n.Body)
		c.checkExpr(frame, n.Cond)
	case *ir.ForStmt:
		if n.Init != nil {
			c.checkStmt(frame, n.Init)
		}
		if n.Cond != nil {
			c.checkExpr(frame, n.Cond)
		}
		if n.Post != nil {
			c.checkStmt(frame, n.Post)
		}
		c.checkStmt(frame, n.Body)
	case *ir.ForEachRangeStmt:
		c.checkStmt(n.Frame, n.Body)
	case *ir.ReturnStmt:
		if n.Value != nil {
			c.checkExpr(frame, n.Value)
		}
	case *ir.EmptyStmt:
	}
}
