package typecheck

import (
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// checkExpr resolves identifiers and assigns a computed type to every
// node of e in frame's scope (spec §4.6: "Resolve every identifier node
// to a symbol or fail with UnknownIdentifier", "Assign a type to every
// expression"). It returns e's computed type; void on unrecoverable
// error so callers can keep checking sibling nodes.
func (c *Checker) checkExpr(frame *ir.Frame, e ir.Expression) *ir.Type {
	if e == nil {
		return ir.Void()
	}
	var t *ir.Type
	switch n := e.(type) {
	case *ir.ConstantExpr:
		switch n.Kind {
		case ir.ConstInt:
			t = ir.Int()
		case ir.ConstDouble:
			t = ir.Double()
		case ir.ConstBool:
			t = ir.Bool()
		default:
			t = ir.Void()
		}
	case *ir.IdentifierExpr:
		sym, ok := frame.Lookup(n.Name)
		if !ok {
			c.emit(diagnostics.UnknownIdentifier, n.Pos, "$unknownIdentifier", n.Name)
			t = ir.Void()
			break
		}
		n.SetResolvedSymbol(sym)
		t = sym.Type
	case *ir.DotExpr:
		leftType := c.checkExpr(frame, n.Left)
		stripped := leftType.StripPrefix()
		if !stripped.Is(ir.KindRecord) {
			c.emit(diagnostics.IsNotAStruct, n.Pos, "$isNotAStruct", n.Field)
			t = ir.Void()
			break
		}
		found := false
		for i := 0; i < stripped.Size(); i++ {
			if stripped.GetLabel(i) == n.Field {
				t = stripped.Get(i)
				found = true
				break
			}
		}
		if !found {
			c.emit(diagnostics.HasNoMember, n.Pos, "$hasNoMember", n.Field)
			t = ir.Void()
		}
	case *ir.UnaryExpr:
		operand := c.checkExpr(frame, n.Operand)
		t = unaryResultType(n.Op, operand)
	case *ir.BinaryExpr:
		left := c.checkExpr(frame, n.Left)
		right := c.checkExpr(frame, n.Right)
		t = binaryResultType(n.Op, left, right)
	case *ir.ConditionalExpr:
		c.checkExpr(frame, n.Cond)
		thenType := c.checkExpr(frame, n.Then)
		elseType := c.checkExpr(frame, n.Else)
		t = promote(thenType, elseType)
	case *ir.CallExpr:
		fnType := c.checkExpr(frame, n.Fn)
		for _, a := range n.Args {
			c.checkExpr(frame, a)
		}
		if fnType.Is(ir.KindFunction) {
			t = fnType.Result()
		} else {
			t = ir.Void()
		}
	case *ir.SubscriptExpr:
		leftType := c.checkExpr(frame, n.Left)
		c.checkExpr(frame, n.Index)
		if leftType.StripPrefix().Is(ir.KindArray) {
			t = leftType.StripPrefix().Elem()
		} else {
			t = ir.Void()
		}
	case *ir.CommaExpr:
		c.checkExpr(frame, n.Left)
		t = c.checkExpr(frame, n.Right)
	case *ir.SyncExpr:
		chanType := c.checkExpr(frame, n.Channel)
		_ = chanType
		t = ir.Void()
	case *ir.DeadlockExpr:
		t = ir.Bool()
	case *ir.QuantifiedExpr:
		c.checkExpr(n.Frame, n.Body)
		switch n.Kind {
		case ir.QuantForall, ir.QuantExists:
			t = ir.Bool()
		case ir.QuantSum:
			t = ir.Int()
		default:
			t = ir.Void()
		}
	case *ir.ListLiteralExpr:
		for _, el := range n.Elements {
			c.checkExpr(frame, el)
		}
		t = ir.Void()
	default:
		t = ir.Void()
	}
	e.SetExprType(t)
	return t
}

// unaryResultType implements the arithmetic-promotion rule for prefix
// operators (spec §4.6 "Arithmetic promotion").
func unaryResultType(op string, operand *ir.Type) *ir.Type {
	if op == "!" {
		return ir.Bool()
	}
	if operand.StripPrefix().Is(ir.KindDouble) {
		return ir.Double()
	}
	return ir.Int()
}

// binaryResultType implements spec §4.6's arithmetic promotion:
// int ⊕ int -> int; any operand double -> double; comparisons and
// boolean connectives always yield bool.
func binaryResultType(op string, left, right *ir.Type) *ir.Type {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "imply":
		return ir.Bool()
	default:
		return promote(left, right)
	}
}

// promote is the int/double promotion rule shared by arithmetic binary
// operators and the ternary/inline-if result type.
func promote(a, b *ir.Type) *ir.Type {
	if a.StripPrefix().Is(ir.KindDouble) || b.StripPrefix().Is(ir.KindDouble) {
		return ir.Double()
	}
	return ir.Int()
}

