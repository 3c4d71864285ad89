package ir

import (
	"fmt"
	"strings"
)

// RenderExpr renders e back to the module's surface syntax as a readable,
// stable textual form; it is not an inverse parser (spec §1 places
// concrete syntax handling out of scope). No other package in this
// module calls it.
func RenderExpr(e Expression) string {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *ConstantExpr:
		switch n.Kind {
		case ConstInt:
			return fmt.Sprintf("%d", n.IntVal)
		case ConstDouble:
			return fmt.Sprintf("%g", n.DoubleVal)
		case ConstBool:
			return fmt.Sprintf("%t", n.BoolVal)
		}
		return "?"
	case *IdentifierExpr:
		return n.Name
	case *UnaryExpr:
		return n.Op + RenderExpr(n.Operand)
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", RenderExpr(n.Left), n.Op, RenderExpr(n.Right))
	case *ConditionalExpr:
		return fmt.Sprintf("(%s ? %s : %s)", RenderExpr(n.Cond), RenderExpr(n.Then), RenderExpr(n.Else))
	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = RenderExpr(a)
		}
		return fmt.Sprintf("%s(%s)", RenderExpr(n.Fn), strings.Join(args, ", "))
	case *DotExpr:
		return RenderExpr(n.Left) + "." + n.Field
	case *SubscriptExpr:
		return fmt.Sprintf("%s[%s]", RenderExpr(n.Left), RenderExpr(n.Index))
	case *CommaExpr:
		return RenderExpr(n.Left) + ", " + RenderExpr(n.Right)
	case *SyncExpr:
		if n.Send {
			return RenderExpr(n.Channel) + "!"
		}
		return RenderExpr(n.Channel) + "?"
	case *DeadlockExpr:
		return "deadlock"
	case *QuantifiedExpr:
		kw := map[QuantKind]string{QuantForall: "forall", QuantExists: "exists", QuantSum: "sum"}[n.Kind]
		return fmt.Sprintf("%s (%s) %s", kw, n.Bound.Name, RenderExpr(n.Body))
	case *ListLiteralExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = RenderExpr(el)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
