package ir

import "github.com/tair-lang/tair/internal/position"

// Expression is any node in the expression AST (spec §4.3). Type and
// symbol resolution are the only fields mutated after construction: the
// checker assigns ExprType via SetExprType, and identifier nodes get
// their ResolvedSymbol set by name-resolution (the checker leaves a dot
// node's symbol as built). Everything else is fixed at build time.
type Expression interface {
	Position() position.Position
	ExprType() *Type
	SetExprType(*Type)
	exprNode()
}

// base is embedded by every concrete Expression to provide position and
// computed-type storage without repeating the boilerplate in each node.
type base struct {
	Pos position.Position
	Typ *Type
}

func (b *base) Position() position.Position { return b.Pos }
func (b *base) ExprType() *Type             { return b.Typ }
func (b *base) SetExprType(t *Type)         { b.Typ = t }
func (b *base) exprNode()                   {}

// SymbolRefExpr is implemented by expression nodes that name a symbol
// (IdentifierExpr, DotExpr) and so carry a resolution slot. The checker's
// identifier-resolution pass fills it in for IdentifierExpr only.
type SymbolRefExpr interface {
	Expression
	ResolvedSymbol() *Symbol
	SetResolvedSymbol(*Symbol)
}

// ConstKind tags the literal kind carried by a ConstantExpr.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstDouble
	ConstBool
)

// ConstantExpr is a literal, or the result of folding a sub-tree whose
// operands were all literals (spec §4.3 "constant folder ... preserving
// the source position of the root").
type ConstantExpr struct {
	base
	Kind      ConstKind
	IntVal    int64
	DoubleVal float64
	BoolVal   bool
}

// ConstantValueOf returns a ConstantExpr's integer value (doubles
// truncate, bools are 0/1) when e is statically known, used by the array
// Equal / Size machinery that only needs comparable constant values.
func ConstantValueOf(e Expression) (int64, bool) {
	c, ok := e.(*ConstantExpr)
	if !ok {
		return 0, false
	}
	switch c.Kind {
	case ConstInt:
		return c.IntVal, true
	case ConstDouble:
		return int64(c.DoubleVal), true
	case ConstBool:
		if c.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// IdentifierExpr references a bound symbol by name.
type IdentifierExpr struct {
	base
	Name string
	Sym  *Symbol
}

func (e *IdentifierExpr) ResolvedSymbol() *Symbol      { return e.Sym }
func (e *IdentifierExpr) SetResolvedSymbol(s *Symbol)  { e.Sym = s }

// UnaryExpr is a prefix operator (-, !, ++x and x++ style are represented
// with Op carrying the surface spelling).
type UnaryExpr struct {
	base
	Op      string
	Operand Expression
}

// BinaryExpr is an infix operator: arithmetic, relational, logical,
// bitwise.
type BinaryExpr struct {
	base
	Op          string
	Left, Right Expression
}

// ConditionalKind distinguishes the two surface forms the spec lists
// separately ("ternary op" and "inline-if") but which share one shape:
// a condition plus two result expressions.
type ConditionalKind int

const (
	CondTernary ConditionalKind = iota // cond ? then : else
	CondInlineIf
)

// ConditionalExpr is `cond ? then : else` (TernaryOp) or the inline-if
// form (InlineIf); both have identical evaluation semantics and only
// differ in surface spelling, so they share one node tagged by Kind.
type ConditionalExpr struct {
	base
	Kind             ConditionalKind
	Cond, Then, Else Expression
}

// CallExpr applies a function-typed expression to arguments.
type CallExpr struct {
	base
	Fn   Expression
	Args []Expression
}

// DotExpr is record-field access, `left.field`.
type DotExpr struct {
	base
	Left  Expression
	Field string
	Sym   *Symbol // field symbol, if the builder supplied one; the checker does not set it
}

func (e *DotExpr) ResolvedSymbol() *Symbol     { return e.Sym }
func (e *DotExpr) SetResolvedSymbol(s *Symbol) { e.Sym = s }

// SubscriptExpr is array indexing, `left[index]`.
type SubscriptExpr struct {
	base
	Left, Index Expression
}

// CommaExpr sequences two expressions for their side effects, yielding
// the type and value of Right (the `x = 1, y = 2` update-list operator).
type CommaExpr struct {
	base
	Left, Right Expression
}

// SyncExpr is a synchronization action on a channel expression: `ch!` or
// `ch?`, optionally broadcast per the channel's declared type.
type SyncExpr struct {
	base
	Channel Expression
	Send    bool
}

// DeadlockExpr is the `deadlock` state-predicate keyword.
type DeadlockExpr struct {
	base
}

// QuantKind tags a QuantifiedExpr.
type QuantKind int

const (
	QuantForall QuantKind = iota
	QuantExists
	QuantSum
)

// QuantifiedExpr is `forall/exists/sum (bound : range) body`, binding a
// fresh symbol over a finite range for the body's scope (spec §4.3).
type QuantifiedExpr struct {
	base
	Kind     QuantKind
	Bound    *Symbol
	Range    *Type // the finite/bounded type the symbol ranges over
	Frame    *Frame
	Body     Expression
}

// ListLiteralExpr is an array/record literal: `{ e1, e2, ... }`.
type ListLiteralExpr struct {
	base
	Elements []Expression
}

// SubstituteExpr rewrites an expression tree, replacing references to any
// symbol in subst with the bound expression (spec §4.5, parameter
// binding during template instantiation). Compound nodes are rebuilt
// rather than mutated; constants, deadlock, identifiers not in subst and
// unknown node kinds are returned as they are, so the result may share
// those leaves with e.
func SubstituteExpr(e Expression, subst map[*Symbol]Expression) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ConstantExpr:
		return n
	case *IdentifierExpr:
		if repl, ok := subst[n.Sym]; ok {
			return repl
		}
		return n
	case *UnaryExpr:
		return &UnaryExpr{base: n.base, Op: n.Op, Operand: SubstituteExpr(n.Operand, subst)}
	case *BinaryExpr:
		return &BinaryExpr{base: n.base, Op: n.Op, Left: SubstituteExpr(n.Left, subst), Right: SubstituteExpr(n.Right, subst)}
	case *ConditionalExpr:
		return &ConditionalExpr{base: n.base, Kind: n.Kind, Cond: SubstituteExpr(n.Cond, subst), Then: SubstituteExpr(n.Then, subst), Else: SubstituteExpr(n.Else, subst)}
	case *CallExpr:
		args := make([]Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = SubstituteExpr(a, subst)
		}
		return &CallExpr{base: n.base, Fn: SubstituteExpr(n.Fn, subst), Args: args}
	case *DotExpr:
		return &DotExpr{base: n.base, Left: SubstituteExpr(n.Left, subst), Field: n.Field, Sym: n.Sym}
	case *SubscriptExpr:
		return &SubscriptExpr{base: n.base, Left: SubstituteExpr(n.Left, subst), Index: SubstituteExpr(n.Index, subst)}
	case *CommaExpr:
		return &CommaExpr{base: n.base, Left: SubstituteExpr(n.Left, subst), Right: SubstituteExpr(n.Right, subst)}
	case *SyncExpr:
		return &SyncExpr{base: n.base, Channel: SubstituteExpr(n.Channel, subst), Send: n.Send}
	case *DeadlockExpr:
		return n
	case *QuantifiedExpr:
		// the bound variable shadows subst within Body; if subst targets it,
		// drop that entry for the recursive call.
		inner := subst
		if _, shadowed := subst[n.Bound]; shadowed {
			inner = make(map[*Symbol]Expression, len(subst))
			for k, v := range subst {
				if k != n.Bound {
					inner[k] = v
				}
			}
		}
		return &QuantifiedExpr{base: n.base, Kind: n.Kind, Bound: n.Bound, Range: n.Range, Frame: n.Frame, Body: SubstituteExpr(n.Body, inner)}
	case *ListLiteralExpr:
		elems := make([]Expression, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = SubstituteExpr(el, subst)
		}
		return &ListLiteralExpr{base: n.base, Elements: elems}
	default:
		return e
	}
}

// FoldConstants reduces a sub-tree whose operands are all literals to a
// single ConstantExpr, preserving the root's source position
// (spec §4.3). Unary and binary nodes are folded bottom-up: their
// operands are folded first, and a node that cannot be reduced is
// rebuilt around its folded operands. Every other node kind is returned
// unchanged, without folding inside it.
func FoldConstants(e Expression) Expression {
	switch n := e.(type) {
	case *UnaryExpr:
		operand := FoldConstants(n.Operand)
		if c, ok := operand.(*ConstantExpr); ok {
			if folded, ok := foldUnary(n.Op, c); ok {
				folded.Pos = n.Pos
				return folded
			}
		}
		return &UnaryExpr{base: n.base, Op: n.Op, Operand: operand}
	case *BinaryExpr:
		left := FoldConstants(n.Left)
		right := FoldConstants(n.Right)
		lc, lok := left.(*ConstantExpr)
		rc, rok := right.(*ConstantExpr)
		if lok && rok {
			if folded, ok := foldBinary(n.Op, lc, rc); ok {
				folded.Pos = n.Pos
				return folded
			}
		}
		return &BinaryExpr{base: n.base, Op: n.Op, Left: left, Right: right}
	default:
		return e
	}
}

func foldUnary(op string, c *ConstantExpr) (*ConstantExpr, bool) {
	switch op {
	case "-":
		if c.Kind == ConstDouble {
			return &ConstantExpr{Kind: ConstDouble, DoubleVal: -c.DoubleVal}, true
		}
		return &ConstantExpr{Kind: ConstInt, IntVal: -c.IntVal}, true
	case "!":
		if c.Kind == ConstBool {
			return &ConstantExpr{Kind: ConstBool, BoolVal: !c.BoolVal}, true
		}
	}
	return nil, false
}

func foldBinary(op string, l, r *ConstantExpr) (*ConstantExpr, bool) {
	if l.Kind == ConstDouble || r.Kind == ConstDouble {
		lf, rf := asDouble(l), asDouble(r)
		switch op {
		case "+":
			return &ConstantExpr{Kind: ConstDouble, DoubleVal: lf + rf}, true
		case "-":
			return &ConstantExpr{Kind: ConstDouble, DoubleVal: lf - rf}, true
		case "*":
			return &ConstantExpr{Kind: ConstDouble, DoubleVal: lf * rf}, true
		case "/":
			if rf != 0 {
				return &ConstantExpr{Kind: ConstDouble, DoubleVal: lf / rf}, true
			}
		}
		return nil, false
	}
	if l.Kind == ConstInt && r.Kind == ConstInt {
		switch op {
		case "+":
			return &ConstantExpr{Kind: ConstInt, IntVal: l.IntVal + r.IntVal}, true
		case "-":
			return &ConstantExpr{Kind: ConstInt, IntVal: l.IntVal - r.IntVal}, true
		case "*":
			return &ConstantExpr{Kind: ConstInt, IntVal: l.IntVal * r.IntVal}, true
		case "/":
			if r.IntVal != 0 {
				return &ConstantExpr{Kind: ConstInt, IntVal: l.IntVal / r.IntVal}, true
			}
		case "%":
			if r.IntVal != 0 {
				return &ConstantExpr{Kind: ConstInt, IntVal: l.IntVal % r.IntVal}, true
			}
		}
	}
	return nil, false
}

func asDouble(c *ConstantExpr) float64 {
	if c.Kind == ConstDouble {
		return c.DoubleVal
	}
	return float64(c.IntVal)
}
